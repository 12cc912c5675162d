package request

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingForm(t *testing.T) {
	appt := BookingForm(url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"phoneNumber": {"555-0100"},
		"serviceType": {"Haircut"},
		"styleType":   {"Fade"},
		"stylist":     {"Marco"},
		"comments":    {"short on the sides"},
		"date":        {"2026-12-24T10:30"},
	})

	assert.Equal(t, "Ada", appt.Client.FirstName)
	assert.Equal(t, "Lovelace", appt.Client.LastName)
	assert.Equal(t, "555-0100", appt.Client.PhoneNumber)
	assert.Equal(t, "Haircut", appt.Service.ServiceType)
	assert.Equal(t, "Fade", appt.Service.StyleType)
	assert.Equal(t, "short on the sides", appt.Service.Comments)
	assert.Equal(t, "Marco", appt.Stylist.Name)
	assert.Equal(t, time.Date(2026, 12, 24, 10, 30, 0, 0, time.UTC), appt.Date)
	assert.Empty(t, appt.ID)
}

func TestParseFormDate(t *testing.T) {
	cases := map[string]time.Time{
		"2026-12-24T10:30":     time.Date(2026, 12, 24, 10, 30, 0, 0, time.UTC),
		"2026-12-24T10:30:15":  time.Date(2026, 12, 24, 10, 30, 15, 0, time.UTC),
		"2026-12-24T10:30:00Z": time.Date(2026, 12, 24, 10, 30, 0, 0, time.UTC),
		" 2026-12-24 ":         time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
		"":                     {},
		"next tuesday":         {},
	}
	for raw, want := range cases {
		assert.True(t, want.Equal(parseFormDate(raw)), raw)
	}
}
