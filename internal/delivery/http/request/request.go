package request

import (
	"net/url"
	"strings"
	"time"

	"github.com/user/salon-service/internal/entity"
)

// AppointmentRequest is the JSON body accepted by create and update. Identity
// fields are assigned by the server and not accepted here.
type AppointmentRequest struct {
	Client  entity.ClientInfo  `json:"client"`
	Service entity.ServiceInfo `json:"service"`
	Stylist entity.StylistInfo `json:"stylist"`
	Date    time.Time          `json:"date"`
}

func (r AppointmentRequest) ToEntity() entity.Appointment {
	return entity.Appointment{
		Client:  r.Client,
		Service: r.Service,
		Stylist: r.Stylist,
		Date:    r.Date,
	}
}

// formDateLayouts are tried in order; the first is what a datetime-local
// input submits.
var formDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// BookingForm maps the urlencoded booking form onto an appointment. An
// unparsable date is left zero and is then reported as missing by validation.
func BookingForm(form url.Values) entity.Appointment {
	return entity.Appointment{
		Client: entity.ClientInfo{
			FirstName:   form.Get("firstName"),
			LastName:    form.Get("lastName"),
			PhoneNumber: form.Get("phoneNumber"),
		},
		Service: entity.ServiceInfo{
			ServiceType: form.Get("serviceType"),
			StyleType:   form.Get("styleType"),
			Comments:    form.Get("comments"),
		},
		Stylist: entity.StylistInfo{Name: form.Get("stylist")},
		Date:    parseFormDate(form.Get("date")),
	}
}

func parseFormDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range formDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
