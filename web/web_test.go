package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/salon-service/internal/entity"
)

func TestRenderIndex(t *testing.T) {
	pages, err := NewPages()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, "index", NewPageData("BarberShop - Premium Hair Care")))

	html := buf.String()
	assert.Contains(t, html, "<title>BarberShop - Premium Hair Care</title>")
	for _, s := range Services {
		assert.Contains(t, html, s.Name)
	}
	assert.Contains(t, html, `href="/css/style.css"`)
}

func TestRenderBookingKeepsFormValues(t *testing.T) {
	pages, err := NewPages()
	require.NoError(t, err)

	data := NewPageData("Book Appointment")
	data.Form = url.Values{"firstName": {"Ada <script>"}, "stylist": {"Dee"}}
	data.Errors = []string{"client.lastName"}

	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, "booking", data))

	html := buf.String()
	assert.Contains(t, html, `value="Ada &lt;script&gt;"`)
	assert.Contains(t, html, `<option value="Dee" selected>`)
	assert.Contains(t, html, "<li>client.lastName</li>")
}

func TestRenderBookingConfirmation(t *testing.T) {
	pages, err := NewPages()
	require.NoError(t, err)

	data := NewPageData("Book Appointment")
	data.Confirmation = &entity.Appointment{
		ID:      "0192-abc",
		Client:  entity.ClientInfo{FirstName: "Ada"},
		Stylist: entity.StylistInfo{Name: "Marco"},
		Date:    time.Date(2026, 12, 24, 10, 30, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, "booking", data))

	html := buf.String()
	assert.Contains(t, html, "Thanks Ada, you are booked with Marco on Thu, 24 Dec 2026 at 10:30.")
	assert.Contains(t, html, "0192-abc")
}

func TestRenderUnknownPage(t *testing.T) {
	pages, err := NewPages()
	require.NoError(t, err)
	assert.Error(t, pages.Render(&bytes.Buffer{}, "missing", nil))
}

func TestStatic(t *testing.T) {
	srv := httptest.NewServer(Static())
	defer srv.Close()

	for _, p := range []string{"/css/style.css", "/js/main.js", "/images/logo.svg"} {
		resp, err := http.Get(srv.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}

	resp, err := http.Get(srv.URL + "/css/missing.css")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
