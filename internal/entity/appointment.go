package entity

import (
	"strings"
	"time"
)

// ClientInfo is the person the appointment is booked for.
type ClientInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// ServiceInfo describes what the client asked for.
type ServiceInfo struct {
	ServiceType string `json:"serviceType,omitempty"`
	StyleType   string `json:"styleType,omitempty"`
	Comments    string `json:"comments,omitempty"`
}

type StylistInfo struct {
	Name string `json:"name,omitempty"`
}

// Appointment is the client appointment document. It is stored as a single
// JSON document by every store backend.
type Appointment struct {
	ID        string      `json:"id"`
	Client    ClientInfo  `json:"client"`
	Service   ServiceInfo `json:"service"`
	Stylist   StylistInfo `json:"stylist"`
	Date      time.Time   `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Normalize trims the string fields that the document schema declares as
// trimmed. Comments are kept verbatim.
func (a *Appointment) Normalize() {
	a.Client.FirstName = strings.TrimSpace(a.Client.FirstName)
	a.Client.LastName = strings.TrimSpace(a.Client.LastName)
	a.Client.PhoneNumber = strings.TrimSpace(a.Client.PhoneNumber)
	a.Service.ServiceType = strings.TrimSpace(a.Service.ServiceType)
	a.Service.StyleType = strings.TrimSpace(a.Service.StyleType)
	a.Stylist.Name = strings.TrimSpace(a.Stylist.Name)
}

// MissingFields returns the JSON paths of required fields that are empty.
func (a *Appointment) MissingFields() []string {
	var missing []string
	if a.Client.FirstName == "" {
		missing = append(missing, "client.firstName")
	}
	if a.Client.LastName == "" {
		missing = append(missing, "client.lastName")
	}
	if a.Client.PhoneNumber == "" {
		missing = append(missing, "client.phoneNumber")
	}
	if a.Date.IsZero() {
		missing = append(missing, "date")
	}
	return missing
}
