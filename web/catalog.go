package web

import (
	"net/url"

	"github.com/user/salon-service/internal/entity"
)

type Service struct {
	Name        string
	Description string
	Price       string
}

type Stylist struct {
	Name      string
	Specialty string
}

var Services = []Service{
	{Name: "Haircut", Description: "Classic or modern cut, wash and style.", Price: "$30"},
	{Name: "Beard Trim", Description: "Shape, line-up and hot towel finish.", Price: "$18"},
	{Name: "Shave", Description: "Straight razor shave with hot towel.", Price: "$25"},
	{Name: "Coloring", Description: "Full color or highlights.", Price: "$55"},
}

var Styles = []string{"Fade", "Taper", "Buzz", "Crop", "Pompadour", "Undercut"}

var Stylists = []Stylist{
	{Name: "Marco", Specialty: "Fades and tapers"},
	{Name: "Dee", Specialty: "Shaves and beard work"},
	{Name: "Sam", Specialty: "Color and long styles"},
}

// PageData is the view model shared by every page.
type PageData struct {
	Title        string
	Services     []Service
	Styles       []string
	Stylists     []Stylist
	Form         url.Values
	Errors       []string
	Confirmation *entity.Appointment
}

func NewPageData(title string) PageData {
	return PageData{
		Title:    title,
		Services: Services,
		Styles:   Styles,
		Stylists: Stylists,
	}
}
