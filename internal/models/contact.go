package models

// Submission is a contact form payload as sent by the website.
type Submission struct {
	FirstName  string `json:"firstName" validate:"trimmed_min=2"`
	LastName   string `json:"lastName" validate:"trimmed_min=2"`
	Email      string `json:"email" validate:"required,email,tld"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Service    string `json:"service" validate:"required"`
	Budget     string `json:"budget,omitempty"`
	Timeline   string `json:"timeline,omitempty"`
	Message    string `json:"message" validate:"trimmed_min=10"`
	Newsletter bool   `json:"newsletter"`
}

// FullName returns "First Last".
func (s Submission) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// Option is a selectable value offered by the contact form.
type Option struct {
	Value string
	Label string
}

// Catalog is an ordered list of form options.
type Catalog []Option

// Label returns the display label for value, or value itself when unknown.
func (c Catalog) Label(value string) string {
	for _, o := range c {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Contains reports whether value is one of the catalog options.
func (c Catalog) Contains(value string) bool {
	for _, o := range c {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Services offered on the contact page.
var Services = Catalog{
	{Value: "web-development", Label: "Web Development"},
	{Value: "ecommerce", Label: "E-commerce Solutions"},
	{Value: "web-applications", Label: "Web Applications"},
	{Value: "ui-ux-design", Label: "UI/UX Design"},
	{Value: "maintenance", Label: "Website Maintenance"},
	{Value: "cloud-solutions", Label: "Cloud Solutions"},
	{Value: "consultation", Label: "Free Consultation"},
}

// Budgets are the project budget ranges (INR).
var Budgets = Catalog{
	{Value: "under-50k", Label: "Under ₹50,000"},
	{Value: "50k-1l", Label: "₹50,000 - ₹1,00,000"},
	{Value: "1l-3l", Label: "₹1,00,000 - ₹3,00,000"},
	{Value: "3l-5l", Label: "₹3,00,000 - ₹5,00,000"},
	{Value: "above-5l", Label: "Above ₹5,00,000"},
}

// Timelines are the requested delivery windows.
var Timelines = Catalog{
	{Value: "asap", Label: "ASAP"},
	{Value: "1-month", Label: "Within 1 month"},
	{Value: "2-3-months", Label: "2-3 months"},
	{Value: "3-6-months", Label: "3-6 months"},
	{Value: "flexible", Label: "I'm flexible"},
}
