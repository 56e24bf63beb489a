package models

// Book is a listing owned by the profile user.
type Book struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Genre        string `json:"genre"`
	Condition    string `json:"condition"`
	Availability bool   `json:"availability"`
}

// AvailabilityLabel renders the availability flag for tables.
func (b Book) AvailabilityLabel() string {
	if b.Availability {
		return "Available"
	}
	return "Not Available"
}
