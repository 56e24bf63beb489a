package models

// User is the profile owner as returned by the exchange API.
type User struct {
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined Timestamp `json:"date_joined"`
}
