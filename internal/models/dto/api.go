package dto

import "github.com/hongminglow/bookx-web/internal/models"

// ProfileResponse is the payload of GET profile/.
type ProfileResponse struct {
	User  models.User   `json:"user"`
	Books []models.Book `json:"books"`
}

// TokenRequest is the payload of POST token/.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the payload returned by POST token/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
