package models

// Transaction statuses the frontend knows about. Any other value coming from
// the API is displayed as-is.
const (
	StatusPending   = "pending"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

// Transaction is an exchange of a single book.
type Transaction struct {
	ID           int64     `json:"id"`
	Book         Book      `json:"book"`
	Status       string    `json:"status"`
	BorrowerName string    `json:"borrower_name,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// Cancelable reports whether the cancel action applies.
func (t Transaction) Cancelable() bool {
	return t.Status == StatusPending
}
