package domain

import "time"

// Template is the minimal view of a document template carried by this
// service. Rendering and export live elsewhere; the admin surface only
// lists and registers templates.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Body        string    `json:"body"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
