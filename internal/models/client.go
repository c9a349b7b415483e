package models

// Client represents a person tracked in the debt notebook.
type Client struct {
	// ID is the database-assigned identifier.
	ID int64 `json:"id"`

	// Name is the client's display name. Never empty.
	Name string `json:"name"`

	// Phone is the client's phone number in the local mobile format
	// (10 digits starting with 0). May be empty.
	Phone string `json:"phone"`
}
