package models

// Category labels a group of debts (e.g. "groceries", "rent").
// A category that still has referencing debts cannot be deleted.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
