package models

// Debt represents money owed by a client.
//
// Remaining is derived state maintained by the payment ledger: it always
// equals Amount minus the sum of the currently stored payments for this
// debt, and stays within [0, Amount].
type Debt struct {
	// ID is the database-assigned identifier.
	ID int64 `json:"id"`

	// ClientID references the owing client.
	ClientID int64 `json:"clientId"`

	// CategoryID references the debt's category.
	CategoryID int64 `json:"categoryId"`

	// Amount is the original principal in integer currency units.
	Amount int64 `json:"amount"`

	// Remaining is the outstanding balance not yet offset by payments.
	Remaining int64 `json:"remaining"`

	// Date is the creation date as a YYYYMMDD integer.
	Date int `json:"date"`
}

// Outstanding reports whether the debt still has an unpaid balance.
func (d *Debt) Outstanding() bool {
	return d.Remaining > 0
}
