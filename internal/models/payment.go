package models

// Payment is one entry in a debt's repayment ledger.
// Recording a payment decrements the parent debt's Remaining by AmountPaid;
// editing or deleting the payment reverses that effect first.
type Payment struct {
	ID int64 `json:"id"`

	// DebtID references the debt this payment goes toward.
	DebtID int64 `json:"debtId"`

	// AmountPaid is the paid amount in integer currency units. Always > 0.
	AmountPaid int64 `json:"amountPaid"`

	// PaymentDate is the payment date as a YYYYMMDD integer.
	PaymentDate int `json:"paymentDate"`
}
