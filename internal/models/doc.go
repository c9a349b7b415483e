// Package models defines the core domain models for Konnash.
//
// The domain is a personal debt notebook:
//   - Client: a person who owes money
//   - Category: a label grouping debts (e.g. "groceries", "rent")
//   - Debt: a principal amount owed by a client, with an outstanding balance
//   - Payment: a ledger entry that reduces a debt's outstanding balance
//
// Amounts are integers in a single implicit currency unit; there is no
// fractional or multi-currency handling. Calendar dates are encoded as
// base-10 YYYYMMDD integers (see the dateutil package), matching the
// storage representation.
//
// Relationships use ID fields rather than pointers to avoid circular
// references: Debt carries ClientID and CategoryID, Payment carries DebtID.
package models
