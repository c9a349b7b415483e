// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/konnash/konnash/internal/models"
)

// Store defines the persistence operations for the debt notebook.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// List and search operations return empty slices, never errors, when nothing
// matches. Singular lookups return ErrNotFound for missing rows, so callers
// can tell "no such id" apart from a storage failure.
type Store interface {
	// CreateClient persists a new client. The ID field is populated by the store.
	CreateClient(ctx context.Context, client *models.Client) error

	// GetClient retrieves a client by ID.
	GetClient(ctx context.Context, id int64) (*models.Client, error)

	// ListClients retrieves all clients ordered by name.
	ListClients(ctx context.Context) ([]*models.Client, error)

	// SearchClientsByName retrieves clients whose name contains namePart
	// (case-insensitive).
	SearchClientsByName(ctx context.Context, namePart string) ([]*models.Client, error)

	// SearchClientsByPhone retrieves clients whose phone contains phonePart.
	SearchClientsByPhone(ctx context.Context, phonePart string) ([]*models.Client, error)

	// GetClientByDebt retrieves the client that owns the given debt.
	GetClientByDebt(ctx context.Context, debtID int64) (*models.Client, error)

	// UpdateClient rewrites a client's name and phone.
	UpdateClient(ctx context.Context, client *models.Client) error

	// DeleteClient removes a client along with all of its debts and their
	// payment history, in a single transaction.
	DeleteClient(ctx context.Context, id int64) error

	// DeleteAllClients removes every client, debt, and payment.
	DeleteAllClients(ctx context.Context) error

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, category *models.Category) error

	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, id int64) (*models.Category, error)

	// ListCategories retrieves all categories ordered by name.
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// UpdateCategory renames a category.
	UpdateCategory(ctx context.Context, category *models.Category) error

	// DeleteCategory removes a category. It returns ErrCategoryInUse if any
	// debt still references the category.
	DeleteCategory(ctx context.Context, id int64) error

	// CreateDebt persists a new debt. Remaining is initialized to Amount and
	// Date is stamped with the current date when zero.
	CreateDebt(ctx context.Context, debt *models.Debt) error

	// GetDebt retrieves a debt by ID.
	GetDebt(ctx context.Context, id int64) (*models.Debt, error)

	// ListDebts retrieves all debts, newest first.
	ListDebts(ctx context.Context) ([]*models.Debt, error)

	// ListDebtsByAmountRange retrieves debts with min <= amount <= max.
	ListDebtsByAmountRange(ctx context.Context, min, max int64) ([]*models.Debt, error)

	// ListDebtsByDateRange retrieves debts created within [minDate, maxDate],
	// both YYYYMMDD integers.
	ListDebtsByDateRange(ctx context.Context, minDate, maxDate int) ([]*models.Debt, error)

	// ListOutstandingDebts retrieves debts with remaining > 0.
	ListOutstandingDebts(ctx context.Context) ([]*models.Debt, error)

	// ListDebtsByClient retrieves all debts owed by a client.
	ListDebtsByClient(ctx context.Context, clientID int64) ([]*models.Debt, error)

	// ListDebtsByCategory retrieves all debts under a category.
	ListDebtsByCategory(ctx context.Context, categoryID int64) ([]*models.Debt, error)

	// TotalAmountByClient sums the principal of all debts owed by a client.
	TotalAmountByClient(ctx context.Context, clientID int64) (int64, error)

	// TotalAmountByCategory sums the principal of all debts under a category.
	TotalAmountByCategory(ctx context.Context, categoryID int64) (int64, error)

	// TotalOutstandingAmount sums the principal of debts with remaining > 0.
	TotalOutstandingAmount(ctx context.Context) (int64, error)

	// TotalAmount sums the principal of every debt.
	TotalAmount(ctx context.Context) (int64, error)

	// UpdateDebt rewrites a debt's amount, client, and category. Remaining is
	// shifted by the change in amount so the ledger invariant holds; the
	// update fails with ErrOverpayment if that would drive remaining below zero.
	UpdateDebt(ctx context.Context, debt *models.Debt) error

	// DeleteDebt removes a debt and its payment history in one transaction.
	DeleteDebt(ctx context.Context, id int64) error

	// DeleteDebtsByClient removes all of a client's debts and their payment
	// history in one transaction.
	DeleteDebtsByClient(ctx context.Context, clientID int64) error

	// DeleteAllDebts removes every debt and payment.
	DeleteAllDebts(ctx context.Context) error

	// RecordPayment atomically decrements the parent debt's remaining balance
	// by AmountPaid and inserts the ledger row. PaymentDate is stamped with
	// the current date when zero. Returns ErrOverpayment if AmountPaid
	// exceeds the debt's remaining balance.
	RecordPayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by ID.
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)

	// ListPayments retrieves every payment, newest first.
	ListPayments(ctx context.Context) ([]*models.Payment, error)

	// ListPaymentsByDebt retrieves a debt's payments, newest first.
	ListPaymentsByDebt(ctx context.Context, debtID int64) ([]*models.Payment, error)

	// UpdatePayment atomically reverses the payment's prior effect on the
	// debt's remaining balance, applies newAmount instead, and rewrites the
	// row. The original payment date is preserved.
	UpdatePayment(ctx context.Context, id int64, newAmount int64) error

	// DeletePayment atomically restores the payment's amount to the debt's
	// remaining balance and removes the row.
	DeletePayment(ctx context.Context, id int64) error

	// DeletePaymentsByDebt removes all of a debt's payments, restoring each
	// amount to the debt's remaining balance, in one transaction.
	DeletePaymentsByDebt(ctx context.Context, debtID int64) error

	// DeletePaymentsByClient does the same across every debt of a client.
	DeletePaymentsByClient(ctx context.Context, clientID int64) error

	// Close releases any resources held by the store.
	Close() error
}
