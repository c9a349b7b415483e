package service

import (
	"context"
	"log/slog"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// DebtService manages debts and their payment ledger.
type DebtService struct {
	store storage.Store
}

// NewDebtService creates a new DebtService with the given storage backend.
func NewDebtService(store storage.Store) *DebtService {
	return &DebtService{store: store}
}

// Create validates and persists a new debt. The creation date is stamped by
// the store and the remaining balance starts at the full principal.
func (s *DebtService) Create(ctx context.Context, amount, clientID, categoryID int64) (*models.Debt, error) {
	if err := validateAmount("amount", amount); err != nil {
		return nil, err
	}

	debt := &models.Debt{ClientID: clientID, CategoryID: categoryID, Amount: amount}
	if err := s.store.CreateDebt(ctx, debt); err != nil {
		slog.Error("create debt failed", "client_id", clientID, "amount", amount, "error", err)
		return nil, err
	}

	slog.Info("debt created",
		"debt_id", debt.ID,
		"client_id", debt.ClientID,
		"amount", debt.Amount,
		"date", debt.Date,
	)
	return debt, nil
}

// Get retrieves a debt by ID.
func (s *DebtService) Get(ctx context.Context, id int64) (*models.Debt, error) {
	return s.store.GetDebt(ctx, id)
}

// List retrieves all debts.
func (s *DebtService) List(ctx context.Context) ([]*models.Debt, error) {
	return s.store.ListDebts(ctx)
}

// ListByAmountRange retrieves debts with min <= amount <= max.
func (s *DebtService) ListByAmountRange(ctx context.Context, min, max int64) ([]*models.Debt, error) {
	if min > max {
		return nil, &ValidationError{Field: "range", Message: "min must not exceed max"}
	}
	return s.store.ListDebtsByAmountRange(ctx, min, max)
}

// ListByDateRange retrieves debts created within [minDate, maxDate].
func (s *DebtService) ListByDateRange(ctx context.Context, minDate, maxDate int) ([]*models.Debt, error) {
	if err := validateDate("from", minDate); err != nil {
		return nil, err
	}
	if err := validateDate("to", maxDate); err != nil {
		return nil, err
	}
	if minDate > maxDate {
		return nil, &ValidationError{Field: "range", Message: "from must not exceed to"}
	}
	return s.store.ListDebtsByDateRange(ctx, minDate, maxDate)
}

// ListOutstanding retrieves debts that still have an unpaid balance.
func (s *DebtService) ListOutstanding(ctx context.Context) ([]*models.Debt, error) {
	return s.store.ListOutstandingDebts(ctx)
}

// ListByClient retrieves all debts owed by a client.
func (s *DebtService) ListByClient(ctx context.Context, clientID int64) ([]*models.Debt, error) {
	return s.store.ListDebtsByClient(ctx, clientID)
}

// ListByCategory retrieves all debts under a category.
func (s *DebtService) ListByCategory(ctx context.Context, categoryID int64) ([]*models.Debt, error) {
	return s.store.ListDebtsByCategory(ctx, categoryID)
}

// TotalByClient sums the principal of a client's debts.
func (s *DebtService) TotalByClient(ctx context.Context, clientID int64) (int64, error) {
	return s.store.TotalAmountByClient(ctx, clientID)
}

// TotalByCategory sums the principal of a category's debts.
func (s *DebtService) TotalByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return s.store.TotalAmountByCategory(ctx, categoryID)
}

// TotalOutstanding sums the principal of debts with an unpaid balance.
func (s *DebtService) TotalOutstanding(ctx context.Context) (int64, error) {
	return s.store.TotalOutstandingAmount(ctx)
}

// Total sums the principal of every debt.
func (s *DebtService) Total(ctx context.Context) (int64, error) {
	return s.store.TotalAmount(ctx)
}

// Update validates and rewrites a debt's amount, client, and category.
func (s *DebtService) Update(ctx context.Context, id, amount, clientID, categoryID int64) (*models.Debt, error) {
	if err := validateAmount("amount", amount); err != nil {
		return nil, err
	}

	debt := &models.Debt{ID: id, ClientID: clientID, CategoryID: categoryID, Amount: amount}
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		slog.Error("update debt failed", "debt_id", id, "error", err)
		return nil, err
	}

	slog.Info("debt updated", "debt_id", id, "amount", amount, "remaining", debt.Remaining)
	return debt, nil
}

// Delete removes a debt and its payment history.
func (s *DebtService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteDebt(ctx, id); err != nil {
		slog.Error("delete debt failed", "debt_id", id, "error", err)
		return err
	}

	slog.Info("debt deleted", "debt_id", id)
	return nil
}

// DeleteByClient removes all of a client's debts and their payment history.
func (s *DebtService) DeleteByClient(ctx context.Context, clientID int64) error {
	if err := s.store.DeleteDebtsByClient(ctx, clientID); err != nil {
		slog.Error("delete debts by client failed", "client_id", clientID, "error", err)
		return err
	}

	slog.Info("client debts deleted", "client_id", clientID)
	return nil
}

// DeleteAll removes every debt and payment.
func (s *DebtService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAllDebts(ctx); err != nil {
		slog.Error("delete all debts failed", "error", err)
		return err
	}

	slog.Info("all debts deleted")
	return nil
}

// RecordPayment validates and records a payment against a debt, decrementing
// its remaining balance. The store enforces the overpayment guard inside the
// same transaction as the insert.
func (s *DebtService) RecordPayment(ctx context.Context, debtID, amountPaid int64) (*models.Payment, error) {
	if err := validateAmount("amountPaid", amountPaid); err != nil {
		return nil, err
	}

	payment := &models.Payment{DebtID: debtID, AmountPaid: amountPaid}
	if err := s.store.RecordPayment(ctx, payment); err != nil {
		slog.Error("record payment failed", "debt_id", debtID, "amount_paid", amountPaid, "error", err)
		return nil, err
	}

	slog.Info("payment recorded",
		"payment_id", payment.ID,
		"debt_id", payment.DebtID,
		"amount_paid", payment.AmountPaid,
	)
	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *DebtService) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

// ListPayments retrieves every payment.
func (s *DebtService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.store.ListPayments(ctx)
}

// ListPaymentsByDebt retrieves a debt's payment ledger.
func (s *DebtService) ListPaymentsByDebt(ctx context.Context, debtID int64) ([]*models.Payment, error) {
	return s.store.ListPaymentsByDebt(ctx, debtID)
}

// UpdatePayment validates and corrects a recorded payment, reversing its
// prior effect on the debt's remaining balance before applying the new amount.
func (s *DebtService) UpdatePayment(ctx context.Context, id, newAmount int64) (*models.Payment, error) {
	if err := validateAmount("amountPaid", newAmount); err != nil {
		return nil, err
	}

	if err := s.store.UpdatePayment(ctx, id, newAmount); err != nil {
		slog.Error("update payment failed", "payment_id", id, "error", err)
		return nil, err
	}

	slog.Info("payment updated", "payment_id", id, "amount_paid", newAmount)
	return s.store.GetPayment(ctx, id)
}

// DeletePayment voids a payment, restoring its amount to the debt's
// remaining balance.
func (s *DebtService) DeletePayment(ctx context.Context, id int64) error {
	if err := s.store.DeletePayment(ctx, id); err != nil {
		slog.Error("delete payment failed", "payment_id", id, "error", err)
		return err
	}

	slog.Info("payment deleted", "payment_id", id)
	return nil
}

// DeletePaymentsByDebt voids a debt's whole ledger, restoring its remaining
// balance to the full principal.
func (s *DebtService) DeletePaymentsByDebt(ctx context.Context, debtID int64) error {
	if err := s.store.DeletePaymentsByDebt(ctx, debtID); err != nil {
		slog.Error("delete payments by debt failed", "debt_id", debtID, "error", err)
		return err
	}

	slog.Info("debt payments deleted", "debt_id", debtID)
	return nil
}

// DeletePaymentsByClient voids the ledgers of every debt owed by a client.
func (s *DebtService) DeletePaymentsByClient(ctx context.Context, clientID int64) error {
	if err := s.store.DeletePaymentsByClient(ctx, clientID); err != nil {
		slog.Error("delete payments by client failed", "client_id", clientID, "error", err)
		return err
	}

	slog.Info("client payments deleted", "client_id", clientID)
	return nil
}
