package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/konnash/konnash/internal/dateutil"
	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// The payment ledger maintains one invariant: a debt's remaining balance
// always equals its amount minus the sum of its currently stored payments.
// Every write below pairs the balance adjustment with the row change inside
// a single transaction, so the invariant survives partial failures.

// RecordPayment decrements the parent debt's remaining balance and inserts
// the ledger row. PaymentDate defaults to today's YYYYMMDD stamp.
func (s *SQLiteStore) RecordPayment(ctx context.Context, payment *models.Payment) error {
	if payment.PaymentDate == 0 {
		payment.PaymentDate = dateutil.Today()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := decrementRemaining(ctx, tx, payment.DebtID, payment.AmountPaid); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO payments (debt_id, amount_paid, payment_date) VALUES (?, ?, ?)",
			payment.DebtID, payment.AmountPaid, payment.PaymentDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read payment id: %w", err)
		}
		payment.ID = id

		return nil
	})
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	payment := &models.Payment{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, debt_id, amount_paid, payment_date FROM payments WHERE id = ?",
		id,
	).Scan(&payment.ID, &payment.DebtID, &payment.AmountPaid, &payment.PaymentDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// ListPayments retrieves every payment, newest first.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT id, debt_id, amount_paid, payment_date FROM payments ORDER BY payment_date DESC, id DESC")
}

// ListPaymentsByDebt retrieves a debt's payments, newest first.
func (s *SQLiteStore) ListPaymentsByDebt(ctx context.Context, debtID int64) ([]*models.Payment, error) {
	return s.queryPayments(ctx,
		"SELECT id, debt_id, amount_paid, payment_date FROM payments WHERE debt_id = ? ORDER BY payment_date DESC, id DESC",
		debtID,
	)
}

// UpdatePayment reverses the payment's prior effect on the debt's remaining
// balance, applies newAmount instead, and rewrites the row. Reverse and
// reapply happen in one transaction, so an edit repeated any number of times
// still leaves remaining == amount - sum(payments). The original payment
// date is preserved.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, id int64, newAmount int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var debtID, oldAmount int64
		err := tx.QueryRowContext(ctx,
			"SELECT debt_id, amount_paid FROM payments WHERE id = ?", id,
		).Scan(&debtID, &oldAmount)
		if err == sql.ErrNoRows {
			return fmt.Errorf("payment %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read payment: %w", err)
		}

		if err := incrementRemaining(ctx, tx, debtID, oldAmount); err != nil {
			return err
		}
		if err := decrementRemaining(ctx, tx, debtID, newAmount); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE payments SET amount_paid = ? WHERE id = ?", newAmount, id,
		); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		return nil
	})
}

// DeletePayment restores the payment's amount to the debt's remaining
// balance and removes the row.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var debtID, amount int64
		err := tx.QueryRowContext(ctx,
			"SELECT debt_id, amount_paid FROM payments WHERE id = ?", id,
		).Scan(&debtID, &amount)
		if err == sql.ErrNoRows {
			return fmt.Errorf("payment %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read payment: %w", err)
		}

		if err := incrementRemaining(ctx, tx, debtID, amount); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}

		return nil
	})
}

// DeletePaymentsByDebt removes all of a debt's payments, restoring each
// amount to the debt's remaining balance.
func (s *SQLiteStore) DeletePaymentsByDebt(ctx context.Context, debtID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return deletePaymentsForDebt(ctx, tx, debtID)
	})
}

// DeletePaymentsByClient removes the payment history of every debt owed by a
// client, restoring each debt's remaining balance.
func (s *SQLiteStore) DeletePaymentsByClient(ctx context.Context, clientID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT id FROM debts WHERE client_id = ?", clientID)
		if err != nil {
			return fmt.Errorf("failed to query client debts: %w", err)
		}

		var debtIDs []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan debt id: %w", err)
			}
			debtIDs = append(debtIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate debt ids: %w", err)
		}

		for _, id := range debtIDs {
			if err := deletePaymentsForDebt(ctx, tx, id); err != nil {
				return err
			}
		}

		return nil
	})
}

// deletePaymentsForDebt restores the sum of a debt's payments to its
// remaining balance, then drops the rows.
func deletePaymentsForDebt(ctx context.Context, tx *sql.Tx, debtID int64) error {
	var paid int64
	err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_paid), 0) FROM payments WHERE debt_id = ?", debtID,
	).Scan(&paid)
	if err != nil {
		return fmt.Errorf("failed to sum debt payments: %w", err)
	}
	if paid == 0 {
		return nil
	}

	if err := incrementRemaining(ctx, tx, debtID, paid); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE debt_id = ?", debtID); err != nil {
		return fmt.Errorf("failed to delete debt payments: %w", err)
	}

	return nil
}

// decrementRemaining subtracts amount from a debt's remaining balance. The
// guard runs against the row inside the current transaction, so a payment
// can never push the balance negative.
func decrementRemaining(ctx context.Context, tx *sql.Tx, debtID, amount int64) error {
	var remaining int64
	err := tx.QueryRowContext(ctx,
		"SELECT remaining FROM debts WHERE id = ?", debtID,
	).Scan(&remaining)
	if err == sql.ErrNoRows {
		return fmt.Errorf("debt %d: %w", debtID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read remaining balance: %w", err)
	}

	if amount > remaining {
		return fmt.Errorf("debt %d: paying %d with %d remaining: %w",
			debtID, amount, remaining, storage.ErrOverpayment)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE debts SET remaining = remaining - ? WHERE id = ?", amount, debtID,
	); err != nil {
		return fmt.Errorf("failed to decrement remaining balance: %w", err)
	}

	return nil
}

// incrementRemaining adds amount back to a debt's remaining balance (the
// undo half of the reversible ledger).
func incrementRemaining(ctx context.Context, tx *sql.Tx, debtID, amount int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE debts SET remaining = remaining + ? WHERE id = ?", amount, debtID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment remaining balance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increment result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("debt %d: %w", debtID, storage.ErrNotFound)
	}

	return nil
}

// queryPayments runs a query returning payment rows and scans them.
func (s *SQLiteStore) queryPayments(ctx context.Context, query string, args ...any) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.DebtID,
			&payment.AmountPaid, &payment.PaymentDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}
