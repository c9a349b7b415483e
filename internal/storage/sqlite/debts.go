package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/konnash/konnash/internal/dateutil"
	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

const debtColumns = "id, client_id, category_id, amount, remaining, date"

// CreateDebt inserts a new debt. Remaining starts equal to Amount and Date
// defaults to today's YYYYMMDD stamp.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.Debt) error {
	if debt.Date == 0 {
		debt.Date = dateutil.Today()
	}
	debt.Remaining = debt.Amount

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO debts (client_id, category_id, amount, remaining, date) VALUES (?, ?, ?, ?, ?)",
		debt.ClientID, debt.CategoryID, debt.Amount, debt.Remaining, debt.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read debt id: %w", err)
	}
	debt.ID = id

	return nil
}

// GetDebt retrieves a debt by ID.
func (s *SQLiteStore) GetDebt(ctx context.Context, id int64) (*models.Debt, error) {
	debt := &models.Debt{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE id = ?",
		id,
	).Scan(&debt.ID, &debt.ClientID, &debt.CategoryID, &debt.Amount, &debt.Remaining, &debt.Date)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	return debt, nil
}

// ListDebts retrieves all debts, newest first.
func (s *SQLiteStore) ListDebts(ctx context.Context) ([]*models.Debt, error) {
	return s.queryDebts(ctx, "SELECT "+debtColumns+" FROM debts ORDER BY date DESC, id DESC")
}

// ListDebtsByAmountRange retrieves debts with min <= amount <= max.
func (s *SQLiteStore) ListDebtsByAmountRange(ctx context.Context, min, max int64) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE amount >= ? AND amount <= ? ORDER BY amount",
		min, max,
	)
}

// ListDebtsByDateRange retrieves debts created within [minDate, maxDate].
func (s *SQLiteStore) ListDebtsByDateRange(ctx context.Context, minDate, maxDate int) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE date >= ? AND date <= ? ORDER BY date",
		minDate, maxDate,
	)
}

// ListOutstandingDebts retrieves debts that still have an unpaid balance.
func (s *SQLiteStore) ListOutstandingDebts(ctx context.Context) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE remaining > 0 ORDER BY date DESC, id DESC")
}

// ListDebtsByClient retrieves all debts owed by a client.
func (s *SQLiteStore) ListDebtsByClient(ctx context.Context, clientID int64) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE client_id = ? ORDER BY date DESC, id DESC",
		clientID,
	)
}

// ListDebtsByCategory retrieves all debts under a category.
func (s *SQLiteStore) ListDebtsByCategory(ctx context.Context, categoryID int64) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts WHERE category_id = ? ORDER BY date DESC, id DESC",
		categoryID,
	)
}

// TotalAmountByClient sums the principal of all debts owed by a client.
// Returns 0 when the client has no debts.
func (s *SQLiteStore) TotalAmountByClient(ctx context.Context, clientID int64) (int64, error) {
	return s.sumAmount(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM debts WHERE client_id = ?", clientID)
}

// TotalAmountByCategory sums the principal of all debts under a category.
func (s *SQLiteStore) TotalAmountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return s.sumAmount(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM debts WHERE category_id = ?", categoryID)
}

// TotalOutstandingAmount sums the principal of debts with remaining > 0.
func (s *SQLiteStore) TotalOutstandingAmount(ctx context.Context) (int64, error) {
	return s.sumAmount(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM debts WHERE remaining > 0")
}

// TotalAmount sums the principal of every debt.
func (s *SQLiteStore) TotalAmount(ctx context.Context) (int64, error) {
	return s.sumAmount(ctx, "SELECT COALESCE(SUM(amount), 0) FROM debts")
}

// UpdateDebt rewrites a debt's amount, client, and category. Remaining moves
// by the change in amount, keeping remaining == amount - sum(payments); an
// edit that would push remaining below zero fails with ErrOverpayment.
func (s *SQLiteStore) UpdateDebt(ctx context.Context, debt *models.Debt) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var oldAmount, oldRemaining int64
		err := tx.QueryRowContext(ctx,
			"SELECT amount, remaining FROM debts WHERE id = ?", debt.ID,
		).Scan(&oldAmount, &oldRemaining)
		if err == sql.ErrNoRows {
			return fmt.Errorf("debt %d: %w", debt.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read debt: %w", err)
		}

		newRemaining := oldRemaining + (debt.Amount - oldAmount)
		if newRemaining < 0 {
			return fmt.Errorf("debt %d: amount %d below already paid %d: %w",
				debt.ID, debt.Amount, oldAmount-oldRemaining, storage.ErrOverpayment)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE debts SET amount = ?, remaining = ?, client_id = ?, category_id = ? WHERE id = ?",
			debt.Amount, newRemaining, debt.ClientID, debt.CategoryID, debt.ID,
		); err != nil {
			return fmt.Errorf("failed to update debt: %w", err)
		}
		debt.Remaining = newRemaining

		return nil
	})
}

// DeleteDebt removes a debt and its payment history in one transaction.
func (s *SQLiteStore) DeleteDebt(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM debts WHERE id = ?", id).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("debt %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check debt existence: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE debt_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete debt payments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM debts WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete debt: %w", err)
		}

		return nil
	})
}

// DeleteDebtsByClient removes all of a client's debts and their payment
// history in one transaction.
func (s *SQLiteStore) DeleteDebtsByClient(ctx context.Context, clientID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM payments WHERE debt_id IN (SELECT id FROM debts WHERE client_id = ?)", clientID,
		); err != nil {
			return fmt.Errorf("failed to delete client payments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM debts WHERE client_id = ?", clientID); err != nil {
			return fmt.Errorf("failed to delete client debts: %w", err)
		}
		return nil
	})
}

// DeleteAllDebts removes every debt and payment.
func (s *SQLiteStore) DeleteAllDebts(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM payments"); err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM debts"); err != nil {
			return fmt.Errorf("failed to delete debts: %w", err)
		}
		return nil
	})
}

// queryDebts runs a query returning debt rows and scans them.
func (s *SQLiteStore) queryDebts(ctx context.Context, query string, args ...any) ([]*models.Debt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	debts := []*models.Debt{}
	for rows.Next() {
		debt := &models.Debt{}
		if err := rows.Scan(&debt.ID, &debt.ClientID, &debt.CategoryID,
			&debt.Amount, &debt.Remaining, &debt.Date); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	return debts, nil
}

func (s *SQLiteStore) sumAmount(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum debt amounts: %w", err)
	}
	return total, nil
}
