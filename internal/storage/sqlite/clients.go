package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// CreateClient inserts a new client and populates its ID.
func (s *SQLiteStore) CreateClient(ctx context.Context, client *models.Client) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO clients (name, phone) VALUES (?, ?)",
		client.Name, client.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read client id: %w", err)
	}
	client.ID = id

	return nil
}

// GetClient retrieves a client by ID.
func (s *SQLiteStore) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	client := &models.Client{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone FROM clients WHERE id = ?",
		id,
	).Scan(&client.ID, &client.Name, &client.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// ListClients retrieves all clients ordered by name.
func (s *SQLiteStore) ListClients(ctx context.Context) ([]*models.Client, error) {
	return s.queryClients(ctx, "SELECT id, name, phone FROM clients ORDER BY name")
}

// SearchClientsByName retrieves clients whose name contains namePart.
// SQLite LIKE is case-insensitive for ASCII, matching the search box behavior.
func (s *SQLiteStore) SearchClientsByName(ctx context.Context, namePart string) ([]*models.Client, error) {
	return s.queryClients(ctx,
		"SELECT id, name, phone FROM clients WHERE name LIKE ? ORDER BY name",
		"%"+namePart+"%",
	)
}

// SearchClientsByPhone retrieves clients whose phone contains phonePart.
func (s *SQLiteStore) SearchClientsByPhone(ctx context.Context, phonePart string) ([]*models.Client, error) {
	return s.queryClients(ctx,
		"SELECT id, name, phone FROM clients WHERE phone LIKE ? ORDER BY name",
		"%"+phonePart+"%",
	)
}

// GetClientByDebt retrieves the client that owns the given debt.
func (s *SQLiteStore) GetClientByDebt(ctx context.Context, debtID int64) (*models.Client, error) {
	client := &models.Client{}
	err := s.db.QueryRowContext(ctx,
		`SELECT cl.id, cl.name, cl.phone
		 FROM clients AS cl
		 INNER JOIN debts AS d ON cl.id = d.client_id
		 WHERE d.id = ?`,
		debtID,
	).Scan(&client.ID, &client.Name, &client.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client for debt %d: %w", debtID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client by debt: %w", err)
	}

	return client, nil
}

// UpdateClient rewrites a client's name and phone.
func (s *SQLiteStore) UpdateClient(ctx context.Context, client *models.Client) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE clients SET name = ?, phone = ? WHERE id = ?",
		client.Name, client.Phone, client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("client %d: %w", client.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteClient removes a client along with its debts and their payment
// history. The whole cascade runs in one transaction.
func (s *SQLiteStore) DeleteClient(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id = ?", id).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("client %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check client existence: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM payments WHERE debt_id IN (SELECT id FROM debts WHERE client_id = ?)", id,
		); err != nil {
			return fmt.Errorf("failed to delete client payments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM debts WHERE client_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete client debts: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		return nil
	})
}

// DeleteAllClients removes every client, debt, and payment.
func (s *SQLiteStore) DeleteAllClients(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			"DELETE FROM payments",
			"DELETE FROM debts",
			"DELETE FROM clients",
		} {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}
		return nil
	})
}

// queryClients runs a query returning client rows and scans them.
func (s *SQLiteStore) queryClients(ctx context.Context, query string, args ...any) ([]*models.Client, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []*models.Client{}
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(&client.ID, &client.Name, &client.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}
