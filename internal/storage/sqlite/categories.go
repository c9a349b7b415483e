package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// CreateCategory inserts a new category and populates its ID.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name) VALUES (?)",
		category.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read category id: %w", err)
	}
	category.ID = id

	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM categories WHERE id = ?",
		id,
	).Scan(&category.ID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListCategories retrieves all categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

// UpdateCategory renames a category.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ? WHERE id = ?",
		category.Name, category.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %d: %w", category.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteCategory removes a category. The referencing-debt check happens in
// the same transaction as the delete, so a debt created in between cannot be
// orphaned. The check lives here rather than relying on the engine's foreign
// key enforcement, which is off unless the pragma is set.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", id).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("category %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check category existence: %w", err)
		}

		var debtCount int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM debts WHERE category_id = ?", id,
		).Scan(&debtCount)
		if err != nil {
			return fmt.Errorf("failed to count referencing debts: %w", err)
		}
		if debtCount > 0 {
			return fmt.Errorf("category %d has %d debts: %w", id, debtCount, storage.ErrCategoryInUse)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		return nil
	})
}
