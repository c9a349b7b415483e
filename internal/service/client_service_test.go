package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnash/konnash/internal/storage"
	"github.com/konnash/konnash/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestClientServiceCreate(t *testing.T) {
	svc := NewClientService(newTestStore(t))
	ctx := context.Background()

	client, err := svc.Create(ctx, "Ali", "0611165517")
	require.NoError(t, err)
	assert.NotZero(t, client.ID)

	got, err := svc.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Name)
	assert.Equal(t, "0611165517", got.Phone)
}

func TestClientServiceValidation(t *testing.T) {
	svc := NewClientService(newTestStore(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		client string
		phone  string
		field  string
	}{
		{"empty name", "", "0611165517", "name"},
		{"blank name", "   ", "", "name"},
		{"short phone", "Ali", "061116", "phone"},
		{"non-digit phone", "Ali", "06111655ab", "phone"},
		{"phone without leading zero", "Ali", "6111655170", "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.client, tt.phone)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// Empty phone is allowed.
	_, err := svc.Create(ctx, "NoPhone", "")
	assert.NoError(t, err)
}

func TestClientServiceUpdateValidates(t *testing.T) {
	svc := NewClientService(newTestStore(t))
	ctx := context.Background()

	client, err := svc.Create(ctx, "Sara", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, client.ID, "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	updated, err := svc.Update(ctx, client.ID, "Sara B", "0622334455")
	require.NoError(t, err)
	assert.Equal(t, "Sara B", updated.Name)
}

func TestCategoryService(t *testing.T) {
	store := newTestStore(t)
	categories := NewCategoryService(store)
	clients := NewClientService(store)
	debts := NewDebtService(store)
	ctx := context.Background()

	_, err := categories.Create(ctx, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	category, err := categories.Create(ctx, "groceries")
	require.NoError(t, err)

	renamed, err := categories.Rename(ctx, category.ID, "food")
	require.NoError(t, err)
	assert.Equal(t, "food", renamed.Name)

	// Guard: a category with debts cannot be deleted.
	client, err := clients.Create(ctx, "Ali", "")
	require.NoError(t, err)
	debt, err := debts.Create(ctx, 100, client.ID, category.ID)
	require.NoError(t, err)

	err = categories.Delete(ctx, category.ID)
	assert.ErrorIs(t, err, storage.ErrCategoryInUse)

	require.NoError(t, debts.Delete(ctx, debt.ID))
	assert.NoError(t, categories.Delete(ctx, category.ID))
}
