package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// setupDebtFixtures creates a client and category to attach debts to.
func setupDebtFixtures(t *testing.T, store storage.Store) (*models.Client, *models.Category) {
	t.Helper()
	ctx := context.Background()

	client, err := NewClientService(store).Create(ctx, "Mohammed", "0611165517")
	require.NoError(t, err)
	category, err := NewCategoryService(store).Create(ctx, "groceries")
	require.NoError(t, err)

	return client, category
}

func TestDebtServiceCreate(t *testing.T) {
	store := newTestStore(t)
	svc := NewDebtService(store)
	client, category := setupDebtFixtures(t, store)
	ctx := context.Background()

	debt, err := svc.Create(ctx, 200, client.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), debt.Amount)
	assert.Equal(t, int64(200), debt.Remaining, "remaining starts at the principal")
	assert.NotZero(t, debt.Date)

	_, err = svc.Create(ctx, 0, client.ID, category.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	_, err = svc.Create(ctx, -5, client.ID, category.ID)
	require.ErrorAs(t, err, &verr)
}

func TestDebtServicePaymentFlow(t *testing.T) {
	store := newTestStore(t)
	svc := NewDebtService(store)
	client, category := setupDebtFixtures(t, store)
	ctx := context.Background()

	debt, err := svc.Create(ctx, 200, client.ID, category.ID)
	require.NoError(t, err)

	payment, err := svc.RecordPayment(ctx, debt.ID, 50)
	require.NoError(t, err)

	got, err := svc.Get(ctx, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), got.Remaining)

	_, err = svc.UpdatePayment(ctx, payment.ID, 80)
	require.NoError(t, err)
	got, err = svc.Get(ctx, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), got.Remaining)

	require.NoError(t, svc.DeletePayment(ctx, payment.ID))
	got, err = svc.Get(ctx, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got.Remaining)
}

func TestDebtServicePaymentValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewDebtService(store)
	client, category := setupDebtFixtures(t, store)
	ctx := context.Background()

	debt, err := svc.Create(ctx, 100, client.ID, category.ID)
	require.NoError(t, err)

	var verr *ValidationError
	_, err = svc.RecordPayment(ctx, debt.ID, 0)
	require.ErrorAs(t, err, &verr)
	_, err = svc.RecordPayment(ctx, debt.ID, -10)
	require.ErrorAs(t, err, &verr)

	_, err = svc.RecordPayment(ctx, debt.ID, 500)
	assert.ErrorIs(t, err, storage.ErrOverpayment)
}

func TestDebtServiceRangeValidation(t *testing.T) {
	svc := NewDebtService(newTestStore(t))
	ctx := context.Background()

	var verr *ValidationError

	_, err := svc.ListByAmountRange(ctx, 100, 10)
	require.ErrorAs(t, err, &verr)

	_, err = svc.ListByDateRange(ctx, 20231301, 20231401)
	require.ErrorAs(t, err, &verr)

	_, err = svc.ListByDateRange(ctx, 20231001, 20230101)
	require.ErrorAs(t, err, &verr)

	got, err := svc.ListByDateRange(ctx, 20230101, 20231231)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDebtServiceAggregates(t *testing.T) {
	store := newTestStore(t)
	svc := NewDebtService(store)
	client, category := setupDebtFixtures(t, store)
	ctx := context.Background()

	d1, err := svc.Create(ctx, 100, client.ID, category.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 250, client.ID, category.ID)
	require.NoError(t, err)

	total, err := svc.TotalByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	total, err = svc.TotalByCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	total, err = svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	// Pay off d1 entirely; only the 250 debt stays outstanding.
	_, err = svc.RecordPayment(ctx, d1.ID, 100)
	require.NoError(t, err)

	total, err = svc.TotalOutstanding(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(250), total)
}
