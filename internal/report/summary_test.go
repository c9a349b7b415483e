package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnash/konnash/internal/models"
)

var (
	testClients = []*models.Client{
		{ID: 1, Name: "Mohammed", Phone: "0611165517"},
		{ID: 2, Name: "Sara"},
		{ID: 3, Name: "Idle"},
	}
	testDebts = []*models.Debt{
		{ID: 10, ClientID: 1, CategoryID: 1, Amount: 200, Remaining: 150},
		{ID: 11, ClientID: 1, CategoryID: 2, Amount: 100, Remaining: 0},
		{ID: 12, ClientID: 2, CategoryID: 1, Amount: 250, Remaining: 250},
	}
)

func TestBuildClientSummaries(t *testing.T) {
	summaries := BuildClientSummaries(testClients, testDebts)
	require.Len(t, summaries, 3)

	// Ordered by outstanding, largest first.
	assert.Equal(t, "Sara", summaries[0].Name)
	assert.Equal(t, int64(250), summaries[0].Outstanding)

	mohammed := summaries[1]
	assert.Equal(t, int64(1), mohammed.ClientID)
	assert.Equal(t, 2, mohammed.DebtCount)
	assert.Equal(t, 1, mohammed.OpenDebts)
	assert.Equal(t, int64(300), mohammed.TotalOwed)
	assert.Equal(t, int64(150), mohammed.TotalPaid)
	assert.Equal(t, int64(150), mohammed.Outstanding)

	// Client with no debts still gets a row.
	idle := summaries[2]
	assert.Equal(t, "Idle", idle.Name)
	assert.Zero(t, idle.DebtCount)
	assert.Zero(t, idle.Outstanding)
}

func TestBuildClientSummariesSkipsUnknownClient(t *testing.T) {
	orphaned := append(testDebts, &models.Debt{ID: 13, ClientID: 99, Amount: 50, Remaining: 50})
	summaries := BuildClientSummaries(testClients, orphaned)
	assert.Len(t, summaries, 3)
}

func TestBuildOverview(t *testing.T) {
	o := BuildOverview(testClients, testDebts)

	assert.Equal(t, 3, o.ClientCount)
	assert.Equal(t, 3, o.DebtCount)
	assert.Equal(t, 2, o.OpenDebts)
	assert.Equal(t, int64(550), o.TotalOwed)
	assert.Equal(t, int64(150), o.TotalPaid)
	assert.Equal(t, int64(400), o.Outstanding)
}

func TestBuildOverviewEmpty(t *testing.T) {
	o := BuildOverview(nil, nil)
	assert.Zero(t, o.TotalOwed)
	assert.Zero(t, o.OpenDebts)
}
