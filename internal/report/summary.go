// Package report computes tabular summaries from debts and their ledgers,
// the aggregates the notebook's overview screens display.
package report

import (
	"sort"

	"github.com/konnash/konnash/internal/models"
)

// ClientSummary aggregates one client's position across all of their debts.
type ClientSummary struct {
	ClientID    int64  `json:"clientId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	DebtCount   int    `json:"debtCount"`
	OpenDebts   int    `json:"openDebts"`
	TotalOwed   int64  `json:"totalOwed"`   // sum of principals
	TotalPaid   int64  `json:"totalPaid"`   // sum of amounts already repaid
	Outstanding int64  `json:"outstanding"` // sum of remaining balances
}

// Overview is the notebook-wide aggregate.
type Overview struct {
	ClientCount int   `json:"clientCount"`
	DebtCount   int   `json:"debtCount"`
	OpenDebts   int   `json:"openDebts"`
	TotalOwed   int64 `json:"totalOwed"`
	TotalPaid   int64 `json:"totalPaid"`
	Outstanding int64 `json:"outstanding"`
}

// BuildClientSummaries folds debts into per-client summaries, ordered by
// outstanding balance (largest first, name as tiebreaker). A debt's paid
// portion is its principal minus its remaining balance, so the ledger rows
// themselves are not needed here. Clients without debts appear with zero
// totals.
func BuildClientSummaries(clients []*models.Client, debts []*models.Debt) []ClientSummary {
	byClient := make(map[int64]*ClientSummary, len(clients))
	for _, c := range clients {
		byClient[c.ID] = &ClientSummary{ClientID: c.ID, Name: c.Name, Phone: c.Phone}
	}

	for _, d := range debts {
		s, ok := byClient[d.ClientID]
		if !ok {
			// Debt referencing an unknown client; skip rather than invent a row.
			continue
		}
		s.DebtCount++
		if d.Outstanding() {
			s.OpenDebts++
		}
		s.TotalOwed += d.Amount
		s.TotalPaid += d.Amount - d.Remaining
		s.Outstanding += d.Remaining
	}

	summaries := make([]ClientSummary, 0, len(byClient))
	for _, s := range byClient {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Outstanding != summaries[j].Outstanding {
			return summaries[i].Outstanding > summaries[j].Outstanding
		}
		return summaries[i].Name < summaries[j].Name
	})

	return summaries
}

// BuildOverview folds debts into the notebook-wide aggregate.
func BuildOverview(clients []*models.Client, debts []*models.Debt) Overview {
	o := Overview{ClientCount: len(clients), DebtCount: len(debts)}
	for _, d := range debts {
		if d.Outstanding() {
			o.OpenDebts++
		}
		o.TotalOwed += d.Amount
		o.TotalPaid += d.Amount - d.Remaining
		o.Outstanding += d.Remaining
	}
	return o
}
