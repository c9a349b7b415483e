// Package export writes notebook data as CSV for use outside the app
// (spreadsheets, backups).
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/konnash/konnash/internal/storage"
)

// DebtRecord is one CSV row of the debts export, with the client and
// category resolved to names.
type DebtRecord struct {
	ID        int64  `csv:"id"`
	Client    string `csv:"client"`
	Phone     string `csv:"phone"`
	Category  string `csv:"category"`
	Amount    int64  `csv:"amount"`
	Remaining int64  `csv:"remaining"`
	Date      int    `csv:"date"`
}

// PaymentRecord is one CSV row of the payments export.
type PaymentRecord struct {
	ID          int64  `csv:"id"`
	DebtID      int64  `csv:"debt_id"`
	Client      string `csv:"client"`
	AmountPaid  int64  `csv:"amount_paid"`
	PaymentDate int    `csv:"payment_date"`
}

// WriteDebtsCSV writes every debt to w, joining in client and category
// names. Debts whose client or category row is missing show an empty name
// rather than failing the whole export.
func WriteDebtsCSV(ctx context.Context, store storage.Store, w io.Writer) error {
	debts, err := store.ListDebts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list debts: %w", err)
	}

	clientNames, clientPhones, err := clientLookup(ctx, store)
	if err != nil {
		return err
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	records := make([]*DebtRecord, 0, len(debts))
	for _, d := range debts {
		records = append(records, &DebtRecord{
			ID:        d.ID,
			Client:    clientNames[d.ClientID],
			Phone:     clientPhones[d.ClientID],
			Category:  categoryNames[d.CategoryID],
			Amount:    d.Amount,
			Remaining: d.Remaining,
			Date:      d.Date,
		})
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("failed to write debts csv: %w", err)
	}
	return nil
}

// WritePaymentsCSV writes every payment to w with the paying client resolved
// through the payment's debt.
func WritePaymentsCSV(ctx context.Context, store storage.Store, w io.Writer) error {
	payments, err := store.ListPayments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list payments: %w", err)
	}

	debts, err := store.ListDebts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list debts: %w", err)
	}
	debtClient := make(map[int64]int64, len(debts))
	for _, d := range debts {
		debtClient[d.ID] = d.ClientID
	}

	clientNames, _, err := clientLookup(ctx, store)
	if err != nil {
		return err
	}

	records := make([]*PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, &PaymentRecord{
			ID:          p.ID,
			DebtID:      p.DebtID,
			Client:      clientNames[debtClient[p.DebtID]],
			AmountPaid:  p.AmountPaid,
			PaymentDate: p.PaymentDate,
		})
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("failed to write payments csv: %w", err)
	}
	return nil
}

func clientLookup(ctx context.Context, store storage.Store) (names, phones map[int64]string, err error) {
	clients, err := store.ListClients(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list clients: %w", err)
	}

	names = make(map[int64]string, len(clients))
	phones = make(map[int64]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
		phones[c.ID] = c.Phone
	}
	return names, phones, nil
}
