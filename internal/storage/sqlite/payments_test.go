package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// setupDebt creates a client, category, and debt with the given principal.
func setupDebt(t *testing.T, store *SQLiteStore, amount int64) *models.Debt {
	t.Helper()
	ctx := context.Background()

	client := &models.Client{Name: "Ledger Client"}
	if err := store.CreateClient(ctx, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	category := &models.Category{Name: "ledger"}
	if err := store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	debt := &models.Debt{ClientID: client.ID, CategoryID: category.ID, Amount: amount}
	if err := store.CreateDebt(ctx, debt); err != nil {
		t.Fatalf("CreateDebt failed: %v", err)
	}

	return debt
}

func remaining(t *testing.T, store *SQLiteStore, debtID int64) int64 {
	t.Helper()
	debt, err := store.GetDebt(context.Background(), debtID)
	if err != nil {
		t.Fatalf("GetDebt failed: %v", err)
	}
	return debt.Remaining
}

// TestLedgerScenario walks the record -> edit -> delete sequence from the
// notebook's main flow: 200 owed, pay 50, correct to 80, then void the payment.
func TestLedgerScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	debt := setupDebt(t, store, 200)

	payment := &models.Payment{DebtID: debt.ID, AmountPaid: 50}
	if err := store.RecordPayment(ctx, payment); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if payment.ID == 0 {
		t.Error("Expected payment ID to be assigned")
	}
	if payment.PaymentDate == 0 {
		t.Error("Expected payment date to be stamped")
	}
	if got := remaining(t, store, debt.ID); got != 150 {
		t.Errorf("After paying 50: expected remaining 150, got %d", got)
	}

	if err := store.UpdatePayment(ctx, payment.ID, 80); err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	if got := remaining(t, store, debt.ID); got != 120 {
		t.Errorf("After editing to 80: expected remaining 120, got %d", got)
	}

	// Editing preserves the original payment date and applies the new amount.
	got, err := store.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if got.AmountPaid != 80 {
		t.Errorf("Expected amount 80, got %d", got.AmountPaid)
	}
	if got.PaymentDate != payment.PaymentDate {
		t.Errorf("Expected payment date preserved, got %d", got.PaymentDate)
	}

	if err := store.DeletePayment(ctx, payment.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	if got := remaining(t, store, debt.ID); got != 200 {
		t.Errorf("After voiding the payment: expected remaining 200, got %d", got)
	}
}

// TestLedgerInvariant churns a debt through an interleaved sequence of
// record, edit, and delete operations and checks after every step that
// remaining == amount - sum(live payments).
func TestLedgerInvariant(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	debt := setupDebt(t, store, 1000)

	check := func(step string) {
		t.Helper()
		payments, err := store.ListPaymentsByDebt(ctx, debt.ID)
		if err != nil {
			t.Fatalf("%s: ListPaymentsByDebt failed: %v", step, err)
		}
		var paid int64
		for _, p := range payments {
			paid += p.AmountPaid
		}
		if got := remaining(t, store, debt.ID); got != debt.Amount-paid {
			t.Fatalf("%s: invariant broken: remaining %d != %d - %d", step, got, debt.Amount, paid)
		}
	}

	p1 := &models.Payment{DebtID: debt.ID, AmountPaid: 100}
	p2 := &models.Payment{DebtID: debt.ID, AmountPaid: 250}
	p3 := &models.Payment{DebtID: debt.ID, AmountPaid: 50}
	for _, p := range []*models.Payment{p1, p2, p3} {
		if err := store.RecordPayment(ctx, p); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		check("record")
	}

	if err := store.UpdatePayment(ctx, p2.ID, 300); err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	check("edit p2 up")

	if err := store.UpdatePayment(ctx, p2.ID, 10); err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	check("edit p2 down")

	// Edit the same payment repeatedly: each edit must fully reverse the last.
	for _, amount := range []int64{200, 5, 199, 42} {
		if err := store.UpdatePayment(ctx, p1.ID, amount); err != nil {
			t.Fatalf("UpdatePayment(%d) failed: %v", amount, err)
		}
		check("re-edit p1")
	}

	if err := store.DeletePayment(ctx, p3.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	check("delete p3")

	if err := store.RecordPayment(ctx, &models.Payment{DebtID: debt.ID, AmountPaid: 400}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	check("record after delete")
}

func TestPaymentValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	debt := setupDebt(t, store, 100)

	t.Run("overpayment is rejected", func(t *testing.T) {
		err := store.RecordPayment(ctx, &models.Payment{DebtID: debt.ID, AmountPaid: 150})
		if !errors.Is(err, storage.ErrOverpayment) {
			t.Fatalf("Expected ErrOverpayment, got %v", err)
		}
		// Rejected payment must leave the ledger untouched.
		if got := remaining(t, store, debt.ID); got != 100 {
			t.Errorf("Expected remaining 100 after rejected payment, got %d", got)
		}
		payments, err := store.ListPaymentsByDebt(ctx, debt.ID)
		if err != nil {
			t.Fatalf("ListPaymentsByDebt failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("Expected no payment rows, got %d", len(payments))
		}
	})

	t.Run("edit beyond headroom is rejected and rolled back", func(t *testing.T) {
		payment := &models.Payment{DebtID: debt.ID, AmountPaid: 60}
		if err := store.RecordPayment(ctx, payment); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}

		// Old 60 is reversed before the new amount applies, so the headroom
		// is the full principal; 120 > 100 must fail atomically.
		err := store.UpdatePayment(ctx, payment.ID, 120)
		if !errors.Is(err, storage.ErrOverpayment) {
			t.Fatalf("Expected ErrOverpayment, got %v", err)
		}
		if got := remaining(t, store, debt.ID); got != 40 {
			t.Errorf("Expected remaining 40 after rolled-back edit, got %d", got)
		}
		current, err := store.GetPayment(ctx, payment.ID)
		if err != nil {
			t.Fatalf("GetPayment failed: %v", err)
		}
		if current.AmountPaid != 60 {
			t.Errorf("Expected payment amount unchanged at 60, got %d", current.AmountPaid)
		}
	})

	t.Run("payment against missing debt returns ErrNotFound", func(t *testing.T) {
		err := store.RecordPayment(ctx, &models.Payment{DebtID: 9999, AmountPaid: 10})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("operations on missing payment return ErrNotFound", func(t *testing.T) {
		if err := store.UpdatePayment(ctx, 9999, 10); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdatePayment: expected ErrNotFound, got %v", err)
		}
		if err := store.DeletePayment(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeletePayment: expected ErrNotFound, got %v", err)
		}
	})
}

func TestBulkPaymentDeletionRestoresBalances(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	client := &models.Client{Name: "Bulk Ledger"}
	if err := store.CreateClient(ctx, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	category := &models.Category{Name: "bulk-ledger"}
	if err := store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	d1 := &models.Debt{ClientID: client.ID, CategoryID: category.ID, Amount: 100}
	d2 := &models.Debt{ClientID: client.ID, CategoryID: category.ID, Amount: 200}
	for _, d := range []*models.Debt{d1, d2} {
		if err := store.CreateDebt(ctx, d); err != nil {
			t.Fatalf("CreateDebt failed: %v", err)
		}
	}
	for _, p := range []*models.Payment{
		{DebtID: d1.ID, AmountPaid: 30},
		{DebtID: d1.ID, AmountPaid: 20},
		{DebtID: d2.ID, AmountPaid: 150},
	} {
		if err := store.RecordPayment(ctx, p); err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
	}

	t.Run("by debt", func(t *testing.T) {
		if err := store.DeletePaymentsByDebt(ctx, d1.ID); err != nil {
			t.Fatalf("DeletePaymentsByDebt failed: %v", err)
		}
		if got := remaining(t, store, d1.ID); got != 100 {
			t.Errorf("Expected d1 restored to 100, got %d", got)
		}
		payments, err := store.ListPaymentsByDebt(ctx, d1.ID)
		if err != nil {
			t.Fatalf("ListPaymentsByDebt failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("Expected d1 to have no payments, got %d", len(payments))
		}
		// d2 untouched.
		if got := remaining(t, store, d2.ID); got != 50 {
			t.Errorf("Expected d2 at 50, got %d", got)
		}
	})

	t.Run("by client", func(t *testing.T) {
		if err := store.DeletePaymentsByClient(ctx, client.ID); err != nil {
			t.Fatalf("DeletePaymentsByClient failed: %v", err)
		}
		if got := remaining(t, store, d2.ID); got != 200 {
			t.Errorf("Expected d2 restored to 200, got %d", got)
		}
		payments, err := store.ListPayments(ctx)
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("Expected no payments left, got %d", len(payments))
		}
	})
}
