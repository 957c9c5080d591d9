package services

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/models"
)

func TestExpandSingleEntry(t *testing.T) {
	entries := expandEntries(testWallet, "uid", "Ana", dto.CreateTransactionRequest{
		Description: "Mercado",
		Amount:      150,
		Date:        "2025-03-15",
		Category:    "food",
		Source:      "acc-1",
	}, models.Expense, time.Now())

	if len(entries) != 1 {
		t.Fatalf("entries length mismatch: got %d", len(entries))
	}
	e := entries[0]
	if e.Description != "Mercado" || e.Amount != -150 || e.Date != "2025-03-15" {
		t.Fatalf("entry mismatch: %+v", e)
	}
	if e.IsRecurring {
		t.Fatal("single entry must not be recurring")
	}
}

func TestExpandInstallmentsSplitAndDates(t *testing.T) {
	entries := expandEntries(testWallet, "uid", "Ana", dto.CreateTransactionRequest{
		Description:  "Notebook",
		Amount:       1000,
		Date:         "2025-01-31",
		Category:     "shopping",
		Source:       "card-1",
		Installments: 3,
	}, models.Expense, time.Now())

	if len(entries) != 3 {
		t.Fatalf("entries length mismatch: got %d", len(entries))
	}

	var sum float64
	for i, e := range entries {
		sum += e.Amount
		want := fmt.Sprintf("Notebook (%d/3)", i+1)
		if e.Description != want {
			t.Fatalf("description mismatch: got %q want %q", e.Description, want)
		}
	}
	// Plain division: the shares always sum back to the signed total.
	if math.Abs(sum-(-1000)) > 1e-9 {
		t.Fatalf("shares must conserve the total: got %v", sum)
	}
	// AddDate arithmetic: Jan 31 + 1 month normalizes past Feb's end.
	if entries[0].Date != "2025-01-31" || entries[1].Date != "2025-03-03" || entries[2].Date != "2025-03-31" {
		t.Fatalf("dates mismatch: %s %s %s", entries[0].Date, entries[1].Date, entries[2].Date)
	}
}

func TestExpandRecurringCarriesFullAmount(t *testing.T) {
	entries := expandEntries(testWallet, "uid", "Ana", dto.CreateTransactionRequest{
		Description:   "Academia",
		Amount:        90,
		Date:          "2025-03-01",
		Category:      "health",
		Source:        "acc-1",
		RepeatMonthly: true,
	}, models.Expense, time.Now())

	if len(entries) != recurrenceCount {
		t.Fatalf("entries length mismatch: got %d", len(entries))
	}
	for _, e := range entries {
		if e.Amount != -90 {
			t.Fatalf("recurring entries carry the full amount, got %v", e.Amount)
		}
		if e.Description != "Academia [Fixo]" {
			t.Fatalf("description mismatch: got %q", e.Description)
		}
		if !e.IsRecurring {
			t.Fatal("entry must be flagged recurring")
		}
	}
	if entries[11].Date != "2026-02-01" {
		t.Fatalf("last date mismatch: got %s", entries[11].Date)
	}
}

func TestExpandRecurringOverridesInstallments(t *testing.T) {
	entries := expandEntries(testWallet, "uid", "Ana", dto.CreateTransactionRequest{
		Description:   "Assinatura",
		Amount:        30,
		Date:          "2025-03-01",
		Category:      "leisure",
		RepeatMonthly: true,
		Installments:  4,
	}, models.Expense, time.Now())

	if len(entries) != recurrenceCount {
		t.Fatalf("recurrence must win over installments: got %d entries", len(entries))
	}
	for _, e := range entries {
		if e.Amount != -30 {
			t.Fatalf("amount mismatch: got %v", e.Amount)
		}
	}
}

func TestExpandIncomeKeepsPositiveSign(t *testing.T) {
	entries := expandEntries(testWallet, "uid", "Ana", dto.CreateTransactionRequest{
		Description: "Salário",
		Amount:      3000,
		Date:        "2025-03-05",
		Category:    "salary",
	}, models.Income, time.Now())

	if entries[0].Amount != 3000 {
		t.Fatalf("amount mismatch: got %v", entries[0].Amount)
	}
}
