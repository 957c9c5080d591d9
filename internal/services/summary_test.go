package services

import (
	"strings"
	"testing"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/helpers"
)

func seedView() []*models.Transaction {
	return []*models.Transaction{
		{TransactionID: "t1", WalletID: testWallet, Description: "Salário", Amount: 3000, Date: "2025-03-05", Category: "salary", Source: "acc-1", Paid: true, OwnerName: "Ana"},
		{TransactionID: "t2", WalletID: testWallet, Description: "Mercado Central", Amount: -150, Date: "2025-03-10", Category: "food", Source: "acc-1", Paid: true, OwnerName: "Ana"},
		{TransactionID: "t3", WalletID: testWallet, Description: "Jantar", Amount: -80, Date: "2025-03-12", Category: "food", Source: "card-1"},
		{TransactionID: "t4", WalletID: testWallet, Description: "Aluguel", Amount: -900, Date: "2025-04-01", Category: "home", Source: "acc-1"},
	}
}

func TestFilterByMonth(t *testing.T) {
	got := FilterTransactions(seedView(), dto.TransactionFilter{Month: "2025-03"}, nil)
	if len(got) != 3 {
		t.Fatalf("length mismatch: got %d", len(got))
	}
	for _, tx := range got {
		if !strings.HasPrefix(tx.Date, "2025-03") {
			t.Fatalf("wrong month leaked through: %s", tx.Date)
		}
	}
}

func TestFilterBySearchIsCaseInsensitive(t *testing.T) {
	got := FilterTransactions(seedView(), dto.TransactionFilter{Search: "mercado"}, nil)
	if len(got) != 1 || got[0].TransactionID != "t2" {
		t.Fatalf("search mismatch: %+v", got)
	}
}

func TestFilterBySource(t *testing.T) {
	got := FilterTransactions(seedView(), dto.TransactionFilter{Source: "card-1"}, nil)
	if len(got) != 1 || got[0].TransactionID != "t3" {
		t.Fatalf("source filter mismatch: %+v", got)
	}
}

func TestFilterByStatus(t *testing.T) {
	cardIDs := map[string]bool{"card-1": true}

	pending := FilterTransactions(seedView(), dto.TransactionFilter{Status: dto.StatusPending}, cardIDs)
	if len(pending) != 1 || pending[0].TransactionID != "t4" {
		t.Fatalf("pending mismatch: %+v", pending)
	}

	// Incomes and card expenses count as paid even without the flag.
	paid := FilterTransactions(seedView(), dto.TransactionFilter{Status: dto.StatusPaid}, cardIDs)
	if len(paid) != 3 {
		t.Fatalf("paid mismatch: got %d", len(paid))
	}
}

func TestSummarizeTotals(t *testing.T) {
	sum := Summarize(seedView())
	if sum.Count != 4 {
		t.Fatalf("count mismatch: got %d", sum.Count)
	}
	if sum.Income != 3000 {
		t.Fatalf("income mismatch: got %v", sum.Income)
	}
	if sum.Expense != -1130 {
		t.Fatalf("expense mismatch: got %v", sum.Expense)
	}
	if sum.Total != 1870 {
		t.Fatalf("total mismatch: got %v", sum.Total)
	}
}

func TestViewFiltersAndSummarizes(t *testing.T) {
	ledger := newFakeLedger()
	ctx := helpers.TestCtx()
	for _, tx := range seedView() {
		if err := ledger.Create(ctx, tx); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}
	svc := NewSummaryService(ledger, newFakeAccounts(), newFakeCards())

	view, err := svc.View(ctx, testWallet, dto.TransactionFilter{Month: "2025-03"})
	if err != nil {
		t.Fatalf("View error: %v", err)
	}
	if len(view.Transactions) != 3 {
		t.Fatalf("length mismatch: got %d", len(view.Transactions))
	}
	if view.Summary.Total != 2770 {
		t.Fatalf("summary total mismatch: got %v", view.Summary.Total)
	}
}

func TestExportCSV(t *testing.T) {
	ledger := newFakeLedger()
	ctx := helpers.TestCtx()
	for _, tx := range seedView() {
		if err := ledger.Create(ctx, tx); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}
	accounts := newFakeAccounts(&models.Account{AccountID: "acc-1", WalletID: testWallet, Name: "Itaú"})
	cards := newFakeCards(&models.Card{CardID: "card-1", WalletID: testWallet, Name: "Nubank"})
	svc := NewSummaryService(ledger, accounts, cards)

	out, err := svc.ExportCSV(ctx, testWallet, dto.TransactionFilter{})
	if err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "\uFEFF") {
		t.Fatal("export must start with the UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF")), "\n")
	if len(lines) != 5 {
		t.Fatalf("line count mismatch: got %d", len(lines))
	}
	if lines[0] != "Data;Descrição;Valor;Categoria;Pagamento;Por" {
		t.Fatalf("header mismatch: %q", lines[0])
	}
	if lines[2] != "10/03/2025;Mercado Central;-150,00;Alimentação;Itaú;Ana" {
		t.Fatalf("row mismatch: %q", lines[2])
	}
	if !strings.Contains(lines[3], "Cartão Nubank") {
		t.Fatalf("card source must use the card name: %q", lines[3])
	}
	if !strings.Contains(lines[3], ";---") {
		t.Fatalf("missing owner must render as ---: %q", lines[3])
	}
}

func TestExportCSVUnknownSource(t *testing.T) {
	ledger := newFakeLedger()
	ctx := helpers.TestCtx()
	if err := ledger.Create(ctx, &models.Transaction{
		TransactionID: "t1", WalletID: testWallet, Description: "Antigo",
		Amount: -10, Date: "2025-03-01", Category: "other", Source: "gone",
	}); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	svc := NewSummaryService(ledger, newFakeAccounts(), newFakeCards())

	out, err := svc.ExportCSV(ctx, testWallet, dto.TransactionFilter{})
	if err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}
	if !strings.Contains(string(out), "Fonte Removida") {
		t.Fatal("deleted source must render as Fonte Removida")
	}
}
