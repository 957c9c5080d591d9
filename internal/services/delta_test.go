package services

import (
	"errors"
	"testing"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/helpers"
)

func TestForwardDeltaRoutingTable(t *testing.T) {
	cases := []struct {
		name     string
		src      Source
		polarity models.Polarity
		want     float64
	}{
		{"wallet expense", Source{Kind: KindWallet}, Expense, 0},
		{"wallet income", Source{Kind: KindWallet}, Income, 0},
		{"card expense grows bill", Source{Kind: KindCard, ID: "c"}, Expense, 100},
		{"card income is a no-op", Source{Kind: KindCard, ID: "c"}, Income, 0},
		{"account expense debits", Source{Kind: KindAccount, ID: "a"}, Expense, -100},
		{"account income credits", Source{Kind: KindAccount, ID: "a"}, Income, 100},
		{"debt expense amortizes", Source{Kind: KindDebt, ID: "d"}, Expense, -100},
		{"debt income grows", Source{Kind: KindDebt, ID: "d"}, Income, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := forwardDelta(tc.src, tc.polarity, 100); got != tc.want {
				t.Fatalf("delta mismatch: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestForwardDeltaIgnoresMagnitudeSign(t *testing.T) {
	src := Source{Kind: KindAccount, ID: "a"}
	if forwardDelta(src, Expense, -100) != forwardDelta(src, Expense, 100) {
		t.Fatal("magnitude sign must not matter")
	}
}

func TestIsEffectiveImmediately(t *testing.T) {
	today := "2025-03-15"
	cases := []struct {
		name     string
		src      Source
		polarity models.Polarity
		date     string
		want     bool
	}{
		{"wallet never", Source{Kind: KindWallet}, Expense, today, false},
		{"card always", Source{Kind: KindCard, ID: "c"}, Expense, "2025-04-01", true},
		{"account expense due", Source{Kind: KindAccount, ID: "a"}, Expense, today, true},
		{"account expense past", Source{Kind: KindAccount, ID: "a"}, Expense, "2025-02-01", true},
		{"account expense future", Source{Kind: KindAccount, ID: "a"}, Expense, "2025-03-16", false},
		{"account income future", Source{Kind: KindAccount, ID: "a"}, Income, "2025-04-01", true},
		{"debt expense future", Source{Kind: KindDebt, ID: "d"}, Expense, "2025-04-01", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isEffectiveImmediately(tc.src, tc.polarity, tc.date, today); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestComputeNetDeltaSameHolderNets(t *testing.T) {
	src := Source{Kind: KindAccount, ID: "a"}
	deltas := computeNetDelta(src, -150, src, -200)

	if len(deltas) != 1 {
		t.Fatalf("expected a single net write, got %d", len(deltas))
	}
	if got := deltas[holderKey{KindAccount, "a"}]; got != -50 {
		t.Fatalf("net mismatch: got %v", got)
	}
}

func TestComputeNetDeltaIdenticalEditVanishes(t *testing.T) {
	src := Source{Kind: KindAccount, ID: "a"}
	if deltas := computeNetDelta(src, -150, src, -150); len(deltas) != 0 {
		t.Fatalf("no-op edit must produce no writes, got %v", deltas)
	}
}

func TestComputeNetDeltaAcrossHolders(t *testing.T) {
	oldSrc := Source{Kind: KindAccount, ID: "a"}
	newSrc := Source{Kind: KindCard, ID: "c"}
	deltas := computeNetDelta(oldSrc, -100, newSrc, 100)

	if len(deltas) != 2 {
		t.Fatalf("expected two writes, got %d", len(deltas))
	}
	if got := deltas[holderKey{KindAccount, "a"}]; got != 100 {
		t.Fatalf("refund mismatch: got %v", got)
	}
	if got := deltas[holderKey{KindCard, "c"}]; got != 100 {
		t.Fatalf("bill delta mismatch: got %v", got)
	}
}

func TestComputeNetDeltaSkipsWallet(t *testing.T) {
	wallet := Source{Kind: KindWallet}
	acc := Source{Kind: KindAccount, ID: "a"}
	deltas := computeNetDelta(wallet, 0, acc, -100)

	if len(deltas) != 1 {
		t.Fatalf("expected one write, got %d", len(deltas))
	}
}

func TestResolveProbesHoldersInOrder(t *testing.T) {
	accounts := newFakeAccounts(&models.Account{AccountID: "acc-1", WalletID: testWallet})
	cards := newFakeCards(&models.Card{CardID: "card-1", WalletID: testWallet})
	debts := newFakeDebts(&models.Debt{DebtID: "debt-1", WalletID: testWallet})
	r := &sourceResolver{accounts: accounts, cards: cards, debts: debts}
	ctx := helpers.TestCtx()

	cases := []struct {
		raw  string
		want SourceKind
	}{
		{"", KindWallet},
		{models.SourceWallet, KindWallet},
		{"acc-1", KindAccount},
		{"card-1", KindCard},
		{"debt-1", KindDebt},
	}
	for _, tc := range cases {
		src, err := r.Resolve(ctx, testWallet, tc.raw)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", tc.raw, err)
		}
		if src.Kind != tc.want {
			t.Fatalf("Resolve(%q) kind mismatch: got %v want %v", tc.raw, src.Kind, tc.want)
		}
	}
}

func TestResolveUnknownSource(t *testing.T) {
	r := &sourceResolver{accounts: newFakeAccounts(), cards: newFakeCards(), debts: newFakeDebts()}

	_, err := r.Resolve(helpers.TestCtx(), testWallet, "ghost")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestResolveEnforcesWalletTenancy(t *testing.T) {
	accounts := newFakeAccounts(&models.Account{AccountID: "acc-1", WalletID: "other-wallet"})
	r := &sourceResolver{accounts: accounts, cards: newFakeCards(), debts: newFakeDebts()}

	_, err := r.Resolve(helpers.TestCtx(), testWallet, "acc-1")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for foreign holder, got %v", err)
	}
}

func TestWasApplied(t *testing.T) {
	cases := []struct {
		name string
		src  Source
		tx   *models.Transaction
		want bool
	}{
		{"card expense", Source{Kind: KindCard, ID: "c"}, &models.Transaction{Amount: -10}, true},
		{"income", Source{Kind: KindAccount, ID: "a"}, &models.Transaction{Amount: 10}, true},
		{"paid account expense", Source{Kind: KindAccount, ID: "a"}, &models.Transaction{Amount: -10, Paid: true}, true},
		{"pending account expense", Source{Kind: KindAccount, ID: "a"}, &models.Transaction{Amount: -10}, false},
		{"wallet", Source{Kind: KindWallet}, &models.Transaction{Amount: -10, Paid: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wasApplied(tc.src, tc.tx); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}
