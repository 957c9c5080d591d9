package state

import (
	"testing"

	"github.com/granaapp/grana-backend/internal/models"
)

func TestSubscribeDeliversCurrentSnapshot(t *testing.T) {
	ws := NewWalletState()
	ws.SetAccounts([]*models.Account{{AccountID: "acc-1"}})

	ch, cancel := ws.Subscribe()
	defer cancel()

	snap := <-ch
	if len(snap.Accounts) != 1 || snap.Accounts[0].AccountID != "acc-1" {
		t.Fatalf("initial snapshot mismatch: %+v", snap.Accounts)
	}
}

func TestPublishReachesSubscribers(t *testing.T) {
	ws := NewWalletState()
	ch, cancel := ws.Subscribe()
	defer cancel()
	<-ch // drain the initial snapshot

	ws.SetTransactions([]*models.Transaction{{TransactionID: "t1"}})

	snap := <-ch
	if len(snap.Transactions) != 1 || snap.Transactions[0].TransactionID != "t1" {
		t.Fatalf("snapshot mismatch: %+v", snap.Transactions)
	}
}

func TestSlowSubscriberGetsLatestOnly(t *testing.T) {
	ws := NewWalletState()
	ch, cancel := ws.Subscribe()
	defer cancel()
	<-ch

	ws.SetTransactions([]*models.Transaction{{TransactionID: "t1"}})
	ws.SetTransactions([]*models.Transaction{{TransactionID: "t2"}})

	snap := <-ch
	if snap.Transactions[0].TransactionID != "t2" {
		t.Fatalf("expected the latest snapshot, got %s", snap.Transactions[0].TransactionID)
	}
	select {
	case extra, open := <-ch:
		if open {
			t.Fatalf("unexpected extra snapshot: %+v", extra)
		}
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	ws := NewWalletState()
	ch, cancel := ws.Subscribe()
	<-ch
	cancel()

	if _, open := <-ch; open {
		t.Fatal("channel must be closed after cancel")
	}

	// A publish after cancel must not panic.
	ws.SetCards([]*models.Card{{CardID: "c1"}})
}

func TestCancelIsIdempotent(t *testing.T) {
	ws := NewWalletState()
	_, cancel := ws.Subscribe()
	cancel()
	cancel()
}

func TestSnapshotFieldsAreIndependent(t *testing.T) {
	ws := NewWalletState()
	ws.SetAccounts([]*models.Account{{AccountID: "acc-1"}})
	ws.SetCards([]*models.Card{{CardID: "card-1"}})
	ws.SetDebts([]*models.Debt{{DebtID: "debt-1"}})
	ws.SetInvestments([]*models.Investment{{InvestmentID: "inv-1"}})

	snap := ws.Snapshot()
	if len(snap.Accounts) != 1 || len(snap.Cards) != 1 || len(snap.Debts) != 1 || len(snap.Investments) != 1 {
		t.Fatalf("snapshot mismatch: %+v", snap)
	}
}
