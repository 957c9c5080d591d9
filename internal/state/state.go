// Package state holds the in-memory snapshot of a wallet's documents,
// fed by the store listeners and read by the SSE stream. Writers never
// block readers for longer than a snapshot swap.
package state

import (
	"sync"

	"github.com/granaapp/grana-backend/internal/models"
)

// Snapshot is an immutable view of one wallet at a point in time. Slices
// are replaced wholesale on every push, never mutated in place.
type Snapshot struct {
	Transactions []*models.Transaction `json:"transactions"`
	Accounts     []*models.Account     `json:"accounts"`
	Cards        []*models.Card        `json:"cards"`
	Debts        []*models.Debt        `json:"debts"`
	Investments  []*models.Investment  `json:"investments"`
}

// WalletState is the live document cache for one wallet plus its
// observers. Each observer gets a buffered channel; a slow consumer drops
// intermediate snapshots instead of blocking the listener goroutines.
type WalletState struct {
	mu        sync.RWMutex
	snapshot  Snapshot
	observers map[int]chan Snapshot
	nextID    int
}

func NewWalletState() *WalletState {
	return &WalletState{
		observers: make(map[int]chan Snapshot),
	}
}

func (w *WalletState) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// Subscribe registers an observer and returns its channel plus a cancel
// func. The current snapshot is delivered immediately so subscribers
// never start empty.
func (w *WalletState) Subscribe() (<-chan Snapshot, func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	ch := make(chan Snapshot, 1)
	ch <- w.snapshot
	w.observers[id] = ch
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		if existing, ok := w.observers[id]; ok {
			delete(w.observers, id)
			close(existing)
		}
		w.mu.Unlock()
	}
	return ch, cancel
}

func (w *WalletState) SetTransactions(txs []*models.Transaction) {
	w.mu.Lock()
	w.snapshot.Transactions = txs
	w.publishLocked()
	w.mu.Unlock()
}

func (w *WalletState) SetAccounts(accounts []*models.Account) {
	w.mu.Lock()
	w.snapshot.Accounts = accounts
	w.publishLocked()
	w.mu.Unlock()
}

func (w *WalletState) SetCards(cards []*models.Card) {
	w.mu.Lock()
	w.snapshot.Cards = cards
	w.publishLocked()
	w.mu.Unlock()
}

func (w *WalletState) SetDebts(debts []*models.Debt) {
	w.mu.Lock()
	w.snapshot.Debts = debts
	w.publishLocked()
	w.mu.Unlock()
}

func (w *WalletState) SetInvestments(investments []*models.Investment) {
	w.mu.Lock()
	w.snapshot.Investments = investments
	w.publishLocked()
	w.mu.Unlock()
}

// publishLocked fans the current snapshot out to every observer. Each
// channel keeps only the latest snapshot: stale pending values are
// drained before the fresh one goes in.
func (w *WalletState) publishLocked() {
	for _, ch := range w.observers {
		select {
		case <-ch:
		default:
		}
		ch <- w.snapshot
	}
}
