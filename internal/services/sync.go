package services

import (
	"context"
	"sync"

	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/internal/state"
	"github.com/granaapp/grana-backend/pkg/logger"
)

type ledgerWatchStore interface {
	Watch(ctx context.Context, walletID string, push func([]*models.Transaction)) error
}

type accountWatchStore interface {
	Watch(ctx context.Context, walletID string, push func([]*models.Account)) error
}

type cardWatchStore interface {
	Watch(ctx context.Context, walletID string, push func([]*models.Card)) error
}

type debtWatchStore interface {
	Watch(ctx context.Context, walletID string, push func([]*models.Debt)) error
}

type investmentWatchStore interface {
	Watch(ctx context.Context, walletID string, push func([]*models.Investment)) error
}

// walletSync is one wallet's set of running listeners and its shared
// state, refcounted by attached subscribers.
type walletSync struct {
	state  *state.WalletState
	cancel context.CancelFunc
	refs   int
}

// SyncManager runs at most one listener set per wallet regardless of how
// many stream subscribers are attached. The last detach cancels the
// listeners so idle wallets cost nothing.
type SyncManager struct {
	mu      sync.Mutex
	wallets map[string]*walletSync

	ledger      ledgerWatchStore
	accounts    accountWatchStore
	cards       cardWatchStore
	debts       debtWatchStore
	investments investmentWatchStore
}

func NewSyncManager(ledger ledgerWatchStore, accounts accountWatchStore, cards cardWatchStore, debts debtWatchStore, investments investmentWatchStore) *SyncManager {
	return &SyncManager{
		wallets:     make(map[string]*walletSync),
		ledger:      ledger,
		accounts:    accounts,
		cards:       cards,
		debts:       debts,
		investments: investments,
	}
}

// Attach subscribes to a wallet's live snapshots, starting the listeners
// on first use. The returned detach func must be called when the
// subscriber goes away.
func (m *SyncManager) Attach(ctx context.Context, walletID string) (<-chan state.Snapshot, func()) {
	m.mu.Lock()
	ws, ok := m.wallets[walletID]
	if !ok {
		listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		ws = &walletSync{
			state:  state.NewWalletState(),
			cancel: cancel,
		}
		m.wallets[walletID] = ws
		m.startListeners(listenCtx, walletID, ws.state)
	}
	ws.refs++
	m.mu.Unlock()

	ch, cancelSub := ws.state.Subscribe()
	detach := func() {
		cancelSub()
		m.mu.Lock()
		ws.refs--
		if ws.refs <= 0 {
			ws.cancel()
			delete(m.wallets, walletID)
		}
		m.mu.Unlock()
	}
	return ch, detach
}

func (m *SyncManager) startListeners(ctx context.Context, walletID string, st *state.WalletState) {
	log := logger.FromContext(ctx)

	go func() {
		if err := m.ledger.Watch(ctx, walletID, st.SetTransactions); err != nil && ctx.Err() == nil {
			log.Error("transaction listener stopped", "wallet_id", walletID, "error", err)
		}
	}()
	go func() {
		if err := m.accounts.Watch(ctx, walletID, st.SetAccounts); err != nil && ctx.Err() == nil {
			log.Error("account listener stopped", "wallet_id", walletID, "error", err)
		}
	}()
	go func() {
		if err := m.cards.Watch(ctx, walletID, st.SetCards); err != nil && ctx.Err() == nil {
			log.Error("card listener stopped", "wallet_id", walletID, "error", err)
		}
	}()
	go func() {
		if err := m.debts.Watch(ctx, walletID, st.SetDebts); err != nil && ctx.Err() == nil {
			log.Error("debt listener stopped", "wallet_id", walletID, "error", err)
		}
	}()
	go func() {
		if err := m.investments.Watch(ctx, walletID, st.SetInvestments); err != nil && ctx.Err() == nil {
			log.Error("investment listener stopped", "wallet_id", walletID, "error", err)
		}
	}()
}
