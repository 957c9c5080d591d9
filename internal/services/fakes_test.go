package services

import (
	"context"
	"time"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

// Shared in-memory fakes for the engine-facing store contracts. The
// clamped mutations mirror the Firestore store behavior.

type fakeLedger struct {
	txs       map[string]*models.Transaction
	order     []string
	createErr error
	updateErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{txs: map[string]*models.Transaction{}}
}

func (f *fakeLedger) Create(_ context.Context, tx *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *tx
	f.txs[tx.TransactionID] = &cp
	f.order = append(f.order, tx.TransactionID)
	return nil
}

func (f *fakeLedger) Get(_ context.Context, walletID, id string) (*models.Transaction, error) {
	tx, ok := f.txs[id]
	if !ok || tx.WalletID != walletID {
		return nil, errs.NewNotFoundError("transaction not found: " + id)
	}
	cp := *tx
	return &cp, nil
}

func (f *fakeLedger) Update(_ context.Context, id string, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	tx, ok := f.txs[id]
	if !ok {
		return errs.NewNotFoundError("transaction not found: " + id)
	}
	for key, value := range fields {
		switch key {
		case "desc":
			tx.Description = value.(string)
		case "amount":
			tx.Amount = value.(float64)
		case "date":
			tx.Date = value.(string)
		case "category":
			tx.Category = value.(string)
		case "source":
			tx.Source = value.(string)
		case "paid":
			tx.Paid = value.(bool)
		}
	}
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, id string) error {
	delete(f.txs, id)
	for i, txID := range f.order {
		if txID == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeLedger) ListByWallet(_ context.Context, walletID string) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0, len(f.order))
	for _, id := range f.order {
		if tx := f.txs[id]; tx != nil && tx.WalletID == walletID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAccounts struct {
	accounts map[string]*models.Account
}

func newFakeAccounts(accounts ...*models.Account) *fakeAccounts {
	f := &fakeAccounts{accounts: map[string]*models.Account{}}
	for _, acc := range accounts {
		f.accounts[acc.AccountID] = acc
	}
	return f
}

func (f *fakeAccounts) Get(_ context.Context, walletID, id string) (*models.Account, error) {
	acc, ok := f.accounts[id]
	if !ok || acc.WalletID != walletID {
		return nil, errs.NewNotFoundError("account not found: " + id)
	}
	return acc, nil
}

func (f *fakeAccounts) AddToBalance(_ context.Context, id string, delta float64) error {
	acc, ok := f.accounts[id]
	if !ok {
		return errs.NewNotFoundError("account not found: " + id)
	}
	acc.Balance += delta
	return nil
}

func (f *fakeAccounts) List(_ context.Context, walletID string) ([]*models.Account, error) {
	out := []*models.Account{}
	for _, acc := range f.accounts {
		if acc.WalletID == walletID {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccounts) Create(_ context.Context, acc *models.Account) error {
	f.accounts[acc.AccountID] = acc
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, id string, fields map[string]interface{}) error {
	acc, ok := f.accounts[id]
	if !ok {
		return errs.NewNotFoundError("account not found: " + id)
	}
	if name, ok := fields["name"].(string); ok {
		acc.Name = name
	}
	if balance, ok := fields["balance"].(float64); ok {
		acc.Balance = balance
	}
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	delete(f.accounts, id)
	return nil
}

type fakeCards struct {
	cards map[string]*models.Card
}

func newFakeCards(cards ...*models.Card) *fakeCards {
	f := &fakeCards{cards: map[string]*models.Card{}}
	for _, card := range cards {
		f.cards[card.CardID] = card
	}
	return f
}

func (f *fakeCards) Get(_ context.Context, walletID, id string) (*models.Card, error) {
	card, ok := f.cards[id]
	if !ok || card.WalletID != walletID {
		return nil, errs.NewNotFoundError("card not found: " + id)
	}
	return card, nil
}

func (f *fakeCards) ApplyBillDelta(_ context.Context, id string, delta float64) error {
	card, ok := f.cards[id]
	if !ok {
		return errs.NewNotFoundError("card not found: " + id)
	}
	card.Bill += delta
	if card.Bill < 0 {
		card.Bill = 0
	}
	return nil
}

func (f *fakeCards) List(_ context.Context, walletID string) ([]*models.Card, error) {
	out := []*models.Card{}
	for _, card := range f.cards {
		if card.WalletID == walletID {
			out = append(out, card)
		}
	}
	return out, nil
}

func (f *fakeCards) Create(_ context.Context, card *models.Card) error {
	f.cards[card.CardID] = card
	return nil
}

func (f *fakeCards) Update(_ context.Context, id string, fields map[string]interface{}) error {
	card, ok := f.cards[id]
	if !ok {
		return errs.NewNotFoundError("card not found: " + id)
	}
	if name, ok := fields["name"].(string); ok {
		card.Name = name
	}
	if bill, ok := fields["bill"].(float64); ok {
		card.Bill = bill
	}
	return nil
}

func (f *fakeCards) Delete(_ context.Context, id string) error {
	delete(f.cards, id)
	return nil
}

type fakeDebts struct {
	debts map[string]*models.Debt
}

func newFakeDebts(debts ...*models.Debt) *fakeDebts {
	f := &fakeDebts{debts: map[string]*models.Debt{}}
	for _, debt := range debts {
		f.debts[debt.DebtID] = debt
	}
	return f
}

func (f *fakeDebts) Get(_ context.Context, walletID, id string) (*models.Debt, error) {
	debt, ok := f.debts[id]
	if !ok || debt.WalletID != walletID {
		return nil, errs.NewNotFoundError("debt not found: " + id)
	}
	return debt, nil
}

func (f *fakeDebts) ApplyBalanceDelta(_ context.Context, id string, delta float64) error {
	debt, ok := f.debts[id]
	if !ok {
		return errs.NewNotFoundError("debt not found: " + id)
	}
	debt.TotalBalance += delta
	if debt.TotalBalance < 0 {
		debt.TotalBalance = 0
	}
	return nil
}

func (f *fakeDebts) List(_ context.Context, walletID string) ([]*models.Debt, error) {
	out := []*models.Debt{}
	for _, debt := range f.debts {
		if debt.WalletID == walletID {
			out = append(out, debt)
		}
	}
	return out, nil
}

func (f *fakeDebts) Create(_ context.Context, debt *models.Debt) error {
	f.debts[debt.DebtID] = debt
	return nil
}

func (f *fakeDebts) Update(_ context.Context, id string, fields map[string]interface{}) error {
	debt, ok := f.debts[id]
	if !ok {
		return errs.NewNotFoundError("debt not found: " + id)
	}
	if name, ok := fields["name"].(string); ok {
		debt.Name = name
	}
	if balance, ok := fields["totalBalance"].(float64); ok {
		debt.TotalBalance = balance
	}
	return nil
}

func (f *fakeDebts) Delete(_ context.Context, id string) error {
	delete(f.debts, id)
	return nil
}

// fixedClock pins "today" so deferral checks are deterministic.
func fixedClock(date string) func() time.Time {
	t, _ := time.Parse(dateLayout, date)
	return func() time.Time { return t }
}
