package models

import (
	"time"
)

// Account is a bank account with a signed cash balance. Overdraft is
// allowed. The balance field is mutated only by the consolidation engine.
type Account struct {
	AccountID string    `firestore:"accountId" json:"accountId"`
	WalletID  string    `firestore:"walletId" json:"walletId"`
	Name      string    `firestore:"name" json:"name"`
	Bank      string    `firestore:"bank" json:"bank"`
	Balance   float64   `firestore:"balance" json:"balance"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
