package models

import (
	"time"
)

// Debt is an owed total that shrinks via settlements or expenses routed to
// it, clamped at zero.
type Debt struct {
	DebtID       string    `firestore:"debtId" json:"debtId"`
	WalletID     string    `firestore:"walletId" json:"walletId"`
	Name         string    `firestore:"name" json:"name"`
	Bank         string    `firestore:"bank" json:"bank"`
	TotalBalance float64   `firestore:"totalBalance" json:"totalBalance"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}
