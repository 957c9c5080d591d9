package models

import (
	"time"
)

// Investment tracks one position: the amount put in and what it is worth
// now. Both values are user-maintained; nothing here touches the
// consolidation engine.
type Investment struct {
	InvestmentID string    `firestore:"investmentId" json:"investmentId"`
	WalletID     string    `firestore:"walletId" json:"walletId"`
	Name         string    `firestore:"name" json:"name"`
	Type         string    `firestore:"type" json:"type"`
	Amount       float64   `firestore:"amount" json:"amount"`
	CurrentValue float64   `firestore:"currentValue" json:"currentValue"`
	Color        string    `firestore:"color,omitempty" json:"color,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}
