package models

import (
	"time"
)

// Goal is a savings goal. Plain CRUD, independent of the consolidation
// engine.
type Goal struct {
	GoalID    string    `firestore:"goalId" json:"goalId"`
	WalletID  string    `firestore:"walletId" json:"walletId"`
	Title     string    `firestore:"title" json:"title"`
	Target    float64   `firestore:"target" json:"target"`
	Current   float64   `firestore:"current" json:"current"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
