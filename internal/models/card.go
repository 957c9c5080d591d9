package models

import (
	"time"
)

// Card is a credit card. Bill is the accumulated owed amount: it grows on
// expenses and shrinks only via settlements, edits and deletes, never
// below zero.
type Card struct {
	CardID    string    `firestore:"cardId" json:"cardId"`
	WalletID  string    `firestore:"walletId" json:"walletId"`
	Name      string    `firestore:"name" json:"name"`
	Bank      string    `firestore:"bank" json:"bank"`
	Flag      string    `firestore:"flag" json:"flag"`
	Last4     string    `firestore:"last4" json:"last4"`
	Bill      float64   `firestore:"bill" json:"bill"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
