package models

import (
	"time"
)

// Transaction is a single ledger entry. Amount is signed: positive for
// income, negative for expense — the stored format keeps the sign as the
// only type discriminant.
type Transaction struct {
	TransactionID string    `firestore:"transactionId" json:"transactionId"`
	WalletID      string    `firestore:"walletId" json:"walletId"`
	OwnerUserID   string    `firestore:"owner" json:"owner"`
	OwnerName     string    `firestore:"ownerName" json:"ownerName"`
	Description   string    `firestore:"desc" json:"desc"`
	Amount        float64   `firestore:"amount" json:"amount"`
	Date          string    `firestore:"date" json:"date"` // YYYY-MM-DD
	Category      string    `firestore:"category" json:"category"`
	Source        string    `firestore:"source" json:"source"`
	TargetID      string    `firestore:"targetId,omitempty" json:"targetId,omitempty"`
	Paid          bool      `firestore:"paid" json:"paid"`
	IsRecurring   bool      `firestore:"isRecurring,omitempty" json:"isRecurring,omitempty"`
	IsPayment     bool      `firestore:"isPayment,omitempty" json:"isPayment,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}

// SourceWallet is the sentinel source for cash held outside any tracked
// account. Entries carrying it never touch a balance holder.
const SourceWallet = "wallet"

// Polarity is the income/expense discriminant. The engine resolves it from
// the stored sign on load and never branches on the raw sign afterwards.
type Polarity int

const (
	Income Polarity = iota
	Expense
)

func (p Polarity) String() string {
	if p == Expense {
		return "expense"
	}
	return "income"
}

// PolarityOf resolves the polarity of a stored signed amount.
func PolarityOf(amount float64) Polarity {
	if amount < 0 {
		return Expense
	}
	return Income
}

// Signed applies the polarity to an amount magnitude.
func (p Polarity) Signed(magnitude float64) float64 {
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if p == Expense {
		return -magnitude
	}
	return magnitude
}
