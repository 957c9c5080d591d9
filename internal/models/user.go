package models

import (
	"time"
)

// User holds per-user settings. LinkedWalletID, when set, points at the
// shared family wallet whose ledger this user reads and writes instead of
// their own.
type User struct {
	UID            string    `firestore:"uid" json:"uid"`
	DisplayName    string    `firestore:"displayName" json:"displayName"`
	LinkedWalletID string    `firestore:"linkedWalletId,omitempty" json:"linkedWalletId,omitempty"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}
