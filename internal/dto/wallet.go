package dto

// LinkWalletRequest links the caller's ledger to a partner's wallet.
type LinkWalletRequest struct {
	PartnerID string `json:"partnerId"`
}

// WalletInfo reports which wallet the caller is currently operating on.
type WalletInfo struct {
	ActiveWalletID string `json:"activeWalletId"`
	Linked         bool   `json:"linked"`
}
