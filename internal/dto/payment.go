package dto

// PaymentRequest settles a card bill or a debt from an account. Discount
// is an extra reduction applied only to debt balances; it is not debited
// from the account.
type PaymentRequest struct {
	AccountID string  `json:"accountId"`
	TargetID  string  `json:"targetId"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Discount  float64 `json:"discount,omitempty"`
}

// ConsolidateRequest triggers a bulk consolidation of every due, unpaid,
// non-card expense. Confirm must be true; the operation is side-effecting.
type ConsolidateRequest struct {
	Confirm bool `json:"confirm"`
}

// ConsolidateResult reports how many entries a consolidation touched.
type ConsolidateResult struct {
	Processed int `json:"processed"`
}
