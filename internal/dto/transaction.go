package dto

// CreateTransactionRequest is one user-submitted transaction form. Amount
// is the unsigned magnitude; the sign is derived from the category type.
// Installments and RepeatMonthly expand the submission into several ledger
// entries; RepeatMonthly wins when both are set.
type CreateTransactionRequest struct {
	Description   string  `json:"desc"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Category      string  `json:"category"`
	Source        string  `json:"source"`
	Installments  int     `json:"installments,omitempty"`
	RepeatMonthly bool    `json:"repeatMonthly,omitempty"`
}

// UpdateTransactionRequest carries the editable fields. Amount is the new
// unsigned magnitude; polarity stays whatever the original entry had.
type UpdateTransactionRequest struct {
	Description string  `json:"desc"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category,omitempty"`
	Source      string  `json:"source"`
}

// TransactionFilter selects the displayed subset of a wallet's ledger.
type TransactionFilter struct {
	Month  string `json:"month,omitempty"`  // YYYY-MM prefix on date
	Search string `json:"search,omitempty"` // case-insensitive substring on description
	Source string `json:"source,omitempty"` // exact source id
	Status string `json:"status,omitempty"` // "paid" | "pending" | ""
}

const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)
