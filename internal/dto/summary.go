package dto

import (
	"github.com/granaapp/grana-backend/internal/models"
)

// Summary is the aggregation over a filtered ledger subset: Total is the
// signed net, Income sums positive amounts, Expense sums negative ones.
type Summary struct {
	Total   float64 `json:"total"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Count   int     `json:"count"`
}

// LedgerView is the read-side result: the filtered entries plus their
// summary, recomputed on every ledger change or filter change.
type LedgerView struct {
	Transactions []*models.Transaction `json:"transactions"`
	Summary      Summary               `json:"summary"`
}
