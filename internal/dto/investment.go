package dto

import (
	"github.com/granaapp/grana-backend/internal/models"
)

type CreateInvestmentRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	CurrentValue float64 `json:"currentValue"`
	Color        string  `json:"color,omitempty"`
}

type UpdateInvestmentRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	CurrentValue float64 `json:"currentValue"`
	Color        string  `json:"color,omitempty"`
}

// InvestmentStats aggregates the portfolio: total invested, total current
// value, the profit between them and the return percentage.
type InvestmentStats struct {
	TotalInvested float64 `json:"totalInvested"`
	TotalCurrent  float64 `json:"totalCurrent"`
	Profit        float64 `json:"profit"`
	ReturnPct     float64 `json:"returnPct"`
	Count         int     `json:"count"`
}

// InvestmentPortfolio is the list view: positions sorted by current value
// plus the aggregate stats.
type InvestmentPortfolio struct {
	Investments []*models.Investment `json:"investments"`
	Stats       InvestmentStats      `json:"stats"`
}
