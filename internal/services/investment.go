package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type investmentCRUDStore interface {
	Create(ctx context.Context, inv *models.Investment) error
	Get(ctx context.Context, walletID, id string) (*models.Investment, error)
	List(ctx context.Context, walletID string) ([]*models.Investment, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// investmentService handles the user's investment positions. Values are
// self-reported; there is no price feed.
type investmentService struct {
	investments investmentCRUDStore
}

func NewInvestmentService(investments investmentCRUDStore) *investmentService {
	return &investmentService{investments: investments}
}

func validateInvestment(name string, amount, currentValue float64) error {
	if name == "" {
		return errs.NewValidationError("investment name is required")
	}
	if amount <= 0 {
		return errs.NewValidationError("invested amount must be positive")
	}
	if currentValue <= 0 {
		return errs.NewValidationError("current value must be positive")
	}
	return nil
}

func (s *investmentService) Create(ctx context.Context, walletID string, req dto.CreateInvestmentRequest) (*models.Investment, error) {
	if err := validateInvestment(req.Name, req.Amount, req.CurrentValue); err != nil {
		return nil, err
	}
	inv := &models.Investment{
		InvestmentID: uuid.New().String(),
		WalletID:     walletID,
		Name:         req.Name,
		Type:         req.Type,
		Amount:       req.Amount,
		CurrentValue: req.CurrentValue,
		Color:        req.Color,
	}
	if err := s.investments.Create(ctx, inv); err != nil {
		return nil, errs.NewDatabaseError("investment.create", err.Error())
	}
	return inv, nil
}

// Portfolio returns the wallet's positions with the aggregate stats the
// original overview card showed: totals, profit and return percentage.
func (s *investmentService) Portfolio(ctx context.Context, walletID string) (dto.InvestmentPortfolio, error) {
	investments, err := s.investments.List(ctx, walletID)
	if err != nil {
		return dto.InvestmentPortfolio{}, errs.NewDatabaseError("investment.list", err.Error())
	}
	return dto.InvestmentPortfolio{
		Investments: investments,
		Stats:       InvestmentStatsOf(investments),
	}, nil
}

func (s *investmentService) Update(ctx context.Context, walletID, id string, req dto.UpdateInvestmentRequest) (*models.Investment, error) {
	if err := validateInvestment(req.Name, req.Amount, req.CurrentValue); err != nil {
		return nil, err
	}
	if _, err := s.investments.Get(ctx, walletID, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"name":         req.Name,
		"type":         req.Type,
		"amount":       req.Amount,
		"currentValue": req.CurrentValue,
		"color":        req.Color,
	}
	if err := s.investments.Update(ctx, id, fields); err != nil {
		return nil, errs.NewDatabaseError("investment.update", err.Error())
	}
	return s.investments.Get(ctx, walletID, id)
}

func (s *investmentService) Delete(ctx context.Context, walletID, id string, confirmed bool) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError("investment delete requires confirmation")
	}
	if _, err := s.investments.Get(ctx, walletID, id); err != nil {
		return err
	}
	if err := s.investments.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("investment.delete", err.Error())
	}
	return nil
}

// InvestmentStatsOf aggregates a set of positions. Pure.
func InvestmentStatsOf(investments []*models.Investment) dto.InvestmentStats {
	stats := dto.InvestmentStats{Count: len(investments)}
	for _, inv := range investments {
		stats.TotalInvested += inv.Amount
		stats.TotalCurrent += inv.CurrentValue
	}
	stats.Profit = stats.TotalCurrent - stats.TotalInvested
	if stats.TotalInvested > 0 {
		stats.ReturnPct = stats.Profit / stats.TotalInvested * 100
	}
	return stats
}
