package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/helpers"
)

type debtCRUDStore interface {
	Create(ctx context.Context, debt *models.Debt) error
	Get(ctx context.Context, walletID, id string) (*models.Debt, error)
	List(ctx context.Context, walletID string) ([]*models.Debt, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type debtService struct {
	debts debtCRUDStore
}

func NewDebtService(debts debtCRUDStore) *debtService {
	return &debtService{debts: debts}
}

func (s *debtService) Create(ctx context.Context, walletID string, req dto.CreateDebtRequest) (*models.Debt, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("debt name is required")
	}
	if req.TotalBalance < 0 {
		return nil, errs.NewValidationError("debt balance cannot be negative")
	}
	debt := &models.Debt{
		DebtID:       uuid.New().String(),
		WalletID:     walletID,
		Name:         req.Name,
		Bank:         req.Bank,
		TotalBalance: req.TotalBalance,
	}
	if err := s.debts.Create(ctx, debt); err != nil {
		return nil, errs.NewDatabaseError("debt.create", err.Error())
	}
	return debt, nil
}

func (s *debtService) List(ctx context.Context, walletID string) ([]*models.Debt, error) {
	return s.debts.List(ctx, walletID)
}

func (s *debtService) Update(ctx context.Context, walletID, id string, req dto.UpdateDebtRequest) (*models.Debt, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("debt name is required")
	}
	if helpers.Value(req.TotalBalance) < 0 {
		return nil, errs.NewValidationError("debt balance cannot be negative")
	}
	if _, err := s.debts.Get(ctx, walletID, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"name": req.Name,
	}
	if req.TotalBalance != nil {
		fields["totalBalance"] = helpers.Value(req.TotalBalance)
	}
	if err := s.debts.Update(ctx, id, fields); err != nil {
		return nil, errs.NewDatabaseError("debt.update", err.Error())
	}
	return s.debts.Get(ctx, walletID, id)
}

func (s *debtService) Delete(ctx context.Context, walletID, id string, confirmed bool) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError("debt delete requires confirmation")
	}
	if _, err := s.debts.Get(ctx, walletID, id); err != nil {
		return err
	}
	if err := s.debts.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("debt.delete", err.Error())
	}
	return nil
}
