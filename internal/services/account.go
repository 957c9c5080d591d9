package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/helpers"
)

type accountCRUDStore interface {
	Create(ctx context.Context, acc *models.Account) error
	Get(ctx context.Context, walletID, id string) (*models.Account, error)
	List(ctx context.Context, walletID string) ([]*models.Account, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// accountService handles user-driven account CRUD. Balance mutations from
// ledger events never pass through here; they belong to the engine.
type accountService struct {
	accounts accountCRUDStore
}

func NewAccountService(accounts accountCRUDStore) *accountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Create(ctx context.Context, walletID string, req dto.CreateAccountRequest) (*models.Account, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("account name is required")
	}
	acc := &models.Account{
		AccountID: uuid.New().String(),
		WalletID:  walletID,
		Name:      req.Name,
		Bank:      req.Bank,
		Balance:   req.Balance,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		return nil, errs.NewDatabaseError("account.create", err.Error())
	}
	return acc, nil
}

func (s *accountService) List(ctx context.Context, walletID string) ([]*models.Account, error) {
	return s.accounts.List(ctx, walletID)
}

func (s *accountService) Update(ctx context.Context, walletID, id string, req dto.UpdateAccountRequest) (*models.Account, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("account name is required")
	}
	if _, err := s.accounts.Get(ctx, walletID, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"name": req.Name,
	}
	if req.Balance != nil {
		// Manual correction; otherwise the engine-derived balance stands.
		fields["balance"] = helpers.Value(req.Balance)
	}
	if err := s.accounts.Update(ctx, id, fields); err != nil {
		return nil, errs.NewDatabaseError("account.update", err.Error())
	}
	return s.accounts.Get(ctx, walletID, id)
}

func (s *accountService) Delete(ctx context.Context, walletID, id string, confirmed bool) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError("account delete requires confirmation")
	}
	if _, err := s.accounts.Get(ctx, walletID, id); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("account.delete", err.Error())
	}
	return nil
}
