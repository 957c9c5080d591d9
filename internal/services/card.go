package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/helpers"
)

type cardCRUDStore interface {
	Create(ctx context.Context, card *models.Card) error
	Get(ctx context.Context, walletID, id string) (*models.Card, error)
	List(ctx context.Context, walletID string) ([]*models.Card, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type cardService struct {
	cards cardCRUDStore
}

func NewCardService(cards cardCRUDStore) *cardService {
	return &cardService{cards: cards}
}

func (s *cardService) Create(ctx context.Context, walletID string, req dto.CreateCardRequest) (*models.Card, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("card name is required")
	}
	if req.Bill < 0 {
		return nil, errs.NewValidationError("card bill cannot be negative")
	}
	card := &models.Card{
		CardID:   uuid.New().String(),
		WalletID: walletID,
		Name:     req.Name,
		Bank:     req.Bank,
		Flag:     req.Flag,
		Last4:    req.Last4,
		Bill:     req.Bill,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, errs.NewDatabaseError("card.create", err.Error())
	}
	return card, nil
}

func (s *cardService) List(ctx context.Context, walletID string) ([]*models.Card, error) {
	return s.cards.List(ctx, walletID)
}

func (s *cardService) Update(ctx context.Context, walletID, id string, req dto.UpdateCardRequest) (*models.Card, error) {
	if req.Name == "" {
		return nil, errs.NewValidationError("card name is required")
	}
	if helpers.Value(req.Bill) < 0 {
		return nil, errs.NewValidationError("card bill cannot be negative")
	}
	if _, err := s.cards.Get(ctx, walletID, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"name": req.Name,
	}
	if req.Bill != nil {
		fields["bill"] = helpers.Value(req.Bill)
	}
	if err := s.cards.Update(ctx, id, fields); err != nil {
		return nil, errs.NewDatabaseError("card.update", err.Error())
	}
	return s.cards.Get(ctx, walletID, id)
}

func (s *cardService) Delete(ctx context.Context, walletID, id string, confirmed bool) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError("card delete requires confirmation")
	}
	if _, err := s.cards.Get(ctx, walletID, id); err != nil {
		return err
	}
	if err := s.cards.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("card.delete", err.Error())
	}
	return nil
}
