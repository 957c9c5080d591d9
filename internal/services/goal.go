package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type goalCRUDStore interface {
	Create(ctx context.Context, goal *models.Goal) error
	Get(ctx context.Context, walletID, id string) (*models.Goal, error)
	List(ctx context.Context, walletID string) ([]*models.Goal, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type goalService struct {
	goals goalCRUDStore
}

func NewGoalService(goals goalCRUDStore) *goalService {
	return &goalService{goals: goals}
}

func (s *goalService) Create(ctx context.Context, walletID string, req dto.CreateGoalRequest) (*models.Goal, error) {
	if req.Title == "" {
		return nil, errs.NewValidationError("goal title is required")
	}
	if req.Target <= 0 {
		return nil, errs.NewValidationError("goal target must be positive")
	}
	goal := &models.Goal{
		GoalID:   uuid.New().String(),
		WalletID: walletID,
		Title:    req.Title,
		Target:   req.Target,
		Current:  req.Current,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, errs.NewDatabaseError("goal.create", err.Error())
	}
	return goal, nil
}

func (s *goalService) List(ctx context.Context, walletID string) ([]*models.Goal, error) {
	return s.goals.List(ctx, walletID)
}

func (s *goalService) Update(ctx context.Context, walletID, id string, req dto.UpdateGoalRequest) (*models.Goal, error) {
	if req.Title == "" {
		return nil, errs.NewValidationError("goal title is required")
	}
	if _, err := s.goals.Get(ctx, walletID, id); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"title":   req.Title,
		"target":  req.Target,
		"current": req.Current,
	}
	if err := s.goals.Update(ctx, id, fields); err != nil {
		return nil, errs.NewDatabaseError("goal.update", err.Error())
	}
	return s.goals.Get(ctx, walletID, id)
}

func (s *goalService) Delete(ctx context.Context, walletID, id string, confirmed bool) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError("goal delete requires confirmation")
	}
	if _, err := s.goals.Get(ctx, walletID, id); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("goal.delete", err.Error())
	}
	return nil
}
