package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection() *firestore.CollectionRef {
	return s.client.Collection("goals")
}

func (s *goalStore) Create(ctx context.Context, goal *models.Goal) error {
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	_, err := s.collection().Doc(goal.GoalID).Set(ctx, goal)
	return err
}

func (s *goalStore) Get(ctx context.Context, walletID, id string) (*models.Goal, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("goal not found: " + id)
		}
		return nil, err
	}
	var goal models.Goal
	if err := snap.DataTo(&goal); err != nil {
		return nil, err
	}
	goal.GoalID = snap.Ref.ID
	if goal.WalletID != walletID {
		return nil, errs.NewNotFoundError("goal not found: " + id)
	}
	return &goal, nil
}

func (s *goalStore) List(ctx context.Context, walletID string) ([]*models.Goal, error) {
	docs, err := s.collection().Where("walletId", "==", walletID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	goals := make([]*models.Goal, 0, len(docs))
	for _, d := range docs {
		var goal models.Goal
		if err := d.DataTo(&goal); err != nil {
			return nil, err
		}
		goal.GoalID = d.Ref.ID
		goals = append(goals, &goal)
	}
	return goals, nil
}

func (s *goalStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.collection().Doc(id).Update(ctx, updates)
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("goal not found: " + id)
	}
	return err
}

func (s *goalStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	return err
}
