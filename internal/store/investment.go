package store

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type investmentStore struct {
	client *firestore.Client
}

func NewInvestmentStore(client *firestore.Client) *investmentStore {
	return &investmentStore{client: client}
}

func (s *investmentStore) collection() *firestore.CollectionRef {
	return s.client.Collection("investments")
}

func (s *investmentStore) Create(ctx context.Context, inv *models.Investment) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	_, err := s.collection().Doc(inv.InvestmentID).Set(ctx, inv)
	return err
}

func (s *investmentStore) Get(ctx context.Context, walletID, id string) (*models.Investment, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("investment not found: " + id)
		}
		return nil, err
	}
	var inv models.Investment
	if err := snap.DataTo(&inv); err != nil {
		return nil, err
	}
	inv.InvestmentID = snap.Ref.ID
	if inv.WalletID != walletID {
		return nil, errs.NewNotFoundError("investment not found: " + id)
	}
	return &inv, nil
}

// List returns the wallet's positions, largest current value first.
func (s *investmentStore) List(ctx context.Context, walletID string) ([]*models.Investment, error) {
	docs, err := s.collection().Where("walletId", "==", walletID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	investments := make([]*models.Investment, 0, len(docs))
	for _, d := range docs {
		var inv models.Investment
		if err := d.DataTo(&inv); err != nil {
			return nil, err
		}
		inv.InvestmentID = d.Ref.ID
		investments = append(investments, &inv)
	}
	sortInvestments(investments)
	return investments, nil
}

func (s *investmentStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.collection().Doc(id).Update(ctx, updates)
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("investment not found: " + id)
	}
	return err
}

func (s *investmentStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	return err
}

// Watch pushes the wallet's positions on every change until ctx is
// cancelled.
func (s *investmentStore) Watch(ctx context.Context, walletID string, push func([]*models.Investment)) error {
	it := s.collection().Where("walletId", "==", walletID).Snapshots(ctx)
	defer it.Stop()

	for {
		qsnap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var investments []*models.Investment
		for {
			d, err := qsnap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			var inv models.Investment
			if err := d.DataTo(&inv); err != nil {
				return err
			}
			inv.InvestmentID = d.Ref.ID
			investments = append(investments, &inv)
		}
		sortInvestments(investments)
		push(investments)
	}
}

func sortInvestments(investments []*models.Investment) {
	sort.SliceStable(investments, func(i, j int) bool {
		return investments[i].CurrentValue > investments[j].CurrentValue
	})
}
