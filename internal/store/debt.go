package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type debtStore struct {
	client *firestore.Client
}

func NewDebtStore(client *firestore.Client) *debtStore {
	return &debtStore{client: client}
}

func (s *debtStore) collection() *firestore.CollectionRef {
	return s.client.Collection("debts")
}

func (s *debtStore) Create(ctx context.Context, debt *models.Debt) error {
	now := time.Now()
	if debt.CreatedAt.IsZero() {
		debt.CreatedAt = now
	}
	debt.UpdatedAt = now
	_, err := s.collection().Doc(debt.DebtID).Set(ctx, debt)
	return err
}

func (s *debtStore) Get(ctx context.Context, walletID, id string) (*models.Debt, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("debt not found: " + id)
		}
		return nil, err
	}
	var debt models.Debt
	if err := snap.DataTo(&debt); err != nil {
		return nil, err
	}
	debt.DebtID = snap.Ref.ID
	if debt.WalletID != walletID {
		return nil, errs.NewNotFoundError("debt not found: " + id)
	}
	return &debt, nil
}

func (s *debtStore) List(ctx context.Context, walletID string) ([]*models.Debt, error) {
	docs, err := s.collection().Where("walletId", "==", walletID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	debts := make([]*models.Debt, 0, len(docs))
	for _, d := range docs {
		var debt models.Debt
		if err := d.DataTo(&debt); err != nil {
			return nil, err
		}
		debt.DebtID = d.Ref.ID
		debts = append(debts, &debt)
	}
	return debts, nil
}

func (s *debtStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})
	_, err := s.collection().Doc(id).Update(ctx, updates)
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("debt not found: " + id)
	}
	return err
}

func (s *debtStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	return err
}

// ApplyBalanceDelta adjusts the owed total by a signed delta inside a
// Firestore transaction, clamped at zero like the card bill.
func (s *debtStore) ApplyBalanceDelta(ctx context.Context, id string, delta float64) error {
	ref := s.collection().Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var debt models.Debt
		if err := snap.DataTo(&debt); err != nil {
			return err
		}
		balance := debt.TotalBalance + delta
		if balance < 0 {
			balance = 0
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "totalBalance", Value: balance},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("debt not found: " + id)
	}
	return err
}

// Watch pushes the wallet's debts on every change until ctx is cancelled.
func (s *debtStore) Watch(ctx context.Context, walletID string, push func([]*models.Debt)) error {
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
		var debts []*models.Debt
		for {
			d, err := qsnap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			var debt models.Debt
			if err := d.DataTo(&debt); err != nil {
				return err
			}
			debt.DebtID = d.Ref.ID
			debts = append(debts, &debt)
		}
		push(debts)
	}
}
