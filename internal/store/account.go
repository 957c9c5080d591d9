package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type accountStore struct {
	client *firestore.Client
}

func NewAccountStore(client *firestore.Client) *accountStore {
	return &accountStore{client: client}
}

func (s *accountStore) collection() *firestore.CollectionRef {
	return s.client.Collection("accounts")
}

func (s *accountStore) Create(ctx context.Context, acc *models.Account) error {
	now := time.Now()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now
	_, err := s.collection().Doc(acc.AccountID).Set(ctx, acc)
	return err
}

func (s *accountStore) Get(ctx context.Context, walletID, id string) (*models.Account, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("account not found: " + id)
		}
		return nil, err
	}
	var acc models.Account
	if err := snap.DataTo(&acc); err != nil {
		return nil, err
	}
	acc.AccountID = snap.Ref.ID
	if acc.WalletID != walletID {
		return nil, errs.NewNotFoundError("account not found: " + id)
	}
	return &acc, nil
}

func (s *accountStore) List(ctx context.Context, walletID string) ([]*models.Account, error) {
	docs, err := s.collection().Where("walletId", "==", walletID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	accounts := make([]*models.Account, 0, len(docs))
	for _, d := range docs {
		var acc models.Account
		if err := d.DataTo(&acc); err != nil {
			return nil, err
		}
		acc.AccountID = d.Ref.ID
		accounts = append(accounts, &acc)
	}
	return accounts, nil
}

func (s *accountStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})
	_, err := s.collection().Doc(id).Update(ctx, updates)
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("account not found: " + id)
	}
	return err
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	return err
}

// AddToBalance applies a signed delta to the account balance with a
// server-side atomic increment, so concurrent sessions on a shared wallet
// cannot lose each other's updates. Overdraft is allowed, no clamp.
func (s *accountStore) AddToBalance(ctx context.Context, id string, delta float64) error {
	_, err := s.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "balance", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("account not found: " + id)
	}
	return err
}

// Watch pushes the wallet's accounts on every change until ctx is
// cancelled.
func (s *accountStore) Watch(ctx context.Context, walletID string, push func([]*models.Account)) error {
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
		var accounts []*models.Account
		for {
			d, err := qsnap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			var acc models.Account
			if err := d.DataTo(&acc); err != nil {
				return err
			}
			acc.AccountID = d.Ref.ID
			accounts = append(accounts, &acc)
		}
		push(accounts)
	}
}
