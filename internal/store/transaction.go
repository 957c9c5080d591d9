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

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection() *firestore.CollectionRef {
	return s.client.Collection("transactions")
}

func (s *transactionStore) walletQuery(walletID string) firestore.Query {
	return s.collection().Where("walletId", "==", walletID)
}

func (s *transactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	_, err := s.collection().Doc(tx.TransactionID).Set(ctx, tx)
	return err
}

func (s *transactionStore) Get(ctx context.Context, walletID, id string) (*models.Transaction, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("transaction not found: " + id)
		}
		return nil, err
	}
	var tx models.Transaction
	if err := snap.DataTo(&tx); err != nil {
		return nil, err
	}
	tx.TransactionID = snap.Ref.ID
	if tx.WalletID != walletID {
		// Wallet partitioning is the tenancy boundary; an id from another
		// wallet is indistinguishable from a missing one.
		return nil, errs.NewNotFoundError("transaction not found: " + id)
	}
	return &tx, nil
}

func (s *transactionStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := s.collection().Doc(id).Update(ctx, updates)
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("transaction not found: " + id)
	}
	return err
}

func (s *transactionStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	return err
}

// ListByWallet returns every ledger entry of a wallet, newest date first.
// Sorting happens in memory; the web client did the same and it keeps the
// query free of composite-index requirements.
func (s *transactionStore) ListByWallet(ctx context.Context, walletID string) ([]*models.Transaction, error) {
	docs, err := s.walletQuery(walletID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	txs := make([]*models.Transaction, 0, len(docs))
	for _, d := range docs {
		var tx models.Transaction
		if err := d.DataTo(&tx); err != nil {
			return nil, err
		}
		tx.TransactionID = d.Ref.ID
		txs = append(txs, &tx)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})
	return txs, nil
}

// Watch pushes the full wallet ledger on every change until ctx is
// cancelled. The first push is the current snapshot.
func (s *transactionStore) Watch(ctx context.Context, walletID string, push func([]*models.Transaction)) error {
	it := s.walletQuery(walletID).Snapshots(ctx)
	defer it.Stop()

	for {
		qsnap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var txs []*models.Transaction
		for {
			d, err := qsnap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			var tx models.Transaction
			if err := d.DataTo(&tx); err != nil {
				return err
			}
			tx.TransactionID = d.Ref.ID
			txs = append(txs, &tx)
		}
		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].Date > txs[j].Date
		})
		push(txs)
	}
}
