package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type cardStore struct {
	client *firestore.Client
}

func NewCardStore(client *firestore.Client) *cardStore {
	return &cardStore{client: client}
}

func (s *cardStore) collection() *firestore.CollectionRef {
	return s.client.Collection("cards")
}

func (s *cardStore) Create(ctx context.Context, card *models.Card) error {
	now := time.Now()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now
	_, err := s.collection().Doc(card.CardID).Set(ctx, card)
	return err
}

func (s *cardStore) Get(ctx context.Context, walletID, id string) (*models.Card, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("card not found: " + id)
		}
		return nil, err
	}
	var card models.Card
	if err := snap.DataTo(&card); err != nil {
		return nil, err
	}
	card.CardID = snap.Ref.ID
	if card.WalletID != walletID {
		return nil, errs.NewNotFoundError("card not found: " + id)
	}
	return &card, nil
}

func (s *cardStore) List(ctx context.Context, walletID string) ([]*models.Card, error) {
	docs, err := s.collection().Where("walletId", "==", walletID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	cards := make([]*models.Card, 0, len(docs))
	for _, d := range docs {
		var card models.Card
		if err := d.DataTo(&card); err != nil {
			return nil, err
		}
		card.CardID = d.Ref.ID
		cards = append(cards, &card)
	}
	return cards, nil
}

func (s *cardStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})
	_, err := s.collection().Doc(id).Update(ctx, updates)
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("card not found: " + id)
	}
	return err
}

func (s *cardStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	return err
}

// ApplyBillDelta adjusts the card bill by a signed delta inside a
// Firestore transaction, clamping the result at zero. The read-modify-
// write must be transactional: two clamped updates applied blindly could
// otherwise lose the amount the clamp absorbed.
func (s *cardStore) ApplyBillDelta(ctx context.Context, id string, delta float64) error {
	ref := s.collection().Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var card models.Card
		if err := snap.DataTo(&card); err != nil {
			return err
		}
		bill := card.Bill + delta
		if bill < 0 {
			bill = 0
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "bill", Value: bill},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil && isNotFound(err) {
		return errs.NewNotFoundError("card not found: " + id)
	}
	return err
}

// Watch pushes the wallet's cards on every change until ctx is cancelled.
func (s *cardStore) Watch(ctx context.Context, walletID string, push func([]*models.Card)) error {
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
		var cards []*models.Card
		for {
			d, err := qsnap.Documents.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			var card models.Card
			if err := d.DataTo(&card); err != nil {
				return err
			}
			card.CardID = d.Ref.ID
			cards = append(cards, &card)
		}
		push(cards)
	}
}
