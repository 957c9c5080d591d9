package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type userStore struct {
	client *firestore.Client
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{client: client}
}

func (s *userStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid)
}

func (s *userStore) Get(ctx context.Context, uid string) (*models.User, error) {
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("user not found: " + uid)
		}
		return nil, err
	}
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return nil, err
	}
	u.UID = snap.Ref.ID
	return &u, nil
}

// SetLinkedWallet stores the linked wallet id, or clears it when empty.
// Merge keeps any other user settings intact.
func (s *userStore) SetLinkedWallet(ctx context.Context, uid, linkedWalletID string) error {
	data := map[string]interface{}{
		"updatedAt": time.Now(),
	}
	if linkedWalletID == "" {
		data["linkedWalletId"] = firestore.Delete
	} else {
		data["linkedWalletId"] = linkedWalletID
	}
	_, err := s.doc(uid).Set(ctx, data, firestore.MergeAll)
	return err
}
