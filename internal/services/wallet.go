package services

import (
	"context"
	"errors"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/logger"
)

type walletUserStore interface {
	Get(ctx context.Context, uid string) (*models.User, error)
	SetLinkedWallet(ctx context.Context, uid, linkedWalletID string) error
}

// walletService resolves which wallet a user operates on and manages the
// family link between two users.
type walletService struct {
	users walletUserStore
}

func NewWalletService(users walletUserStore) *walletService {
	return &walletService{users: users}
}

// ResolveActiveWallet returns the wallet id the user's requests act on:
// the linked family wallet when one is set, otherwise their own uid.
// Lookup failures degrade to the personal wallet rather than blocking the
// session.
func (s *walletService) ResolveActiveWallet(ctx context.Context, uid string) string {
	user, err := s.users.Get(ctx, uid)
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			logger.FromContext(ctx).Warn("wallet lookup failed, using personal wallet", "error", err)
		}
		return uid
	}
	if user.LinkedWalletID != "" {
		return user.LinkedWalletID
	}
	return uid
}

func (s *walletService) Info(ctx context.Context, uid string) dto.WalletInfo {
	active := s.ResolveActiveWallet(ctx, uid)
	return dto.WalletInfo{
		ActiveWalletID: active,
		Linked:         active != uid,
	}
}

// Link points the user's ledger at a partner's wallet.
func (s *walletService) Link(ctx context.Context, uid string, req dto.LinkWalletRequest) error {
	if req.PartnerID == "" {
		return errs.NewValidationError("partner id is required")
	}
	if req.PartnerID == uid {
		return errs.NewValidationError("cannot link a wallet to itself")
	}
	if err := s.users.SetLinkedWallet(ctx, uid, req.PartnerID); err != nil {
		return errs.NewDatabaseError("wallet.link", err.Error())
	}
	logger.FromContext(ctx).Info("wallet linked", "partner_id", req.PartnerID)
	return nil
}

// Unlink restores the user's personal wallet.
func (s *walletService) Unlink(ctx context.Context, uid string) error {
	if err := s.users.SetLinkedWallet(ctx, uid, ""); err != nil {
		return errs.NewDatabaseError("wallet.unlink", err.Error())
	}
	return nil
}
