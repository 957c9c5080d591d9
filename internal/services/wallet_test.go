package services

import (
	"context"
	"errors"
	"testing"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/helpers"
)

type fakeUsers struct {
	users  map[string]*models.User
	getErr error
	setErr error
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*models.User{}}
	for _, u := range users {
		f.users[u.UID] = u
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, uid string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[uid]
	if !ok {
		return nil, errs.NewNotFoundError("user not found: " + uid)
	}
	return u, nil
}

func (f *fakeUsers) SetLinkedWallet(_ context.Context, uid, linkedWalletID string) error {
	if f.setErr != nil {
		return f.setErr
	}
	u, ok := f.users[uid]
	if !ok {
		u = &models.User{UID: uid}
		f.users[uid] = u
	}
	u.LinkedWalletID = linkedWalletID
	return nil
}

func TestResolveActiveWalletDefaultsToUID(t *testing.T) {
	svc := NewWalletService(newFakeUsers())
	if got := svc.ResolveActiveWallet(helpers.TestCtx(), "uid-1"); got != "uid-1" {
		t.Fatalf("wallet mismatch: got %q", got)
	}
}

func TestResolveActiveWalletUsesLink(t *testing.T) {
	users := newFakeUsers(&models.User{UID: "uid-1", LinkedWalletID: "uid-2"})
	svc := NewWalletService(users)
	if got := svc.ResolveActiveWallet(helpers.TestCtx(), "uid-1"); got != "uid-2" {
		t.Fatalf("wallet mismatch: got %q", got)
	}
}

func TestResolveActiveWalletDegradesOnStoreError(t *testing.T) {
	users := newFakeUsers()
	users.getErr = errors.New("store down")
	svc := NewWalletService(users)
	if got := svc.ResolveActiveWallet(helpers.TestCtx(), "uid-1"); got != "uid-1" {
		t.Fatalf("wallet mismatch: got %q", got)
	}
}

func TestLinkAndUnlink(t *testing.T) {
	users := newFakeUsers()
	svc := NewWalletService(users)
	ctx := helpers.TestCtx()

	if err := svc.Link(ctx, "uid-1", dto.LinkWalletRequest{PartnerID: "uid-2"}); err != nil {
		t.Fatalf("Link error: %v", err)
	}
	info := svc.Info(ctx, "uid-1")
	if !info.Linked || info.ActiveWalletID != "uid-2" {
		t.Fatalf("info mismatch: %+v", info)
	}

	if err := svc.Unlink(ctx, "uid-1"); err != nil {
		t.Fatalf("Unlink error: %v", err)
	}
	info = svc.Info(ctx, "uid-1")
	if info.Linked || info.ActiveWalletID != "uid-1" {
		t.Fatalf("info mismatch after unlink: %+v", info)
	}
}

func TestLinkRejectsSelf(t *testing.T) {
	svc := NewWalletService(newFakeUsers())
	err := svc.Link(helpers.TestCtx(), "uid-1", dto.LinkWalletRequest{PartnerID: "uid-1"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLinkRejectsEmptyPartner(t *testing.T) {
	svc := NewWalletService(newFakeUsers())
	err := svc.Link(helpers.TestCtx(), "uid-1", dto.LinkWalletRequest{})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
