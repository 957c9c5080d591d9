package services

import (
	"context"
	"errors"

	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

// SourceKind tags the balance holder a transaction source resolves to.
// The stored source field is a single string that may be the "wallet"
// sentinel or an id from one of three disjoint id spaces; it is resolved
// to a Source exactly once, at the operation boundary.
type SourceKind int

const (
	KindWallet SourceKind = iota
	KindAccount
	KindCard
	KindDebt
)

func (k SourceKind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindCard:
		return "card"
	case KindDebt:
		return "debt"
	default:
		return "wallet"
	}
}

// Source is the resolved form of a transaction's source field.
type Source struct {
	Kind SourceKind
	ID   string
}

// holderKey identifies one balance holder across the three collections.
type holderKey struct {
	Kind SourceKind
	ID   string
}

const dateLayout = "2006-01-02"

// Polarity aliases; the engine spells these constantly.
const (
	Income  = models.Income
	Expense = models.Expense
)

// forwardDelta is the routing table: the signed change Create applies to
// the source's balance field for a transaction of the given polarity and
// magnitude. Wallet entries touch nothing; cards only accumulate
// expenses, so an income routed to a card yields no delta.
func forwardDelta(src Source, polarity models.Polarity, magnitude float64) float64 {
	if magnitude < 0 {
		magnitude = -magnitude
	}
	switch src.Kind {
	case KindCard:
		if polarity == Expense {
			return magnitude // bill grows
		}
		return 0
	case KindAccount:
		if polarity == Expense {
			return -magnitude
		}
		return magnitude
	case KindDebt:
		if polarity == Expense {
			return -magnitude
		}
		return magnitude
	default:
		return 0
	}
}

// isEffectiveImmediately reports whether Create applies the routing-table
// delta right away. Expenses against an account or debt are deferred while
// future-dated; they are picked up later by consolidation. Incomes and
// card expenses always apply immediately.
func isEffectiveImmediately(src Source, polarity models.Polarity, date, today string) bool {
	switch src.Kind {
	case KindWallet:
		return false
	case KindCard:
		return true
	default:
		if polarity == Income {
			return true
		}
		return date <= today
	}
}

// wasApplied reports whether a stored entry's forward delta has reached
// its holder: card expenses and incomes apply at creation, deferred
// account/debt expenses only once consolidation marked them paid.
func wasApplied(src Source, tx *models.Transaction) bool {
	switch src.Kind {
	case KindWallet:
		return false
	case KindCard:
		return true
	default:
		if models.PolarityOf(tx.Amount) == Income {
			return true
		}
		return tx.Paid
	}
}

// computeNetDelta merges the reversal of the original entry with the
// forward delta of its replacement into one delta per holder. Same-source
// edits therefore produce a single net write, so a clamp on the undo step
// can never swallow precision the apply step needs.
func computeNetDelta(oldSrc Source, oldDelta float64, newSrc Source, newDelta float64) map[holderKey]float64 {
	deltas := make(map[holderKey]float64, 2)
	if oldSrc.Kind != KindWallet && oldDelta != 0 {
		deltas[holderKey{oldSrc.Kind, oldSrc.ID}] -= oldDelta
	}
	if newSrc.Kind != KindWallet && newDelta != 0 {
		deltas[holderKey{newSrc.Kind, newSrc.ID}] += newDelta
	}
	for k, d := range deltas {
		if d == 0 {
			delete(deltas, k)
		}
	}
	return deltas
}

// Engine-side store contracts for the three balance holder collections.
// The mutation ops are the only way balances change.

type accountHolderStore interface {
	Get(ctx context.Context, walletID, id string) (*models.Account, error)
	AddToBalance(ctx context.Context, id string, delta float64) error
}

type cardHolderStore interface {
	Get(ctx context.Context, walletID, id string) (*models.Card, error)
	ApplyBillDelta(ctx context.Context, id string, delta float64) error
}

type debtHolderStore interface {
	Get(ctx context.Context, walletID, id string) (*models.Debt, error)
	ApplyBalanceDelta(ctx context.Context, id string, delta float64) error
}

// sourceResolver probes the three holder collections to classify a raw
// source string.
type sourceResolver struct {
	accounts accountHolderStore
	cards    cardHolderStore
	debts    debtHolderStore
}

// Resolve classifies a stored source string. An empty source or the
// wallet sentinel is KindWallet; anything else must match an account,
// card or debt of the wallet, in that probe order.
func (r *sourceResolver) Resolve(ctx context.Context, walletID, raw string) (Source, error) {
	if raw == "" || raw == models.SourceWallet {
		return Source{Kind: KindWallet}, nil
	}

	var nf *errs.NotFoundError
	if _, err := r.accounts.Get(ctx, walletID, raw); err == nil {
		return Source{Kind: KindAccount, ID: raw}, nil
	} else if !errors.As(err, &nf) {
		return Source{}, err
	}
	if _, err := r.cards.Get(ctx, walletID, raw); err == nil {
		return Source{Kind: KindCard, ID: raw}, nil
	} else if !errors.As(err, &nf) {
		return Source{}, err
	}
	if _, err := r.debts.Get(ctx, walletID, raw); err == nil {
		return Source{Kind: KindDebt, ID: raw}, nil
	} else if !errors.As(err, &nf) {
		return Source{}, err
	}
	return Source{}, errs.NewNotFoundError("source not found: " + raw)
}
