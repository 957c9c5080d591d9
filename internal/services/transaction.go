package services

import (
	"context"
	"errors"
	"time"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/logger"
)

// ledgerEngineStore is the ledger side of the consolidation engine.
type ledgerEngineStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Get(ctx context.Context, walletID, id string) (*models.Transaction, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// transactionService is the consolidation engine: every ledger mutation
// flows through here so the derived balances on accounts, cards and debts
// stay consistent with the ledger.
type transactionService struct {
	ledger   ledgerEngineStore
	accounts accountHolderStore
	cards    cardHolderStore
	debts    debtHolderStore
	resolver sourceResolver
	clockNow func() time.Time
}

func NewTransactionService(ledger ledgerEngineStore, accounts accountHolderStore, cards cardHolderStore, debts debtHolderStore) *transactionService {
	return &transactionService{
		ledger:   ledger,
		accounts: accounts,
		cards:    cards,
		debts:    debts,
		resolver: sourceResolver{accounts: accounts, cards: cards, debts: debts},
		clockNow: time.Now,
	}
}

func (s *transactionService) today() string {
	return s.clockNow().Format(dateLayout)
}

// Record creates the ledger entries for one submitted transaction and
// applies their routing-table deltas. The amount sign is decided by the
// category type; installments and monthly repeats are expanded before
// anything is written.
func (s *transactionService) Record(ctx context.Context, walletID, ownerUID, ownerName string, req dto.CreateTransactionRequest) ([]*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, errs.NewValidationError("date must be YYYY-MM-DD")
	}
	category, ok := models.Categories[req.Category]
	if !ok {
		return nil, errs.NewValidationError("unknown category: " + req.Category)
	}
	if req.Installments > 1 && req.RepeatMonthly {
		// Recurrence wins; the expander ignores the installment count.
		req.Installments = 1
	}

	if req.Source == "" {
		req.Source = models.SourceWallet
	}
	src, err := s.resolver.Resolve(ctx, walletID, req.Source)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return nil, errs.NewValidationError("source not found: " + req.Source)
		}
		return nil, err
	}
	polarity := category.Type
	if src.Kind == KindCard && polarity == Income {
		return nil, errs.NewValidationError("income cannot be routed to a card")
	}

	entries := expandEntries(walletID, ownerUID, ownerName, req, polarity, s.clockNow())
	today := s.today()
	log := logger.FromContext(ctx)

	for _, entry := range entries {
		effective := isEffectiveImmediately(src, polarity, entry.Date, today)
		entry.Paid = paidAtCreate(src, polarity, effective)

		if err := s.ledger.Create(ctx, entry); err != nil {
			log.Error("ledger write failed", "transaction_id", entry.TransactionID, "error", err)
			return nil, errs.NewDatabaseError("transaction.create", err.Error())
		}
		if !effective {
			continue
		}
		delta := forwardDelta(src, polarity, entry.Amount)
		if err := s.applyHolderDelta(ctx, walletID, src, delta); err != nil {
			// The ledger entry exists but the balance does not reflect it.
			log.Error("balance update failed after ledger write; balances need reconciliation",
				"transaction_id", entry.TransactionID,
				"holder_kind", src.Kind.String(),
				"holder_id", src.ID,
				"error", err)
			return nil, errs.NewDatabaseError("transaction.create.balance", err.Error())
		}
	}

	return entries, nil
}

// Update edits an entry and re-reconciles the touched holders: the
// original's applied effect is undone and the new one applied, netted
// into a single write per holder when both sides hit the same one. The
// polarity of the original is kept — an edit cannot flip income and
// expense, only magnitude, date, category, description and source.
func (s *transactionService) Update(ctx context.Context, walletID, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, errs.NewValidationError("date must be YYYY-MM-DD")
	}

	original, err := s.ledger.Get(ctx, walletID, id)
	if err != nil {
		return nil, err
	}

	polarity := models.PolarityOf(original.Amount)
	newAmount := polarity.Signed(req.Amount)

	if req.Source == "" {
		req.Source = models.SourceWallet
	}
	newSrc, err := s.resolver.Resolve(ctx, walletID, req.Source)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return nil, errs.NewValidationError("source not found: " + req.Source)
		}
		return nil, err
	}
	if newSrc.Kind == KindCard && polarity == Income {
		return nil, errs.NewValidationError("income cannot be routed to a card")
	}

	log := logger.FromContext(ctx)

	// The original's source may have been deleted since; its delta is then
	// skipped, the ledger stays authoritative.
	oldSrc, err := s.resolver.Resolve(ctx, walletID, original.Source)
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
		log.Warn("original source no longer exists, skipping reversal", "source", original.Source)
		oldSrc = Source{Kind: KindWallet}
	}

	var oldDelta float64
	if wasApplied(oldSrc, original) {
		oldDelta = forwardDelta(oldSrc, polarity, original.Amount)
	}
	effective := isEffectiveImmediately(newSrc, polarity, req.Date, s.today())
	var newDelta float64
	if effective {
		newDelta = forwardDelta(newSrc, polarity, newAmount)
	}

	for key, delta := range computeNetDelta(oldSrc, oldDelta, newSrc, newDelta) {
		if err := s.applyHolderDelta(ctx, walletID, Source{Kind: key.Kind, ID: key.ID}, delta); err != nil {
			log.Error("balance update failed during edit; balances need reconciliation",
				"transaction_id", id,
				"holder_kind", key.Kind.String(),
				"holder_id", key.ID,
				"error", err)
			return nil, errs.NewDatabaseError("transaction.update.balance", err.Error())
		}
	}

	fields := map[string]interface{}{
		"desc":   req.Description,
		"amount": newAmount,
		"date":   req.Date,
		"source": req.Source,
		"paid":   paidAtCreate(newSrc, polarity, effective),
	}
	if req.Category != "" {
		if _, ok := models.Categories[req.Category]; !ok {
			return nil, errs.NewValidationError("unknown category: " + req.Category)
		}
		fields["category"] = req.Category
	}
	if err := s.ledger.Update(ctx, id, fields); err != nil {
		log.Error("ledger update failed after balance writes; balances need reconciliation",
			"transaction_id", id, "error", err)
		return nil, errs.NewDatabaseError("transaction.update", err.Error())
	}

	return s.ledger.Get(ctx, walletID, id)
}

// Remove deletes an entry after reversing its routing-table delta. The
// reversal is unconditional — no deferral check on delete. Confirmation
// is required; the operation is irreversible.
func (s *transactionService) Remove(ctx context.Context, walletID, id string, confirmed bool) error {
	if !confirmed {
		return errs.NewConfirmationRequiredError("transaction delete requires confirmation")
	}

	original, err := s.ledger.Get(ctx, walletID, id)
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx)

	src, err := s.resolver.Resolve(ctx, walletID, original.Source)
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
		log.Warn("source no longer exists, skipping reversal", "source", original.Source)
		src = Source{Kind: KindWallet}
	}

	polarity := models.PolarityOf(original.Amount)
	reversal := -forwardDelta(src, polarity, original.Amount)
	if reversal != 0 {
		if err := s.applyHolderDelta(ctx, walletID, src, reversal); err != nil {
			log.Error("balance reversal failed during delete; balances need reconciliation",
				"transaction_id", id,
				"holder_kind", src.Kind.String(),
				"holder_id", src.ID,
				"error", err)
			return errs.NewDatabaseError("transaction.delete.balance", err.Error())
		}
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		log.Error("ledger delete failed after balance reversal; balances need reconciliation",
			"transaction_id", id, "error", err)
		return errs.NewDatabaseError("transaction.delete", err.Error())
	}
	return nil
}

// applyHolderDelta routes one signed delta to the holder's balance field.
// A holder deleted since resolution is skipped with a warning: the ledger
// is authoritative, balances are best-effort derived caches.
func (s *transactionService) applyHolderDelta(ctx context.Context, walletID string, src Source, delta float64) error {
	if src.Kind == KindWallet || delta == 0 {
		return nil
	}

	var err error
	switch src.Kind {
	case KindAccount:
		err = s.accounts.AddToBalance(ctx, src.ID, delta)
	case KindCard:
		err = s.cards.ApplyBillDelta(ctx, src.ID, delta)
	case KindDebt:
		err = s.debts.ApplyBalanceDelta(ctx, src.ID, delta)
	}

	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		logger.FromContext(ctx).Warn("balance holder vanished, delta skipped",
			"holder_kind", src.Kind.String(), "holder_id", src.ID)
		return nil
	}
	return err
}

// paidAtCreate decides the paid flag the engine stores alongside an
// entry. Paid doubles as the applied marker: card expenses and incomes
// are applied on the spot, account/debt expenses only when their date has
// arrived, wallet entries when consolidation sweeps them.
func paidAtCreate(src Source, polarity models.Polarity, effective bool) bool {
	if polarity == Income {
		return true
	}
	switch src.Kind {
	case KindCard:
		return true
	case KindWallet:
		return false
	default:
		return effective
	}
}
