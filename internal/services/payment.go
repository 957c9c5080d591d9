package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/logger"
)

type ledgerPaymentStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Get(ctx context.Context, walletID, id string) (*models.Transaction, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	ListByWallet(ctx context.Context, walletID string) ([]*models.Transaction, error)
}

type cardListStore interface {
	cardHolderStore
	List(ctx context.Context, walletID string) ([]*models.Card, error)
}

type accountListStore interface {
	accountHolderStore
	List(ctx context.Context, walletID string) ([]*models.Account, error)
}

// paymentService settles card bills and debts from accounts, and runs the
// bulk consolidation that applies deferred expenses once due.
type paymentService struct {
	ledger   ledgerPaymentStore
	accounts accountListStore
	cards    cardListStore
	debts    debtHolderStore
	clockNow func() time.Time
}

func NewPaymentService(ledger ledgerPaymentStore, accounts accountListStore, cards cardListStore, debts debtHolderStore) *paymentService {
	return &paymentService{
		ledger:   ledger,
		accounts: accounts,
		cards:    cards,
		debts:    debts,
		clockNow: time.Now,
	}
}

// Pay records a settlement: the account is debited the full amount, the
// target card bill or debt balance is reduced, clamped at zero. The
// optional discount is an extra reduction applied only to debts; it never
// reaches the account debit.
func (s *paymentService) Pay(ctx context.Context, walletID, ownerUID, ownerName string, req dto.PaymentRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be positive")
	}
	if req.Discount < 0 {
		return nil, errs.NewValidationError("discount cannot be negative")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, errs.NewValidationError("date must be YYYY-MM-DD")
	}

	if _, err := s.accounts.Get(ctx, walletID, req.AccountID); err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return nil, errs.NewValidationError("paying account not found: " + req.AccountID)
		}
		return nil, err
	}

	var (
		description string
		targetKind  SourceKind
		nf          *errs.NotFoundError
	)
	if card, err := s.cards.Get(ctx, walletID, req.TargetID); err == nil {
		targetKind = KindCard
		description = "Pagamento Fatura: " + card.Name
		if req.Discount > 0 {
			return nil, errs.NewValidationError("discount only applies to debt payments")
		}
	} else if !errors.As(err, &nf) {
		return nil, err
	} else if debt, err := s.debts.Get(ctx, walletID, req.TargetID); err == nil {
		targetKind = KindDebt
		description = "Pagamento Dívida: " + debt.Name
	} else if !errors.As(err, &nf) {
		return nil, err
	} else {
		return nil, errs.NewValidationError("payment target not found: " + req.TargetID)
	}

	entry := &models.Transaction{
		TransactionID: uuid.New().String(),
		WalletID:      walletID,
		OwnerUserID:   ownerUID,
		OwnerName:     ownerName,
		Description:   description,
		Amount:        -req.Amount,
		Date:          req.Date,
		Category:      "other",
		Source:        req.AccountID,
		TargetID:      req.TargetID,
		Paid:          true,
		IsPayment:     true,
		CreatedAt:     s.clockNow(),
	}

	log := logger.FromContext(ctx)
	if err := s.ledger.Create(ctx, entry); err != nil {
		log.Error("ledger write failed", "transaction_id", entry.TransactionID, "error", err)
		return nil, errs.NewDatabaseError("payment.create", err.Error())
	}

	if err := s.accounts.AddToBalance(ctx, req.AccountID, -req.Amount); err != nil {
		log.Error("account debit failed after ledger write; balances need reconciliation",
			"transaction_id", entry.TransactionID, "account_id", req.AccountID, "error", err)
		return nil, errs.NewDatabaseError("payment.debit", err.Error())
	}

	var err error
	switch targetKind {
	case KindCard:
		err = s.cards.ApplyBillDelta(ctx, req.TargetID, -req.Amount)
	case KindDebt:
		err = s.debts.ApplyBalanceDelta(ctx, req.TargetID, -(req.Amount + req.Discount))
	}
	if err != nil {
		log.Error("target reduction failed after account debit; balances need reconciliation",
			"transaction_id", entry.TransactionID, "target_id", req.TargetID, "error", err)
		return nil, errs.NewDatabaseError("payment.settle", err.Error())
	}

	log.Info("payment settled", "target_id", req.TargetID, "amount", req.Amount)
	return entry, nil
}

// Consolidate marks every due, unpaid, non-card expense of the wallet as
// paid and debits resolvable account sources. This is what finally
// applies the effects Create deferred on future-dated entries; entries
// already paid are excluded, so re-running is a no-op.
func (s *paymentService) Consolidate(ctx context.Context, walletID string, confirmed bool) (dto.ConsolidateResult, error) {
	result := dto.ConsolidateResult{}
	if !confirmed {
		return result, errs.NewConfirmationRequiredError("bulk consolidation requires confirmation")
	}

	txs, err := s.ledger.ListByWallet(ctx, walletID)
	if err != nil {
		return result, errs.NewDatabaseError("consolidate.list", err.Error())
	}

	accountIDs, cardIDs, err := s.holderIDSets(ctx, walletID)
	if err != nil {
		return result, err
	}

	today := s.clockNow().Format(dateLayout)
	log := logger.FromContext(ctx)

	for _, tx := range txs {
		if !eligibleForConsolidation(tx, cardIDs, today) {
			continue
		}
		if err := s.consolidateEntry(ctx, tx, accountIDs); err != nil {
			log.Error("consolidation stopped; balances need reconciliation",
				"transaction_id", tx.TransactionID, "processed", result.Processed, "error", err)
			return result, err
		}
		result.Processed++
	}

	log.Info("consolidation finished", "processed", result.Processed)
	return result, nil
}

// ConsolidateOne applies the same sweep to a single entry. Ineligible
// entries (already paid, future-dated, card-sourced) are skipped without
// error, keeping the operation idempotent.
func (s *paymentService) ConsolidateOne(ctx context.Context, walletID, id string) (dto.ConsolidateResult, error) {
	result := dto.ConsolidateResult{}

	tx, err := s.ledger.Get(ctx, walletID, id)
	if err != nil {
		return result, err
	}

	accountIDs, cardIDs, err := s.holderIDSets(ctx, walletID)
	if err != nil {
		return result, err
	}

	if !eligibleForConsolidation(tx, cardIDs, s.clockNow().Format(dateLayout)) {
		return result, nil
	}
	if err := s.consolidateEntry(ctx, tx, accountIDs); err != nil {
		return result, err
	}
	result.Processed = 1
	return result, nil
}

func (s *paymentService) consolidateEntry(ctx context.Context, tx *models.Transaction, accountIDs map[string]bool) error {
	if err := s.ledger.Update(ctx, tx.TransactionID, map[string]interface{}{"paid": true}); err != nil {
		return errs.NewDatabaseError("consolidate.mark", err.Error())
	}
	if accountIDs[tx.Source] {
		amount := tx.Amount
		if amount < 0 {
			amount = -amount
		}
		if err := s.accounts.AddToBalance(ctx, tx.Source, -amount); err != nil {
			var nf *errs.NotFoundError
			if errors.As(err, &nf) {
				logger.FromContext(ctx).Warn("account vanished during consolidation, delta skipped",
					"account_id", tx.Source)
				return nil
			}
			return errs.NewDatabaseError("consolidate.debit", err.Error())
		}
	}
	return nil
}

func (s *paymentService) holderIDSets(ctx context.Context, walletID string) (accountIDs, cardIDs map[string]bool, err error) {
	accounts, err := s.accounts.List(ctx, walletID)
	if err != nil {
		return nil, nil, errs.NewDatabaseError("consolidate.accounts", err.Error())
	}
	cards, err := s.cards.List(ctx, walletID)
	if err != nil {
		return nil, nil, errs.NewDatabaseError("consolidate.cards", err.Error())
	}
	accountIDs = make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		accountIDs[acc.AccountID] = true
	}
	cardIDs = make(map[string]bool, len(cards))
	for _, card := range cards {
		cardIDs[card.CardID] = true
	}
	return accountIDs, cardIDs, nil
}

// eligibleForConsolidation filters for unpaid, due expenses that are not
// card purchases: the card's bill already reflects those, marking them
// paid again would double-count.
func eligibleForConsolidation(tx *models.Transaction, cardIDs map[string]bool, today string) bool {
	if tx.Paid || tx.Amount >= 0 {
		return false
	}
	if tx.Date > today {
		return false
	}
	if cardIDs[tx.Source] {
		return false
	}
	return true
}
