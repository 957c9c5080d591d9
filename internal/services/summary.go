package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
)

type ledgerReadStore interface {
	ListByWallet(ctx context.Context, walletID string) ([]*models.Transaction, error)
}

type cardReadStore interface {
	List(ctx context.Context, walletID string) ([]*models.Card, error)
}

type accountReadStore interface {
	List(ctx context.Context, walletID string) ([]*models.Account, error)
}

// summaryService is the read-side view over the ledger: filtering,
// aggregate totals and CSV export. It never writes anything.
type summaryService struct {
	ledger   ledgerReadStore
	accounts accountReadStore
	cards    cardReadStore
}

func NewSummaryService(ledger ledgerReadStore, accounts accountReadStore, cards cardReadStore) *summaryService {
	return &summaryService{ledger: ledger, accounts: accounts, cards: cards}
}

// View returns the filtered subset of the wallet's ledger plus its
// summary totals.
func (s *summaryService) View(ctx context.Context, walletID string, filter dto.TransactionFilter) (dto.LedgerView, error) {
	txs, err := s.ledger.ListByWallet(ctx, walletID)
	if err != nil {
		return dto.LedgerView{}, errs.NewDatabaseError("summary.list", err.Error())
	}

	cardIDs := map[string]bool{}
	if filter.Status != "" {
		cards, err := s.cards.List(ctx, walletID)
		if err != nil {
			return dto.LedgerView{}, errs.NewDatabaseError("summary.cards", err.Error())
		}
		for _, c := range cards {
			cardIDs[c.CardID] = true
		}
	}

	filtered := FilterTransactions(txs, filter, cardIDs)
	return dto.LedgerView{
		Transactions: filtered,
		Summary:      Summarize(filtered),
	}, nil
}

// FilterTransactions applies the display filter: month prefix on the
// date, case-insensitive substring on the description, exact source
// match, and the derived payment status. Pure, no side effects.
func FilterTransactions(txs []*models.Transaction, filter dto.TransactionFilter, cardIDs map[string]bool) []*models.Transaction {
	search := strings.ToLower(filter.Search)
	out := make([]*models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Month != "" && !strings.HasPrefix(tx.Date, filter.Month) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(tx.Description), search) {
			continue
		}
		if filter.Source != "" && tx.Source != filter.Source {
			continue
		}
		if filter.Status != "" && derivedStatus(tx, cardIDs) != filter.Status {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// derivedStatus classifies an entry for the status filter. A card expense
// counts as paid — the card's bill already absorbs it — and incomes are
// never pending.
func derivedStatus(tx *models.Transaction, cardIDs map[string]bool) string {
	if tx.Amount >= 0 {
		return dto.StatusPaid
	}
	if tx.Paid || cardIDs[tx.Source] {
		return dto.StatusPaid
	}
	return dto.StatusPending
}

// Summarize computes the aggregate totals over a (usually filtered)
// subset: signed net, income and expense sides.
func Summarize(txs []*models.Transaction) dto.Summary {
	sum := dto.Summary{Count: len(txs)}
	for _, tx := range txs {
		sum.Total += tx.Amount
		if tx.Amount > 0 {
			sum.Income += tx.Amount
		} else {
			sum.Expense += tx.Amount
		}
	}
	return sum
}

// ExportCSV renders the filtered subset the way the web client's export
// did: semicolon-separated, UTF-8 BOM for spreadsheet compatibility,
// dd/mm/yyyy dates and the source rendered as the account or card name.
func (s *summaryService) ExportCSV(ctx context.Context, walletID string, filter dto.TransactionFilter) ([]byte, error) {
	view, err := s.View(ctx, walletID, filter)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.List(ctx, walletID)
	if err != nil {
		return nil, errs.NewDatabaseError("export.accounts", err.Error())
	}
	cards, err := s.cards.List(ctx, walletID)
	if err != nil {
		return nil, errs.NewDatabaseError("export.cards", err.Error())
	}
	names := make(map[string]string, len(accounts)+len(cards))
	for _, acc := range accounts {
		names[acc.AccountID] = acc.Name
	}
	for _, c := range cards {
		names[c.CardID] = "Cartão " + c.Name
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write([]string{"Data", "Descrição", "Valor", "Categoria", "Pagamento", "Por"}); err != nil {
		return nil, err
	}
	for _, tx := range view.Transactions {
		source := "Carteira"
		if tx.Source != "" && tx.Source != models.SourceWallet {
			if name, ok := names[tx.Source]; ok {
				source = name
			} else {
				source = "Fonte Removida"
			}
		}
		owner := tx.OwnerName
		if owner == "" {
			owner = "---"
		}
		record := []string{
			formatDateBR(tx.Date),
			tx.Description,
			formatAmountBR(tx.Amount),
			models.CategoryLabel(tx.Category),
			source,
			owner,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatDateBR turns YYYY-MM-DD into dd/mm/yyyy, passing malformed dates
// through untouched.
func formatDateBR(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// formatAmountBR renders an amount with a decimal comma.
func formatAmountBR(amount float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(amount, 'f', 2, 64), ".", ",")
}
