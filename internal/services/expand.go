package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/models"
)

// recurrenceCount is the fixed number of monthly repeats a "repeat
// monthly" submission expands into.
const recurrenceCount = 12

// expandEntries turns one submitted transaction form into the ledger
// entries to create.
//
// With N>1 installments the total is split into N equal shares by plain
// division — no remainder redistribution, cent-level drift is a known
// limitation — each advanced by one calendar month and suffixed "(i/N)".
// With the monthly-repeat flag set, 12 entries each carry the full amount,
// suffixed "[Fixo]" and flagged recurring; the flag overrides any
// installment count.
func expandEntries(walletID, ownerUID, ownerName string, req dto.CreateTransactionRequest, polarity models.Polarity, createdAt time.Time) []*models.Transaction {
	start, _ := time.Parse(dateLayout, req.Date)

	count := req.Installments
	if count < 1 {
		count = 1
	}
	recurring := req.RepeatMonthly
	if recurring {
		count = recurrenceCount
	}

	signedTotal := polarity.Signed(req.Amount)
	perEntry := signedTotal
	if !recurring && count > 1 {
		perEntry = signedTotal / float64(count)
	}

	entries := make([]*models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		desc := req.Description
		switch {
		case recurring:
			desc = fmt.Sprintf("%s [Fixo]", req.Description)
		case count > 1:
			desc = fmt.Sprintf("%s (%d/%d)", req.Description, i+1, count)
		}

		entries = append(entries, &models.Transaction{
			TransactionID: uuid.New().String(),
			WalletID:      walletID,
			OwnerUserID:   ownerUID,
			OwnerName:     ownerName,
			Description:   desc,
			Amount:        perEntry,
			Date:          start.AddDate(0, i, 0).Format(dateLayout),
			Category:      req.Category,
			Source:        req.Source,
			IsRecurring:   recurring,
			CreatedAt:     createdAt,
		})
	}
	return entries
}
