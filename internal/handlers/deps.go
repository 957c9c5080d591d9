package handlers

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/granaapp/grana-backend/internal/response"
	"github.com/granaapp/grana-backend/internal/services"
)

// walletResolver maps the authenticated uid to the wallet their requests
// act on (their own or the linked family wallet).
type walletResolver interface {
	ResolveActiveWallet(ctx context.Context, uid string) string
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client

	WalletSvc      WalletService
	TransactionSvc TransactionService
	SummarySvc     SummaryService
	PaymentSvc     PaymentService
	AccountSvc     AccountService
	CardSvc        CardService
	DebtSvc        DebtService
	GoalSvc        GoalService
	InvestmentSvc  InvestmentService
	ReportSvc      ReportService
	Sync           *services.SyncManager
}
