package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/granaapp/grana-backend/internal/handlers"
	"github.com/granaapp/grana-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.NewMiddleware(deps.Firebase).FirebaseAuth)

	th := handlers.NewTransactionHandlers(deps)
	ph := handlers.NewPaymentHandlers(deps)
	ah := handlers.NewAccountHandlers(deps)
	ch := handlers.NewCardHandlers(deps)
	dh := handlers.NewDebtHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	ih := handlers.NewInvestmentHandlers(deps)
	wh := handlers.NewWalletHandlers(deps)
	rh := handlers.NewReportHandlers(deps)
	sh := handlers.NewStreamHandlers(deps)

	r.Mount("/transactions", th.TransactionRoutes())
	r.Mount("/payments", ph.PaymentRoutes())
	r.Mount("/consolidations", ph.ConsolidationRoutes())
	r.Mount("/accounts", ah.AccountRoutes())
	r.Mount("/cards", ch.CardRoutes())
	r.Mount("/debts", dh.DebtRoutes())
	r.Mount("/goals", gh.GoalRoutes())
	r.Mount("/investments", ih.InvestmentRoutes())
	r.Mount("/wallet", wh.WalletRoutes())
	r.Mount("/reports", rh.ReportRoutes())
	r.Mount("/stream", sh.StreamRoutes())
	return r
}
