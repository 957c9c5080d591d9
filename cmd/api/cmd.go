package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/granaapp/grana-backend/internal/bootstrap"
	"github.com/granaapp/grana-backend/internal/config"
	"github.com/granaapp/grana-backend/internal/handlers"
	"github.com/granaapp/grana-backend/internal/response"
	"github.com/granaapp/grana-backend/internal/router"
	"github.com/granaapp/grana-backend/internal/services"
	"github.com/granaapp/grana-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// local development only; the deployed service gets real env vars
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	astore := store.NewAccountStore(bs.Firestore)
	cstore := store.NewCardStore(bs.Firestore)
	dstore := store.NewDebtStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)
	istore := store.NewInvestmentStore(bs.Firestore)

	// services
	wserv := services.NewWalletService(ustore)
	tserv := services.NewTransactionService(tstore, astore, cstore, dstore)
	pserv := services.NewPaymentService(tstore, astore, cstore, dstore)
	sserv := services.NewSummaryService(tstore, astore, cstore)
	aserv := services.NewAccountService(astore)
	cserv := services.NewCardService(cstore)
	dserv := services.NewDebtService(dstore)
	gserv := services.NewGoalService(gstore)
	iserv := services.NewInvestmentService(istore)
	rserv := services.NewReportService(tstore, bs.VertexAdapter)
	sync := services.NewSyncManager(tstore, astore, cstore, dstore, istore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.WalletSvc = wserv
	deps.TransactionSvc = tserv
	deps.PaymentSvc = pserv
	deps.SummarySvc = sserv
	deps.AccountSvc = aserv
	deps.CardSvc = cserv
	deps.DebtSvc = dserv
	deps.GoalSvc = gserv
	deps.InvestmentSvc = iserv
	deps.ReportSvc = rserv
	deps.Sync = sync

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
