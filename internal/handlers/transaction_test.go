package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/middleware"
	"github.com/granaapp/grana-backend/internal/models"
)

type stubWalletResolver struct {
	walletID string
}

func (s *stubWalletResolver) ResolveActiveWallet(_ context.Context, uid string) string {
	if s.walletID != "" {
		return s.walletID
	}
	return uid
}

type stubTransactionService struct {
	recordReq    dto.CreateTransactionRequest
	recordWallet string
	recordOwner  string
	removeID     string
	removeConf   bool
	err          error
}

func (s *stubTransactionService) Record(_ context.Context, walletID, ownerUID, ownerName string, req dto.CreateTransactionRequest) ([]*models.Transaction, error) {
	s.recordWallet = walletID
	s.recordOwner = ownerUID
	s.recordReq = req
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Transaction{{TransactionID: "t1"}}, nil
}

func (s *stubTransactionService) Update(_ context.Context, walletID, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	return &models.Transaction{TransactionID: id}, s.err
}

func (s *stubTransactionService) Remove(_ context.Context, walletID, id string, confirmed bool) error {
	s.removeID = id
	s.removeConf = confirmed
	return s.err
}

type stubSummaryService struct {
	filter dto.TransactionFilter
}

func (s *stubSummaryService) View(_ context.Context, walletID string, filter dto.TransactionFilter) (dto.LedgerView, error) {
	s.filter = filter
	return dto.LedgerView{}, nil
}

func (s *stubSummaryService) ExportCSV(_ context.Context, walletID string, filter dto.TransactionFilter) ([]byte, error) {
	return []byte("csv"), nil
}

type stubResponseHandler struct {
	successStatus int
	successData   any
	handledErr    error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.successStatus = status
	s.successData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handledErr = err
	w.WriteHeader(http.StatusInternalServerError)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UIDKey, "uid-1")
	ctx = context.WithValue(ctx, middleware.NameKey, "Ana")
	return req.WithContext(ctx)
}

func TestCreateTransactionResolvesWallet(t *testing.T) {
	txSvc := &stubTransactionService{}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{
		ResponseHandler: resp,
		TransactionSvc:  txSvc,
		SummarySvc:      &stubSummaryService{},
		WalletSvc:       nil,
	})
	h.Wallet = &stubWalletResolver{walletID: "family-wallet"}

	body := `{"desc":"Mercado","amount":150,"date":"2025-03-15","category":"food","source":"acc-1"}`
	rr := httptest.NewRecorder()
	h.Create(rr, authedRequest(http.MethodPost, "/transactions", body))

	if txSvc.recordWallet != "family-wallet" {
		t.Fatalf("wallet mismatch: got %q", txSvc.recordWallet)
	}
	if txSvc.recordOwner != "uid-1" {
		t.Fatalf("owner mismatch: got %q", txSvc.recordOwner)
	}
	if txSvc.recordReq.Amount != 150 || txSvc.recordReq.Source != "acc-1" {
		t.Fatalf("request mismatch: %+v", txSvc.recordReq)
	}
	if resp.successStatus != http.StatusCreated {
		t.Fatalf("status mismatch: got %d", resp.successStatus)
	}
}

func TestDeleteTransactionPassesConfirmFlag(t *testing.T) {
	txSvc := &stubTransactionService{}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{
		ResponseHandler: resp,
		TransactionSvc:  txSvc,
		SummarySvc:      &stubSummaryService{},
	})
	h.Wallet = &stubWalletResolver{}

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodDelete, "/transactions/t1?confirm=true", "")
	router := chi.NewRouter()
	router.Mount("/transactions", h.TransactionRoutes())
	router.ServeHTTP(rr, req)

	if txSvc.removeID != "t1" {
		t.Fatalf("id mismatch: got %q", txSvc.removeID)
	}
	if !txSvc.removeConf {
		t.Fatal("confirm flag must pass through")
	}
}

func TestDeleteTransactionWithoutConfirm(t *testing.T) {
	txSvc := &stubTransactionService{err: errs.NewConfirmationRequiredError("confirm")}
	resp := &stubResponseHandler{}
	h := NewTransactionHandlers(&Deps{
		ResponseHandler: resp,
		TransactionSvc:  txSvc,
		SummarySvc:      &stubSummaryService{},
	})
	h.Wallet = &stubWalletResolver{}

	rr := httptest.NewRecorder()
	router := chi.NewRouter()
	router.Mount("/transactions", h.TransactionRoutes())
	router.ServeHTTP(rr, authedRequest(http.MethodDelete, "/transactions/t1", ""))

	if txSvc.removeConf {
		t.Fatal("confirm flag must default to false")
	}
	if resp.handledErr == nil {
		t.Fatal("error must reach the response handler")
	}
}

func TestListParsesFilterQuery(t *testing.T) {
	sumSvc := &stubSummaryService{}
	h := NewTransactionHandlers(&Deps{
		ResponseHandler: &stubResponseHandler{},
		TransactionSvc:  &stubTransactionService{},
		SummarySvc:      sumSvc,
	})
	h.Wallet = &stubWalletResolver{}

	rr := httptest.NewRecorder()
	h.List(rr, authedRequest(http.MethodGet, "/transactions?month=2025-03&search=merc&status=pending", ""))

	want := dto.TransactionFilter{Month: "2025-03", Search: "merc", Status: "pending"}
	if sumSvc.filter != want {
		t.Fatalf("filter mismatch: got %+v", sumSvc.filter)
	}
}

func TestExportSetsCSVHeaders(t *testing.T) {
	h := NewTransactionHandlers(&Deps{
		ResponseHandler: &stubResponseHandler{},
		TransactionSvc:  &stubTransactionService{},
		SummarySvc:      &stubSummaryService{},
	})
	h.Wallet = &stubWalletResolver{}

	rr := httptest.NewRecorder()
	h.Export(rr, authedRequest(http.MethodGet, "/transactions/export", ""))

	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("content type mismatch: got %q", got)
	}
	if rr.Body.String() != "csv" {
		t.Fatalf("body mismatch: got %q", rr.Body.String())
	}
}
