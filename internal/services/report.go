package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/granaapp/grana-backend/internal/dto"
	"github.com/granaapp/grana-backend/internal/errs"
	"github.com/granaapp/grana-backend/internal/models"
	"github.com/granaapp/grana-backend/pkg/logger"
)

type textGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// reportService turns one month of ledger activity into a short narrative
// via the generative model.
type reportService struct {
	ledger    ledgerReadStore
	generator textGenerator
}

func NewReportService(ledger ledgerReadStore, generator textGenerator) *reportService {
	return &reportService{
		ledger:    ledger,
		generator: generator,
	}
}

const reportSystemPrompt = "Você é um assistente financeiro de uma família brasileira. " +
	"Escreva um resumo curto e direto do mês, em português, apontando os maiores gastos " +
	"por categoria e uma sugestão prática de economia. Não invente números."

func (r *reportService) Monthly(ctx context.Context, walletID, month string) (dto.MonthlyReport, error) {
	if len(month) != 7 {
		return dto.MonthlyReport{}, errs.NewValidationError("month must be in YYYY-MM format")
	}

	all, err := r.ledger.ListByWallet(ctx, walletID)
	if err != nil {
		return dto.MonthlyReport{}, errs.NewDatabaseError("report.list", err.Error())
	}

	txs := FilterTransactions(all, dto.TransactionFilter{Month: month}, nil)
	summary := Summarize(txs)
	if summary.Count == 0 {
		return dto.MonthlyReport{
			Month:   month,
			Summary: summary,
			Report:  "Sem movimentações neste mês.",
		}, nil
	}

	text, err := r.generator.GenerateText(ctx, reportSystemPrompt, buildReportPrompt(month, summary, txs))
	if err != nil {
		logger.FromContext(ctx).Error("monthly report generation failed", "month", month, "error", err)
		return dto.MonthlyReport{}, errs.NewExternalServiceError("vertex", err.Error(), true)
	}

	return dto.MonthlyReport{
		Month:   month,
		Summary: summary,
		Report:  strings.TrimSpace(text),
	}, nil
}

// buildReportPrompt renders the month's totals and per-category expense
// breakdown as plain text for the model.
func buildReportPrompt(month string, summary dto.Summary, txs []*models.Transaction) string {
	byCategory := map[string]float64{}
	for _, tx := range txs {
		if tx.Amount < 0 {
			byCategory[tx.Category] += -tx.Amount
		}
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		return byCategory[categories[i]] > byCategory[categories[j]]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Mês: %s\n", month)
	fmt.Fprintf(&b, "Receitas: R$ %.2f\n", summary.Income)
	fmt.Fprintf(&b, "Despesas: R$ %.2f\n", -summary.Expense)
	fmt.Fprintf(&b, "Saldo do mês: R$ %.2f\n", summary.Total)
	fmt.Fprintf(&b, "Lançamentos: %d\n", summary.Count)
	b.WriteString("Despesas por categoria:\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "- %s: R$ %.2f\n", models.CategoryLabel(cat), byCategory[cat])
	}
	return b.String()
}
