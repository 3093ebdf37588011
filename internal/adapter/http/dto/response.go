package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
	"github.com/tradebooks/tradebooks/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse represents a signed balance in API responses.
type BalanceResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Side   string          `json:"side"`
}

// BalanceFromDomain converts a signed balance to a response.
func BalanceFromDomain(b domain.SignedBalance) BalanceResponse {
	return BalanceResponse{Amount: b.Amount, Side: string(b.Side)}
}

// UpdatedAccountResponse records one applied balance write.
type UpdatedAccountResponse struct {
	Kind    string          `json:"kind"`
	ID      string          `json:"id"`
	Balance BalanceResponse `json:"balance"`
}

// SkippedEntryResponse records one line that was deliberately skipped.
type SkippedEntryResponse struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// FailedUpdateResponse records one balance write that failed.
type FailedUpdateResponse struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// PostingReportResponse is the per-item outcome of a posting or reversal.
type PostingReportResponse struct {
	VoucherID     string                   `json:"voucher_id"`
	VoucherNumber int64                    `json:"voucher_number"`
	Updated       []UpdatedAccountResponse `json:"updated"`
	Skipped       []SkippedEntryResponse   `json:"skipped,omitempty"`
	Failed        []FailedUpdateResponse   `json:"failed,omitempty"`
}

// PostingReportFromUseCase converts a posting report to a response.
func PostingReportFromUseCase(report *usecase.PostingReport) *PostingReportResponse {
	resp := &PostingReportResponse{
		VoucherID:     report.VoucherID,
		VoucherNumber: report.VoucherNumber,
		Updated:       make([]UpdatedAccountResponse, 0, len(report.Updated)),
	}

	for _, u := range report.Updated {
		resp.Updated = append(resp.Updated, UpdatedAccountResponse{
			Kind:    string(u.Ref.Kind),
			ID:      u.Ref.ID,
			Balance: BalanceFromDomain(u.Balance),
		})
	}
	for _, s := range report.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedEntryResponse{Name: s.Name, Reason: s.Reason})
	}
	for _, f := range report.Failed {
		resp.Failed = append(resp.Failed, FailedUpdateResponse{
			Kind:   string(f.Ref.Kind),
			ID:     f.Ref.ID,
			Reason: f.Reason,
		})
	}

	return resp
}

// GroupBalanceResponse is one node of the rolled-up group tree.
type GroupBalanceResponse struct {
	ID                 string                  `json:"id"`
	Name               string                  `json:"name"`
	Type               string                  `json:"type"`
	Balance            decimal.Decimal         `json:"balance"`
	DebitTotal         decimal.Decimal         `json:"debit_total"`
	CreditTotal        decimal.Decimal         `json:"credit_total"`
	OpeningBalance     decimal.Decimal         `json:"opening_balance"`
	OutstandingBalance decimal.Decimal         `json:"outstanding_balance"`
	Children           []*GroupBalanceResponse `json:"children,omitempty"`
}

func groupBalanceFromDomain(gb *domain.GroupBalance) *GroupBalanceResponse {
	resp := &GroupBalanceResponse{
		ID:                 gb.ID,
		Name:               gb.Name,
		Type:               string(gb.Type),
		Balance:            gb.Balance,
		DebitTotal:         gb.DebitTotal,
		CreditTotal:        gb.CreditTotal,
		OpeningBalance:     gb.OpeningBalance,
		OutstandingBalance: gb.OutstandingBalance,
	}
	for _, child := range gb.Children {
		resp.Children = append(resp.Children, groupBalanceFromDomain(child))
	}
	return resp
}

// BalanceSheetSectionResponse is one side of the balance sheet.
type BalanceSheetSectionResponse struct {
	Groups []*GroupBalanceResponse `json:"groups"`
	Total  decimal.Decimal         `json:"total"`
}

// BalanceSheetResponse is the full as-of report.
type BalanceSheetResponse struct {
	AsOf        time.Time                   `json:"as_of"`
	Assets      BalanceSheetSectionResponse `json:"assets"`
	Liabilities BalanceSheetSectionResponse `json:"liabilities"`
	Capital     struct {
		Amount decimal.Decimal `json:"amount"`
		Total  decimal.Decimal `json:"total"`
	} `json:"capital"`
	Totals struct {
		TotalAssets                decimal.Decimal `json:"total_assets"`
		TotalLiabilities           decimal.Decimal `json:"total_liabilities"`
		TotalCapital               decimal.Decimal `json:"total_capital"`
		TotalLiabilitiesAndCapital decimal.Decimal `json:"total_liabilities_and_capital"`
		Balance                    decimal.Decimal `json:"balance"`
	} `json:"totals"`
}

// BalanceSheetFromDomain converts a balance sheet to a response.
func BalanceSheetFromDomain(sheet *domain.BalanceSheet) *BalanceSheetResponse {
	resp := &BalanceSheetResponse{AsOf: sheet.AsOf}

	resp.Assets = sectionFromDomain(sheet.Assets)
	resp.Liabilities = sectionFromDomain(sheet.Liabilities)
	resp.Capital.Amount = sheet.Capital.Amount
	resp.Capital.Total = sheet.Capital.Total
	resp.Totals.TotalAssets = sheet.Totals.TotalAssets
	resp.Totals.TotalLiabilities = sheet.Totals.TotalLiabilities
	resp.Totals.TotalCapital = sheet.Totals.TotalCapital
	resp.Totals.TotalLiabilitiesAndCapital = sheet.Totals.TotalLiabilitiesAndCapital
	resp.Totals.Balance = sheet.Totals.Balance

	return resp
}

func sectionFromDomain(section domain.BalanceSheetSection) BalanceSheetSectionResponse {
	resp := BalanceSheetSectionResponse{Total: section.Total}
	for _, g := range section.Groups {
		resp.Groups = append(resp.Groups, groupBalanceFromDomain(g))
	}
	return resp
}

// ReconciliationResultResponse is the comparison for one account.
type ReconciliationResultResponse struct {
	Kind            string          `json:"kind"`
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	LiveBalance     decimal.Decimal `json:"live_balance"`
	ReplayedBalance decimal.Decimal `json:"replayed_balance"`
	Difference      decimal.Decimal `json:"difference"`
}

// ReconciliationReportResponse is the full live-vs-replay comparison.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation report to a response.
func ReconciliationFromUseCase(report *usecase.ReconciliationReport) *ReconciliationReportResponse {
	resp := &ReconciliationReportResponse{
		TotalAccounts:      report.TotalAccounts,
		ReconciledAccounts: report.ReconciledAccounts,
		Discrepancies:      make([]*ReconciliationResultResponse, 0, len(report.Discrepancies)),
		CheckedAt:          report.CheckedAt,
	}

	for _, d := range report.Discrepancies {
		resp.Discrepancies = append(resp.Discrepancies, &ReconciliationResultResponse{
			Kind:            string(d.Ref.Kind),
			ID:              d.Ref.ID,
			Name:            d.Name,
			LiveBalance:     d.LiveBalance,
			ReplayedBalance: d.ReplayedBalance,
			Difference:      d.Difference,
		})
	}

	return resp
}

// SequenceResponse represents a sequence counter value.
type SequenceResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}
