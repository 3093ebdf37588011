package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// PartyRequest is one counterparty line of a payment or receipt voucher.
type PartyRequest struct {
	PartyID string          `json:"party_id"`
	Kind    string          `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
}

// JournalLineRequest is one free-text line of a journal or contra voucher.
type JournalLineRequest struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// PostVoucherRequest is the payload for posting a voucher.
type PostVoucherRequest struct {
	Type      string               `json:"type"`
	Date      *time.Time           `json:"date,omitempty"`
	LedgerID  string               `json:"ledger_id,omitempty"`
	Parties   []PartyRequest       `json:"parties,omitempty"`
	Entries   []JournalLineRequest `json:"entries,omitempty"`
	Narration string               `json:"narration,omitempty"`
}

// ToDomain converts the request to a domain voucher.
func (r *PostVoucherRequest) ToDomain() *domain.Voucher {
	voucher := &domain.Voucher{
		Type:      domain.VoucherType(r.Type),
		LedgerID:  r.LedgerID,
		Narration: r.Narration,
	}

	if r.Date != nil {
		voucher.Date = *r.Date
	}

	for _, p := range r.Parties {
		voucher.Parties = append(voucher.Parties, domain.Party{
			PartyID: p.PartyID,
			Kind:    domain.AccountKind(p.Kind),
			Amount:  p.Amount,
		})
	}

	for _, e := range r.Entries {
		voucher.Entries = append(voucher.Entries, domain.JournalLine{
			Account: e.Account,
			Debit:   e.Debit,
			Credit:  e.Credit,
		})
	}

	return voucher
}
