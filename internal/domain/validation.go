package domain

import (
	"fmt"
	"strings"
)

// Validate checks the voucher's shape before anything is mutated. A failure
// here rejects the whole posting; the balance paths never see an invalid
// voucher.
func (v *Voucher) Validate() error {
	if !v.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownVoucherType, v.Type)
	}

	if v.Type.PartyBased() {
		return v.validatePartyBased()
	}
	return v.validateJournal()
}

func (v *Voucher) validatePartyBased() error {
	if len(v.Entries) > 0 {
		return fmt.Errorf("%w: %s voucher must not carry journal entries", ErrInvalidVoucher, v.Type)
	}
	if strings.TrimSpace(v.LedgerID) == "" {
		return fmt.Errorf("%w: %s voucher requires a cash/bank ledger", ErrInvalidVoucher, v.Type)
	}
	if len(v.Parties) == 0 {
		return fmt.Errorf("%w: %s voucher requires at least one party", ErrInvalidVoucher, v.Type)
	}

	for i, p := range v.Parties {
		if strings.TrimSpace(p.PartyID) == "" {
			return fmt.Errorf("%w: party %d missing id", ErrInvalidVoucher, i)
		}
		if !p.Kind.Valid() {
			return fmt.Errorf("%w: party %d has unknown kind %q", ErrInvalidVoucher, i, p.Kind)
		}
		if p.Amount.IsNegative() {
			return fmt.Errorf("%w: party %d", ErrInvalidAmount, i)
		}
	}

	return nil
}

func (v *Voucher) validateJournal() error {
	if len(v.Parties) > 0 || v.LedgerID != "" {
		return fmt.Errorf("%w: %s voucher must not carry parties", ErrInvalidVoucher, v.Type)
	}
	if len(v.Entries) == 0 {
		return fmt.Errorf("%w: %s voucher requires at least one entry", ErrInvalidVoucher, v.Type)
	}

	for i, e := range v.Entries {
		if strings.TrimSpace(e.Account) == "" {
			return fmt.Errorf("%w: entry %d missing account name", ErrInvalidVoucher, i)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("%w: entry %d", ErrInvalidAmount, i)
		}
	}

	return nil
}

// NormalizeAccountName is the canonical form journal account names are
// compared under: trimmed and lowercased, to tolerate free-text entry.
func NormalizeAccountName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
