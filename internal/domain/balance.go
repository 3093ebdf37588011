package domain

import (
	"github.com/shopspring/decimal"
)

// Side is the accounting side of a balance or delta.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == Debit || s == Credit
}

// Opposite returns the other accounting side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// SignedBalance is the canonical net position of an account: a non-negative
// magnitude plus the side it rests on. A zero-magnitude balance is
// sign-agnostic to callers but always carries a valid side.
type SignedBalance struct {
	Amount decimal.Decimal
	Side   Side
}

// ZeroBalance returns an empty balance resting on the debit side, the
// default resting side used everywhere in the engine.
func ZeroBalance() SignedBalance {
	return SignedBalance{Amount: decimal.Zero, Side: Debit}
}

// NewBalance builds a SignedBalance, normalizing a zero magnitude to the
// debit resting side.
func NewBalance(amount decimal.Decimal, side Side) SignedBalance {
	if amount.IsZero() {
		return ZeroBalance()
	}
	return SignedBalance{Amount: amount, Side: side}
}

// Combine folds a debit- or credit-side delta into the balance. Same-side
// deltas add magnitudes. Opposing deltas subtract, and the result keeps the
// side of whichever operand was larger. An exact cancellation rests on the
// debit side; the mutation and replay paths both rely on this default so the
// two never disagree on the sign of a zeroed account.
func (b SignedBalance) Combine(delta SignedBalance) SignedBalance {
	if delta.Side == b.Side {
		return SignedBalance{Amount: b.Amount.Add(delta.Amount), Side: b.Side}
	}

	diff := b.Amount.Sub(delta.Amount)
	switch diff.Sign() {
	case 1:
		return SignedBalance{Amount: diff, Side: b.Side}
	case -1:
		return SignedBalance{Amount: diff.Neg(), Side: delta.Side}
	default:
		return ZeroBalance()
	}
}

// Signed folds the balance into a single signed number: positive for debit,
// negative for credit.
func (b SignedBalance) Signed() decimal.Decimal {
	if b.Side == Credit {
		return b.Amount.Neg()
	}
	return b.Amount
}

// FromSigned is the inverse of Signed. Zero and positive values rest on the
// debit side.
func FromSigned(x decimal.Decimal) SignedBalance {
	if x.Sign() < 0 {
		return SignedBalance{Amount: x.Neg(), Side: Credit}
	}
	return SignedBalance{Amount: x, Side: Debit}
}

// IsZero reports whether the balance has no magnitude.
func (b SignedBalance) IsZero() bool {
	return b.Amount.IsZero()
}

// Equal reports whether two balances have the same magnitude and side.
// Zero balances compare equal regardless of side.
func (b SignedBalance) Equal(other SignedBalance) bool {
	if b.Amount.IsZero() && other.Amount.IsZero() {
		return true
	}
	return b.Side == other.Side && b.Amount.Equal(other.Amount)
}

// DebitCredit accumulates raw debit and credit totals for one account name
// during replay.
type DebitCredit struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// Net returns debit minus credit.
func (dc DebitCredit) Net() decimal.Decimal {
	return dc.DebitTotal.Sub(dc.CreditTotal)
}
