package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// Balances are stored as an amount column plus a side column. Amounts are
// selected with a ::text cast and parsed here so numeric precision survives
// the round trip.
func scanBalance(amount, side string) (domain.SignedBalance, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.SignedBalance{}, fmt.Errorf("parse balance amount %q: %w", amount, err)
	}

	s := domain.Side(side)
	if !s.Valid() {
		return domain.SignedBalance{}, fmt.Errorf("unknown balance side %q", side)
	}

	return domain.NewBalance(value, s), nil
}
