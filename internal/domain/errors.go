package domain

import "errors"

var (
	// Account errors
	ErrLedgerNotFound   = errors.New("ledger not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrVendorNotFound   = errors.New("vendor not found")
	ErrAccountNotFound  = errors.New("account not found")

	// Voucher errors
	ErrVoucherNotFound   = errors.New("voucher not found")
	ErrInvalidVoucher    = errors.New("invalid voucher")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrVoucherInactive   = errors.New("voucher is inactive")
	ErrDuplicateVoucher  = errors.New("voucher number already exists")
	ErrUnknownVoucherType = errors.New("unknown voucher type")

	// Group errors
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupCycle    = errors.New("group hierarchy contains a cycle")

	// Sequence errors
	ErrSequenceNotFound = errors.New("sequence not found")
)
