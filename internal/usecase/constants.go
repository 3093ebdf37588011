package usecase

import "time"

const (
	// VoucherSequence is the counter vouchers draw their numbers from.
	VoucherSequence = "voucher"

	// BalanceSheetCacheTTL bounds staleness of cached balance sheets. The
	// replay path is pull/batch, so a short TTL is enough.
	BalanceSheetCacheTTL = 30 * time.Second

	// balanceSheetCachePrefix namespaces cached reports by as-of date.
	balanceSheetCachePrefix = "balancesheet:"
)
