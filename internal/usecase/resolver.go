package usecase

import (
	"context"
	"errors"

	"github.com/tradebooks/tradebooks/internal/domain"
)

// RepoAccountResolver implements AccountResolver against the three account
// repositories. Lookup order is fixed: ledger (slug or name), customer
// (name or shop name), vendor (name). The first match wins, mirroring how
// journal lines were matched when the books were kept by hand.
type RepoAccountResolver struct {
	ledgerRepo   LedgerRepository
	customerRepo CustomerRepository
	vendorRepo   VendorRepository
}

// NewRepoAccountResolver creates a new RepoAccountResolver.
func NewRepoAccountResolver(
	ledgerRepo LedgerRepository,
	customerRepo CustomerRepository,
	vendorRepo VendorRepository,
) *RepoAccountResolver {
	return &RepoAccountResolver{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
	}
}

// Resolve maps a free-text account name to a concrete account. A name that
// matches nothing resolves to an unresolved account; only storage failures
// surface as errors.
func (r *RepoAccountResolver) Resolve(ctx context.Context, name string) (domain.ResolvedAccount, error) {
	normalized := domain.NormalizeAccountName(name)
	unresolved := domain.ResolvedAccount{Name: name}

	if normalized == "" {
		return unresolved, nil
	}

	ledger, err := r.ledgerRepo.FindByNameOrSlug(ctx, normalized)
	if err == nil {
		return domain.ResolvedAccount{Kind: domain.KindLedger, ID: ledger.ID, Name: name}, nil
	}
	if !errors.Is(err, domain.ErrLedgerNotFound) {
		return unresolved, err
	}

	customer, err := r.customerRepo.FindByName(ctx, normalized)
	if err == nil {
		return domain.ResolvedAccount{Kind: domain.KindCustomer, ID: customer.ID, Name: name}, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return unresolved, err
	}

	vendor, err := r.vendorRepo.FindByName(ctx, normalized)
	if err == nil {
		return domain.ResolvedAccount{Kind: domain.KindVendor, ID: vendor.ID, Name: name}, nil
	}
	if !errors.Is(err, domain.ErrVendorNotFound) {
		return unresolved, err
	}

	return unresolved, nil
}
