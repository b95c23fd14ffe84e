package repositories

import (
	"context"

	"github.com/SscSPs/opening_balances/internal/core/domain"
)

// AccountResolver looks up canonical chart-of-accounts entries.
// An unknown account number is not an error for ResolveAccounts: it is simply absent from the map.
type AccountResolver interface {
	// ResolveAccount returns apperrors.ErrNotFound when the number is unknown in the regime.
	ResolveAccount(ctx context.Context, accountNumber, regimeCode string) (*domain.ChartAccount, error)

	// ResolveAccounts resolves many numbers in one call, keyed by account number.
	ResolveAccounts(ctx context.Context, accountNumbers []string, regimeCode string) (map[string]domain.ChartAccount, error)
}
