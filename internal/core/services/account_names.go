package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
)

// accountNamer resolves display names. Resolution never blocks a write: any resolver
// failure falls back to the placeholder name.
type accountNamer struct {
	BaseService
	resolver portsrepo.AccountResolver
}

// needsLookup reports whether the chart of accounts decides the name. A client-supplied name
// or internal account id takes the lookup out of the picture.
func needsLookup(explicit string, accountID *string) bool {
	return strings.TrimSpace(explicit) == "" && accountID == nil
}

// pickAccountName applies the naming precedence shared by single and batch writes:
// explicit name, then the resolved chart name when a lookup applies, then the placeholder.
func pickAccountName(accountNumber, explicit string, accountID *string, resolved map[string]string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	if accountID == nil {
		if name := resolved[accountNumber]; name != "" {
			return name
		}
	}
	return domain.PlaceholderAccountName(accountNumber)
}

// name resolves a single account's display name with the same precedence as pickAccountName.
func (n accountNamer) name(ctx context.Context, accountNumber, explicit string, accountID *string) string {
	if !needsLookup(explicit, accountID) {
		return pickAccountName(accountNumber, explicit, accountID, nil)
	}
	if n.resolver != nil {
		account, err := n.resolver.ResolveAccount(ctx, accountNumber, domain.DefaultAccountRegime)
		switch {
		case err == nil:
			return account.AccountName
		case errors.Is(err, apperrors.ErrNotFound):
			n.LogDebug(ctx, "Account not in chart of accounts", slog.String("account_number", accountNumber))
		default:
			n.LogWarn(ctx, err, "Account name resolution failed", slog.String("account_number", accountNumber))
		}
	}
	return domain.PlaceholderAccountName(accountNumber)
}

// names resolves every distinct number in one call. Unknown numbers are absent from the map.
func (n accountNamer) names(ctx context.Context, accountNumbers []string) map[string]string {
	out := make(map[string]string)
	if n.resolver == nil {
		return out
	}

	seen := make(map[string]struct{}, len(accountNumbers))
	distinct := make([]string, 0, len(accountNumbers))
	for _, num := range accountNumbers {
		num = strings.TrimSpace(num)
		if num == "" {
			continue
		}
		if _, ok := seen[num]; ok {
			continue
		}
		seen[num] = struct{}{}
		distinct = append(distinct, num)
	}
	if len(distinct) == 0 {
		return out
	}

	accounts, err := n.resolver.ResolveAccounts(ctx, distinct, domain.DefaultAccountRegime)
	if err != nil {
		n.LogWarn(ctx, err, "Batch account name resolution failed", slog.Int("accounts", len(distinct)))
		return out
	}
	for num, account := range accounts {
		out[num] = account.AccountName
	}
	return out
}
