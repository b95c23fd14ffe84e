package services

import (
	"context"
	"errors"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/SscSPs/opening_balances/internal/core/domain"
	portsrepo "github.com/SscSPs/opening_balances/internal/core/ports/repositories"
)

// batchItemFunc applies item i using the savepoint-scoped repositories. It returns the item
// outcome, which must carry the item's identifying fields even on failure. Rule violations are
// returned as apperrors.ErrItemFailed; any other error aborts the whole batch.
type batchItemFunc func(ctx context.Context, repos portsrepo.TxRepositories, i int) (domain.BatchItemResult, error)

// runBatchItems applies count items in input order, each inside its own savepoint, so a failed
// item leaves no rows behind. In FailFast mode the first item failure is returned and the caller's
// transaction rolls back; in ContinueOnError mode it is recorded and processing continues.
func runBatchItems(
	ctx context.Context,
	repos portsrepo.TxRepositories,
	mode domain.BatchMode,
	result *domain.BatchResult,
	count int,
	apply batchItemFunc,
) error {
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var outcome domain.BatchItemResult
		err := repos.Savepoint(ctx, func(ctx context.Context, sp portsrepo.TxRepositories) error {
			var applyErr error
			outcome, applyErr = apply(ctx, sp, i)
			return applyErr
		})
		outcome.Index = i
		if err == nil {
			result.Record(outcome)
			continue
		}
		if !errors.Is(err, apperrors.ErrItemFailed) {
			return err
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithDetail("index", i)
		}
		if mode == domain.FailFast {
			return err
		}

		outcome.ID = ""
		outcome.Status = domain.ItemFailed
		outcome.Error = apperrors.MessageOf(err)
		result.Record(outcome)
		if _, ok := apperrors.DetailsOf(err)["validationErrors"]; ok {
			result.Errors[len(result.Errors)-1].Type = domain.ValidationErrorSumMismatch
		}
	}
	return nil
}

func newBatchResult(total int) *domain.BatchResult {
	return &domain.BatchResult{
		Success: true,
		Total:   total,
		Results: make([]domain.BatchItemResult, 0, total),
	}
}

func parseBatchMode(mode string) (domain.BatchMode, error) {
	m, err := domain.ParseBatchMode(mode)
	if err != nil {
		return "", apperrors.NewBadRequest(err.Error()).WithDetail("mode", mode)
	}
	return m, nil
}
