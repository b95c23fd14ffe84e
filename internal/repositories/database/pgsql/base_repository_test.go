package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/opening_balances/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_opening_balances_key"})
	assert.True(t, isUniqueViolation(wrapped))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, notFoundOr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), apperrors.ErrNotFound)

	other := errors.New("conn reset")
	assert.Same(t, other, notFoundOr(other))
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `11\%`, likeEscaper.Replace("11%"))
	assert.Equal(t, `1\_1`, likeEscaper.Replace("1_1"))
	assert.Equal(t, `a\\b`, likeEscaper.Replace(`a\b`))
	assert.Equal(t, "131", likeEscaper.Replace("131"))
}
