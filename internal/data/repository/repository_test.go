package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "titles_slug_key"}
	err := wrapWriteError("failed to create title", dup)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "titles_slug_key")

	other := errors.New("connection reset")
	err = wrapWriteError("failed to create title", other)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, other)
}
