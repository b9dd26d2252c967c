package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromErr(t *testing.T) {
	dbErr := NewError("connection reset").Mark(ErrDatabase)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: NewError("no such product").Mark(ErrNotFound), want: http.StatusNotFound},
		{name: "validation", err: NewError("bad quantity").Mark(ErrValidation), want: http.StatusBadRequest},
		{name: "index out of range", err: NewError("index 4").Mark(ErrIndexOutOfRange), want: http.StatusBadRequest},
		{name: "insufficient stock", err: NewInsufficientStockError("prod_1", 6, 5), want: http.StatusConflict},
		{name: "persistence over database", err: WithError(dbErr).Mark(ErrPersistence), want: http.StatusServiceUnavailable},
		{name: "database", err: dbErr, want: http.StatusInternalServerError},
		{name: "unmarked", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError("prod_sugar", 6, 5)

	assert.True(t, IsInsufficientStock(err))
	assert.False(t, IsValidation(err))

	available, ok := AvailableStock(err)
	require.True(t, ok)
	assert.Equal(t, 5, available)
	assert.Equal(t, "Insufficient stock! Available: 5", errors.FlattenHints(err))

	_, ok = AvailableStock(NewError("other").Mark(ErrValidation))
	assert.False(t, ok)
}

func TestMarksSurviveWrapping(t *testing.T) {
	cause := errors.New("unique violation")
	err := WithError(cause).
		WithHint("Database operation failed").
		Mark(ErrDatabase)
	wrapped := WithError(err).Mark(ErrPersistence)

	assert.True(t, IsDatabase(wrapped))
	assert.True(t, IsPersistence(wrapped))
	assert.True(t, errors.Is(wrapped, cause))
}
