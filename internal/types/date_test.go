package types

import (
	"testing"
	"time"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	t.Run("empty is no due date", func(t *testing.T) {
		d, err := ParseDueDate("  ")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("date only", func(t *testing.T) {
		d, err := ParseDueDate("2026-03-15")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *d)
	})

	t.Run("rfc3339 is normalized to utc", func(t *testing.T) {
		d, err := ParseDueDate("2026-03-15T01:00:00+02:00")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC), *d)
	})

	t.Run("invalid", func(t *testing.T) {
		d, err := ParseDueDate("next friday")
		assert.Nil(t, d)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "2 January 2026", FormatLongDate(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 December 2025", FormatLongDate(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)))
}
