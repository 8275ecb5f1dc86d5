package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnauthenticated", ErrUnauthenticated},
		{"ErrIngestionInProgress", ErrIngestionInProgress},
		{"ErrProviderTransport", ErrProviderTransport},
		{"ErrProviderTimeout", ErrProviderTimeout},
		{"ErrMalformedPayload", ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that no two sentinels match each other
func TestErrors_Uniqueness(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnauthenticated, ErrIngestionInProgress,
		ErrProviderTransport, ErrProviderTimeout, ErrMalformedPayload,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get article 7: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "get article 7: not found", wrapped.Error())
}

func TestProviderFetchError(t *testing.T) {
	err := &ProviderFetchError{Provider: "guardian", Err: ErrProviderTimeout}

	assert.Equal(t, "provider guardian: provider timeout", err.Error())
	assert.ErrorIs(t, err, ErrProviderTimeout)
}

func TestIngestionError(t *testing.T) {
	t.Run("single failure", func(t *testing.T) {
		err := &IngestionError{Failures: []*ProviderFetchError{
			{Provider: "newsapi", Err: ErrProviderTransport},
		}}

		assert.Equal(t, "ingestion failed at provider newsapi: provider transport failure", err.Error())
		assert.Equal(t, "newsapi", err.FirstProvider())
	})

	t.Run("several failures", func(t *testing.T) {
		err := &IngestionError{Failures: []*ProviderFetchError{
			{Provider: "guardian", Err: ErrProviderTimeout},
			{Provider: "nytimes", Err: ErrMalformedPayload},
		}}

		assert.Contains(t, err.Error(), "provider guardian")
		assert.Contains(t, err.Error(), "(and 1 more)")
		assert.ErrorIs(t, err, ErrProviderTimeout)
		assert.ErrorIs(t, err, ErrMalformedPayload)

		var fetchErr *ProviderFetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "guardian", fetchErr.Provider)
	})

	t.Run("no failures", func(t *testing.T) {
		err := &IngestionError{}
		assert.Equal(t, "ingestion failed", err.Error())
		assert.Empty(t, err.FirstProvider())
	})
}
