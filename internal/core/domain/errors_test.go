package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidName", ErrInvalidName},
		{"ErrMissingField", ErrMissingField},
		{"ErrStorageReadFailed", ErrStorageReadFailed},
		{"ErrStorageWriteFailed", ErrStorageWriteFailed},
		{"ErrUninitializedStore", ErrUninitializedStore},
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidSetting", ErrInvalidSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrInvalidName,
		ErrMissingField,
		ErrStorageReadFailed,
		ErrStorageWriteFailed,
		ErrUninitializedStore,
		ErrNotFound,
		ErrInvalidSetting,
	}

	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: writing doc.json", ErrStorageWriteFailed)

	assert.True(t, errors.Is(wrapped, ErrStorageWriteFailed))
	assert.False(t, errors.Is(wrapped, ErrMissingField))
	assert.Contains(t, wrapped.Error(), "storage write failed")
}
