package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewf(t *testing.T) {
	err := Newf(ErrTypeConfig, "duplicate entity name %q", "Person")

	assert.Equal(t, ErrTypeConfig, err.Type)
	assert.Equal(t, `duplicate entity name "Person"`, err.Message)
	assert.NoError(t, err.Cause)
}

func TestWrapf(t *testing.T) {
	originalErr := errors.New("permission denied")
	wrappedErr := Wrapf(originalErr, ErrTypeFileSystem, "failed to write %s", "testMap.map.yaml")

	assert.Equal(t, ErrTypeFileSystem, wrappedErr.Type)
	assert.Equal(t, "failed to write testMap.map.yaml", wrappedErr.Message)
	assert.Equal(t, originalErr, wrappedErr.Unwrap())
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrTypeConfig, "project name is required"),
			expected: "config: project name is required",
		},
		{
			name:     "error with cause",
			err:      Wrap(errors.New("disk full"), ErrTypePersistence, "save failed"),
			expected: "persistence: save failed (caused by: disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	structErr := New(ErrTypeDatabase, "query failed")
	wrapped := fmt.Errorf("demo: %w", structErr)

	assert.True(t, IsType(wrapped, ErrTypeDatabase))
	assert.False(t, IsType(wrapped, ErrTypeConfig))
	assert.False(t, IsType(errors.New("plain"), ErrTypeDatabase))
	assert.Equal(t, ErrTypeDatabase, GetType(wrapped))
	assert.Equal(t, ErrTypeInternal, GetType(errors.New("plain")))
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("duplicate attribute name \"name\"", "entities[Person].attributes")

	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Message, "duplicate attribute name")
	assert.Contains(t, err.Message, "entities[Person].attributes")
	assert.Len(t, err.Suggestions, 2)
}

func TestNewConfigErrorEmptyField(t *testing.T) {
	err := NewConfigError("failed to load", "")

	assert.Equal(t, "failed to load", err.Message)
}

func TestNewPersistenceError(t *testing.T) {
	cause := errors.New("not a directory")
	err := NewPersistenceError("/tmp/out", cause)

	assert.True(t, IsPersistenceError(err))
	assert.False(t, IsConfigurationError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/out")
}
