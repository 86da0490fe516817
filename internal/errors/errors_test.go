package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	cause := errors.New("disk full")
	err := New(ErrTypeStorage, "save workbook", cause)

	assert.Equal(t, "[STORAGE] save workbook: disk full", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	bare := New(ErrTypeValidation, "no slides", nil)
	assert.Equal(t, "[VALIDATION] no slides", bare.Error())
}

func TestIsType(t *testing.T) {
	err := New(ErrTypeConfig, "template missing", nil)

	assert.True(t, IsType(err, ErrTypeConfig))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeConfig))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsType(wrapped, ErrTypeConfig))
}
