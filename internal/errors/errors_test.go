package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidationMessage(t *testing.T) {
	err := &ErrValidation{Field: "ticker", Message: "is required"}
	assert.Equal(t, "ticker: is required", err.Error())

	err = &ErrValidation{Field: "date", Message: "is required"}
	assert.Equal(t, "date: is required", err.Error())
}

func TestErrValidationUnwrapsThroughWrapping(t *testing.T) {
	cause := &ErrValidation{Field: "volume", Message: "must be non-zero"}
	wrapped := fmt.Errorf("failed to create staking event: %w", cause)

	var validation *ErrValidation
	require.True(t, errors.As(wrapped, &validation))
	assert.Equal(t, "volume", validation.Field)
}
