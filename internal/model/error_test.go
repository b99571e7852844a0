package model

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsValidationError(t *testing.T) {
	notFound := &ValidationError{Code: "NOT_FOUND_ERROR", Message: "Pet not found", Param: "petId"}

	found, ok := AsValidationError(fmt.Errorf("loading pet: %w", notFound))
	require.True(t, ok)
	assert.Same(t, notFound, found)
	assert.Equal(t, "Pet not found", found.Error())

	found, ok = AsValidationError(io.EOF)
	assert.False(t, ok)
	assert.Nil(t, found)
}
