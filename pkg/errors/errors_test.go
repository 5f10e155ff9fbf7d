package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Clone(ErrSessionNotFound, "session abc not found"))

	got := FromError(wrapped)
	assert.Equal(t, ErrSessionNotFound.Code, got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "session abc not found", got.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("redis down")

	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "credits must be numeric")

	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "credits must be numeric", clone.Error())
	assert.Nil(t, Clone(nil, "x"))
}

func TestWrapFormatsCause(t *testing.T) {
	err := Wrap(errors.New("boom"), ErrInternal.Code, ErrInternal.Status, "failed to save session")
	assert.Equal(t, "failed to save session: boom", err.Error())
}
