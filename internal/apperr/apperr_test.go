package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("failed to write ranking csv", cause)

	assert.Equal(t, CategoryStorage, err.Category)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to write ranking csv")
}

func TestValidationAndNotFoundStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad input").HTTPStatus)
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("missing").HTTPStatus)
}

func TestToAppErrorPassesThrough(t *testing.T) {
	orig := NewNotFoundError("missing academy")
	wrapped := fmt.Errorf("handler: %w", orig)

	got := ToAppError(wrapped)
	require.NotNil(t, got)
	assert.Same(t, orig, got)
}

func TestToAppErrorWrapsPlainError(t *testing.T) {
	got := ToAppError(errors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, CategoryInternal, got.Category)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
}

func TestToAppErrorNil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}
