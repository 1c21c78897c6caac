package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Behavior(t *testing.T) {
	err := NewValidationError("invalid input").WithCode("VAL001").WithDetail("field", "name").WithComponent("test-component")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "VAL001", err.Code)
	assert.Equal(t, "test-component", err.Component)
	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "invalid input", err.Error())
}

func TestAppError_WithCause_Unwrap(t *testing.T) {
	cause := ErrDocumentMissing
	err := NewStorageError("failed to read catalog.json").WithCause(cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "failed to read catalog.json: document does not exist", err.Error())
}

func TestValidationErrors(t *testing.T) {
	ve := NewValidationErrors()
	assert.Nil(t, ve.ToAppError("missing fields"))

	ve.Add("key", "must be set", "")
	assert.True(t, ve.HasErrors())
	appErr := ve.ToAppError("missing fields")
	assert.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "missing fields", appErr.Message)
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{"validation", NewValidationError("bad"), IsValidation, http.StatusBadRequest},
		{"duplicate", NewDuplicateError("dup"), IsDuplicate, http.StatusBadRequest},
		{"not found", NewNotFoundError("Mock"), IsNotFound, http.StatusNotFound},
		{"not found message", NewNotFoundMessage("Mock no encontrado"), IsNotFound, http.StatusNotFound},
		{"in use", NewInUseError("used"), IsInUse, http.StatusBadRequest},
		{"invalid json", NewInvalidJSONError("json"), IsInvalidJSON, http.StatusBadRequest},
		{"storage", NewStorageError("io"), IsStorage, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.check(tc.err))
			assert.Equal(t, tc.status, HTTPStatus(tc.err))

			wrapped := fmt.Errorf("usecase: %w", tc.err)
			assert.True(t, tc.check(wrapped), "predicate must see through wrapping")
		})
	}

	assert.False(t, IsNotFound(NewValidationError("bad")))
	assert.True(t, IsNotFound(ErrNotFound))
}

func TestHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("boom")))
	assert.False(t, IsClientError(fmt.Errorf("boom")))
	assert.True(t, IsClientError(NewInUseError("used")))
}

func TestWrapError(t *testing.T) {
	original := NewDuplicateError("dup")
	assert.Same(t, original, WrapError(original, "ignored"))

	wrapped := WrapError(fmt.Errorf("disk"), "write failed")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Equal(t, "write failed: disk", wrapped.Error())
}
