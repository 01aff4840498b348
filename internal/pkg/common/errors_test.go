package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewModelInvocationError("model call failed", cause)

	assert.Equal(t, "model call failed: connection refused", err.Error())
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeSchemaViolation, ErrorCode(NewSchemaViolationError("title")))
	assert.Equal(t, ErrCodeNoImageInResponse, ErrorCode(NewNoImageInResponseError()))
	assert.Equal(t, "", ErrorCode(errors.New("plain error")))
	assert.Equal(t, "", ErrorCode(nil))

	// 包裝後仍可取得錯誤代碼
	wrapped := fmt.Errorf("handler: %w", NewPersistenceError("insert failed", nil))
	assert.Equal(t, ErrCodePersistence, ErrorCode(wrapped))
}

func TestSchemaViolationMessage(t *testing.T) {
	err := NewSchemaViolationError("nutrition.kcal")
	require.Contains(t, err.Error(), "missing required key: nutrition.kcal")
}
