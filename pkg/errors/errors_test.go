package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	t.Run("派生副本仍匹配预定义错误", func(t *testing.T) {
		derived := ErrNotFound.With("bookId", 5).Withf("Book with ID %d not found", 5)

		assert.True(t, errors.Is(derived, ErrNotFound))
		assert.False(t, errors.Is(derived, ErrInvalidParams))
		assert.Equal(t, 5, derived.Fields["bookId"])
		assert.Equal(t, "Book with ID 5 not found", derived.Message)
	})

	t.Run("With不修改原错误", func(t *testing.T) {
		_ = ErrInvalidParams.With("field", "pageSize")
		assert.Nil(t, ErrInvalidParams.Fields)
	})

	t.Run("被fmt包装后仍可匹配", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", ErrDatabaseError)
		assert.True(t, errors.Is(err, ErrDatabaseError))
	})
}

func TestAppError_Detail(t *testing.T) {
	assert.Equal(t, "Database error", ErrDatabaseError.Detail())

	wrapped := Wrap(errors.New("no such table: books"), "query books failed")
	assert.Equal(t, "query books failed: no such table: books", wrapped.Detail())
	assert.Equal(t, "[50000] query books failed: no such table: books", wrapped.Error())
	assert.Equal(t, "no such table: books", errors.Unwrap(wrapped).Error())
}

func TestAppError_WithErr(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ErrUnavailable.WithErr(cause).Withf("Redis unavailable")

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Redis unavailable: dial tcp: connection refused", err.Detail())
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err.Code))
	// 预定义错误本身不受影响
	assert.Nil(t, ErrUnavailable.Err)
	assert.Equal(t, "Service unavailable", ErrUnavailable.Message)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeBookNotFound, http.StatusNotFound},
		{ErrCodeRouteNotFound, http.StatusNotFound},
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeBindError, http.StatusBadRequest},
		{ErrCodeISBNDuplicate, http.StatusConflict},
		{ErrCodeBusinessError, http.StatusUnprocessableEntity},
		{ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{12345, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code_%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.Equal(t, "Internal server error: boom", appErr.Detail())
		assert.True(t, errors.Is(appErr, ErrInternal))
	})

	t.Run("链中的AppError被提取", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(ErrCodeISBNDuplicate, "ISBN exists").WithErr(errors.New("dup")))
		appErr := GetAppError(err)
		assert.Equal(t, ErrCodeISBNDuplicate, appErr.Code)
		assert.True(t, IsAppError(err))
		assert.True(t, HasCode(err, ErrCodeISBNDuplicate))
		assert.False(t, HasCode(errors.New("x"), ErrCodeISBNDuplicate))
	})
}
