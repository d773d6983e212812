package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedctx "github.com/smartbridge/smartbridge/core/shared/context"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

func TestLocalRateLimiter(t *testing.T) {
	limiter := NewLocalRateLimiter()
	ctx := context.Background()

	for range 3 {
		ok, err := limiter.Allow(ctx, "a", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := limiter.Allow(ctx, "a", 3, time.Hour)
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "b", 3, time.Hour)
	assert.True(t, ok, "keys are limited independently")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	handler := RateLimitByIP(failingLimiter{}, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = sharedctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(sharedctx.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(sharedctx.RequestIDHeader, "fixed")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "fixed", seen)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"max=3"`
	}

	var p payload
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"abc"}`)), &p))
	assert.Equal(t, "abc", p.Name)

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`)), &p)
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, sharederrors.ErrCodeInvalidInput, appErr.Code)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"abcd"}`)), &p)
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, http.StatusBadRequest, fieldErr.Status)
	require.Len(t, fieldErr.Details, 1)
	assert.Equal(t, "name", fieldErr.Details[0].Field)
	assert.Equal(t, "max", fieldErr.Details[0].Tag)
}
