package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ============================================================================
// WriteJSON / WriteData
// ============================================================================

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteData_WrapsInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, map[string]int{"count": 3})

	var raw map[string]map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.Equal(t, 3, raw["data"]["count"])
}

func TestResponse_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Response{Data: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)

	data, err = json.Marshal(Response{Error: &ErrorResponse{Code: "C", Message: "m"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"data"`)
	assert.NotContains(t, string(data), `"request_id"`)
	assert.NotContains(t, string(data), `"fields"`)
}

// ============================================================================
// WriteError
// ============================================================================

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app not found", apperrors.NotFound("product", "42"), http.StatusNotFound, "NOT_FOUND"},
		{"sentinel not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("get product: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", apperrors.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"unauthorized", apperrors.Unauthorized("missing session"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"unavailable", apperrors.ServiceUnavailable("catalog", fmt.Errorf("dial tcp")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestWriteError_UnknownErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, fmt.Errorf("redis: connection pool exhausted"), testLogger())

	resp := decodeResponse(t, rec)
	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}

func TestWriteError_UnavailableHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, apperrors.ServiceUnavailable("catalog", fmt.Errorf("dial tcp 10.0.0.1")), testLogger())

	resp := decodeResponse(t, rec)
	assert.Equal(t, "catalog is temporarily unavailable", resp.Error.Message)
	assert.NotContains(t, resp.Error.Message, "10.0.0.1")
}

func TestWriteError_ValidationError(t *testing.T) {
	type body struct {
		ProductID int `json:"product_id" validate:"required"`
	}
	err := validator.Validate(body{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/cart/items", nil), err, testLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["product_id"])
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())

	assert.Equal(t, "corr-123", decodeResponse(t, rec).Error.RequestID)
}

func TestWriteError_PrefersRequestScopedLogger(t *testing.T) {
	var scoped, fallback bytes.Buffer
	ctx := logger.NewContext(context.Background(), slog.New(slog.NewJSONHandler(&scoped, nil)))
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)

	WriteError(httptest.NewRecorder(), req, fmt.Errorf("boom"), slog.New(slog.NewJSONHandler(&fallback, nil)))

	assert.Contains(t, scoped.String(), "request failed")
	assert.Empty(t, fallback.String())
}

func TestWriteError_DoesNotLogClientErrors(t *testing.T) {
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(httptest.NewRecorder(), req, apperrors.ErrNotFound, slog.New(slog.NewJSONHandler(&buf, nil)))

	assert.Empty(t, buf.String())
}

// ============================================================================
// ParseID
// ============================================================================

func TestParseID(t *testing.T) {
	tests := []struct {
		param  string
		wantID int
		wantOK bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run("param="+tt.param, func(t *testing.T) {
			rec := httptest.NewRecorder()
			id, ok := ParseID(rec, "product id", tt.param)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				resp := decodeResponse(t, rec)
				assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
				assert.Contains(t, resp.Error.Message, "invalid product id")
			}
		})
	}
}
