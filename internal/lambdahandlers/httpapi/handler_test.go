package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/mrled/stackcalc/internal/repository/memrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandlerWithRepository(memrepo.NewMemoryRepository(), log)
}

func request(method, path, body string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{Body: body}
	req.RequestContext.HTTP.Method = method
	req.RequestContext.HTTP.Path = path
	req.RequestContext.RequestID = "test-request"
	return req
}

func decode[T any](t *testing.T, resp events.APIGatewayV2HTTPResponse) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &v), "body: %s", resp.Body)
	return v
}

func TestHandle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		valid   bool
		message string
	}{
		{"reference expression", `{"expression": "(5+3)*(2+(4-1))"}`, true, "Valid expression."},
		{"empty expression", `{"expression": ""}`, true, "Valid expression."},
		{"unmatched closer", `{"expression": "(5+3))"}`, false, "Invalid expression."},
		{"unmatched opener", `{"expression": "((5+3)"}`, false, "Invalid expression."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()

			resp, err := h.Handle(context.Background(), request(http.MethodPost, "/api/v1/validate", tt.body))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])

			got := decode[ValidateResponse](t, resp)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
			if !tt.valid {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestHandle_Factorial(t *testing.T) {
	tests := []struct {
		body     string
		result   int64
		overflow bool
	}{
		{`{"n": 5}`, 120, false},
		{`{"n": 0}`, 1, false},
		{`{"n": 10}`, 3628800, false},
		{`{"n": 21}`, -4249290049419214848, true},
	}

	for _, tt := range tests {
		h := newTestHandler()

		resp, err := h.Handle(context.Background(), request(http.MethodPost, "/v1/factorial", tt.body))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

		got := decode[FactorialResponse](t, resp)
		assert.Equal(t, tt.result, got.Result, tt.body)
		assert.Equal(t, tt.overflow, got.Overflow, tt.body)
	}
}

func TestHandle_FactorialCheckOverflow(t *testing.T) {
	h := newTestHandler()

	resp, err := h.Handle(context.Background(), request(http.MethodPost, "/v1/factorial", `{"n": 21, "checkOverflow": true}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "overflows int64")
}

func TestHandle_Records(t *testing.T) {
	h := newTestHandler()
	ctx := context.Background()

	_, err := h.Handle(ctx, request(http.MethodPost, "/v1/factorial", `{"n": 5}`))
	require.NoError(t, err)
	_, err = h.Handle(ctx, request(http.MethodPost, "/v1/validate", `{"expression": "()"}`))
	require.NoError(t, err)

	resp, err := h.Handle(ctx, request(http.MethodGet, "/api/v1/records/", ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	records := decode[[]map[string]any](t, resp)
	assert.Len(t, records, 2)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown path", http.MethodPost, "/v1/unknown", "{}", http.StatusNotFound},
		{"validate wrong method", http.MethodGet, "/v1/validate", "", http.StatusMethodNotAllowed},
		{"factorial wrong method", http.MethodPut, "/v1/factorial", "", http.StatusMethodNotAllowed},
		{"records wrong method", http.MethodPost, "/v1/records", "", http.StatusMethodNotAllowed},
		{"validate bad json", http.MethodPost, "/v1/validate", "{", http.StatusBadRequest},
		{"validate missing field", http.MethodPost, "/v1/validate", "{}", http.StatusBadRequest},
		{"factorial missing n", http.MethodPost, "/v1/factorial", "{}", http.StatusBadRequest},
		{"factorial non-integer n", http.MethodPost, "/v1/factorial", `{"n": "five"}`, http.StatusBadRequest},
		{"factorial n above limit", http.MethodPost, "/v1/factorial", `{"n": 2000000000}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()

			resp, err := h.Handle(context.Background(), request(tt.method, tt.path, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode, resp.Body)
			assert.NotEmpty(t, decode[map[string]string](t, resp)["error"])
		})
	}
}

func TestHandle_RawPathFallback(t *testing.T) {
	h := newTestHandler()

	req := events.APIGatewayV2HTTPRequest{RawPath: "/api/v1/validate", Body: `{"expression": "(1)"}`}
	req.RequestContext.HTTP.Method = http.MethodPost

	resp, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
