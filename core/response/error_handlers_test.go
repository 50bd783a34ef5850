package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juan-009/authguard/core/handler"
	"github.com/juan-009/authguard/core/response"
	"github.com/juan-009/authguard/core/router"
)

// testContext is a simple test implementation of handler.Context
type testContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (tc *testContext) Deadline() (deadline time.Time, ok bool) {
	return tc.r.Context().Deadline()
}

func (tc *testContext) Done() <-chan struct{} {
	return tc.r.Context().Done()
}

func (tc *testContext) Err() error {
	return tc.r.Context().Err()
}

func (tc *testContext) Value(key any) any {
	return tc.r.Context().Value(key)
}

func (tc *testContext) SetValue(key, val any) {
	// Not needed for tests
}

func (tc *testContext) Request() *http.Request {
	return tc.r
}

func (tc *testContext) ResponseWriter() http.ResponseWriter {
	return tc.w
}

func (tc *testContext) Param(key string) string {
	// Not needed for tests
	return ""
}

// customStatusError is a test error that implements StatusCode() int
type customStatusError struct {
	message string
	status  int
}

func (e customStatusError) Error() string {
	return e.message
}

func (e customStatusError) StatusCode() int {
	return e.status
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		error          error
		expectedStatus int
		expectedJSON   map[string]any
		checkDetails   bool
	}{
		{
			name:           "regular error returns 500",
			error:          errors.New("internal error"),
			expectedStatus: http.StatusInternalServerError,
			expectedJSON: map[string]any{
				"code":    "internal_server_error",
				"message": "Internal Server Error",
				"details": map[string]any{
					"cause": "internal error",
				},
			},
			checkDetails: true,
		},
		{
			name:           "HTTPError with structure",
			error:          response.ErrUnauthorized.WithMessage("invalid token"),
			expectedStatus: http.StatusUnauthorized,
			expectedJSON: map[string]any{
				"code":    "unauthorized",
				"message": "invalid token",
			},
		},
		{
			name: "HTTPError with details",
			error: response.ErrUnprocessableEntity.WithMessage("validation failed").WithDetails(map[string]any{
				"field":  "email",
				"reason": "invalid format",
			}),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedJSON: map[string]any{
				"code":    "unprocessable_entity",
				"message": "validation failed",
				"details": map[string]any{
					"field":  "email",
					"reason": "invalid format",
				},
			},
			checkDetails: true,
		},
		{
			name:           "HTTPError with error cause in details",
			error:          response.ErrBadRequest.WithMessage("request failed").WithError(errors.New("underlying cause")),
			expectedStatus: http.StatusBadRequest,
			expectedJSON: map[string]any{
				"code":    "bad_request",
				"message": "request failed",
				"details": map[string]any{
					"cause": "underlying cause",
				},
			},
			checkDetails: true,
		},
		{
			name:           "custom error with StatusCode interface",
			error:          customStatusError{message: "custom error", status: http.StatusTeapot},
			expectedStatus: http.StatusTeapot,
			expectedJSON: map[string]any{
				"code":    "teapot",
				"message": "I'm a teapot",
				"details": map[string]any{
					"cause": "custom error",
				},
			},
			checkDetails: true,
		},
		{
			name:           "HTTPError takes precedence",
			error:          response.ErrForbidden.WithMessage("no access"),
			expectedStatus: http.StatusForbidden,
			expectedJSON: map[string]any{
				"code":    "forbidden",
				"message": "no access",
			},
		},
		{
			name:           "HTTPError without custom message uses default",
			error:          response.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedJSON: map[string]any{
				"code":    "not_found",
				"message": "Not Found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a test context
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			testCtx := &testContext{w: w, r: req}

			// Call JSONErrorHandler
			response.JSONErrorHandler(testCtx, tt.error)

			// Check response
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			// Parse JSON response
			var result map[string]any
			err := json.NewDecoder(w.Body).Decode(&result)
			require.NoError(t, err)

			// Check JSON structure
			if tt.checkDetails {
				// Check all fields including details
				assert.Equal(t, tt.expectedJSON, result)
			} else {
				// Check fields except details (if present)
				for key, expectedValue := range tt.expectedJSON {
					if key != "details" {
						assert.Equal(t, expectedValue, result[key], "field %s mismatch", key)
					}
				}
			}
		})
	}
}

func TestJSONErrorHandlerWithRouter(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](
		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
	)

	r.Get("/error", func(ctx *router.Context) handler.Response {
		return response.Error(
			response.ErrBadRequest.WithMessage("invalid input").WithDetails(map[string]any{
				"field":      "username",
				"min_length": 3,
			}),
		)
	})

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result map[string]any
	err := json.NewDecoder(w.Body).Decode(&result)
	require.NoError(t, err)

	assert.Equal(t, "bad_request", result["code"])
	assert.Equal(t, "invalid input", result["message"])
	assert.NotNil(t, result["details"])

	details := result["details"].(map[string]any)
	assert.Equal(t, "username", details["field"])
	assert.Equal(t, float64(3), details["min_length"]) // JSON numbers decode as float64
}
