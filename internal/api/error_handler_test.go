package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, errorEnvelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec, body
}

func TestErrorHandlerKindMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", domain.NewValidation("validation error", "name is required"), http.StatusBadRequest, "validation error"},
		{"unauthorized", domain.NewUnauthorized("invalid username or password"), http.StatusUnauthorized, "invalid username or password"},
		{"not found", domain.NewNotFound("product not found"), http.StatusNotFound, "product not found"},
		{"conflict", domain.NewConflict("username is already taken"), http.StatusConflict, "username is already taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleError(t, tt.err)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMsg)
			}
		})
	}
}

func TestErrorHandlerValidationDetails(t *testing.T) {
	_, body := handleError(t, domain.NewValidation("validation error", "name is required", "quantity must be 0 or greater"))
	if len(body.Details) != 2 {
		t.Errorf("details = %v, want 2 entries", body.Details)
	}
}

func TestErrorHandlerEchoErrorsPassThrough(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusTooManyRequests, "too many requests"))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
	if body.Message != "too many requests" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestErrorHandlerHidesUnexpectedErrors(t *testing.T) {
	rec, body := handleError(t, errors.New("dial tcp 10.0.0.5:27017: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if body.Message != "an unexpected error occurred" {
		t.Errorf("message = %q", body.Message)
	}
}
