package apperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", apperr.NewValidation("title is required"), http.StatusBadRequest, `{"error":"title is required","title":"validation error"}`},
		{"not found", apperr.NewNotFound("Blog not found"), http.StatusNotFound, `{"error":"Blog not found"}`},
		{"unauthorized", apperr.NewUnauthorized("No token provided"), http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"echo http error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, `{"error":"nope"}`},
		{"operation", apperr.NewOperation("failed to save blog", errors.New("disk full")), http.StatusInternalServerError, `{"error":"failed to save blog"}`},
		{"plain", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
