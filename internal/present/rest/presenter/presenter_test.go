package presenter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edsg/edsg/internal/domain"
)

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	if renderErr := Error(e.NewContext(req, res), err); renderErr != nil {
		t.Fatal(renderErr)
	}
	return res
}

func TestErrorMapsDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.NotFoundError{Resource: "user"}, http.StatusNotFound},
		{"forbidden", domain.PermissionError{Action: "edit request"}, http.StatusForbidden},
		{"validation", domain.ValidationError{Field: "score", Message: "must be between 1 and 5"}, http.StatusBadRequest},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if res := render(t, tt.err); res.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, res.Code)
			}
		})
	}
}

// A database outage is an infrastructure failure, never a 404.
func TestErrorTreatsStoreFailureAsInternal(t *testing.T) {
	outage := errors.Wrap(
		errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
		"user store")

	if res := render(t, outage); res.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", res.Code)
	}
}
