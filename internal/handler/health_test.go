package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
)

func TestHealth(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
    rec := httptest.NewRecorder()

    if err := Health(e.NewContext(req, rec)); err != nil {
        t.Fatalf("Health: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Errorf("status = %d, want 200", rec.Code)
    }
    if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
        t.Errorf("body = %s", rec.Body.String())
    }
}
