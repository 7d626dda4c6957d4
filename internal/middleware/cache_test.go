package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/config"
)

func newCacheCtx(e *echo.Echo, target string) echo.Context {
    req := httptest.NewRequest(http.MethodGet, target, nil)
    c := e.NewContext(req, httptest.NewRecorder())
    // Echo resolves parameterized requests to the registered pattern; the
    // cache key must still tell the concrete requests apart.
    c.SetPath("/api/foods/:id")
    return c
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache"}
    e := echo.New()

    k1 := cacheKey(cfg, newCacheCtx(e, "/api/foods/1"))
    k2 := cacheKey(cfg, newCacheCtx(e, "/api/foods/2"))
    if k1 == k2 {
        t.Errorf("distinct ids share cache key %s", k1)
    }

    if again := cacheKey(cfg, newCacheCtx(e, "/api/foods/1")); again != k1 {
        t.Errorf("same request hashed to %s then %s", k1, again)
    }

    q1 := cacheKey(cfg, newCacheCtx(e, "/api/foods/1?lang=vi"))
    if q1 == k1 {
        t.Error("query string ignored by cache key")
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{}
    hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    body := []byte(`[{"id":1,"name":"Pho Bo"}]`)

    raw, err := encodePayload(http.StatusOK, hdr, body)
    if err != nil {
        t.Fatalf("encodePayload: %v", err)
    }
    status, gotHdr, gotBody, ok := decodePayload(raw)
    if !ok {
        t.Fatal("decodePayload rejected its own encoding")
    }
    if status != http.StatusOK {
        t.Errorf("status = %d, want 200", status)
    }
    if gotHdr.Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
        t.Errorf("content type = %q", gotHdr.Get(echo.HeaderContentType))
    }
    if string(gotBody) != string(body) {
        t.Errorf("body = %q, want %q", gotBody, body)
    }

    if _, _, _, ok := decodePayload([]byte("short")); ok {
        t.Error("truncated payload accepted")
    }
}
