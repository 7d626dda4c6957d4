package handler

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/booking"
)

// menuStub implements booking.Catalog with two dishes.
type menuStub struct{}

func (menuStub) ResolveActivePrice(_ context.Context, foodID int64) (string, int64, error) {
    switch foodID {
    case 1:
        return "Pho Bo", 65000, nil
    case 2:
        return "Banh Mi", 35000, nil
    default:
        return "", 0, booking.ErrFoodNotFound
    }
}

func newBookingHandler() (*BookingHandler, *booking.MemoryStore) {
    store := booking.NewMemoryStore()
    return NewBookingHandler(booking.NewLedger(menuStub{}, store)), store
}

const createBody = `{
  "customerInfo": {"name": "Linh Tran", "phone": "0912345678", "email": "linh@example.com"},
  "booking": {"guests": 4, "dateTime": "2026-09-12T19:00:00Z", "note": "window table"},
  "orders": [{"foodId": 1, "quantity": 2}, {"foodId": 2, "quantity": 1}]
}`

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestBookingCreate(t *testing.T) {
    h, store := newBookingHandler()
    e := echo.New()

    c, rec := postJSON(e, "/api/bookings", createBody)
    if err := h.Create(c); err != nil {
        t.Fatalf("Create: %v", err)
    }
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
    }

    var resp struct {
        ID          string `json:"id"`
        Status      string `json:"status"`
        StatusLabel string `json:"statusLabel"`
        TotalAmount int64  `json:"totalAmount"`
        Orders      []struct {
            Name     string `json:"name"`
            Quantity int    `json:"quantity"`
        } `json:"orders"`
        StatusTimeline []struct {
            Status string `json:"status"`
            Note   string `json:"note"`
        } `json:"statusTimeline"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if !strings.HasPrefix(resp.ID, "BK") {
        t.Errorf("id = %q, want BK prefix", resp.ID)
    }
    if resp.Status != "pending" || resp.StatusLabel != "awaiting confirmation" {
        t.Errorf("status = %q / %q", resp.Status, resp.StatusLabel)
    }
    if resp.TotalAmount != 165000 {
        t.Errorf("total = %d, want 165000", resp.TotalAmount)
    }
    if len(resp.Orders) != 2 || resp.Orders[0].Name != "Pho Bo" {
        t.Errorf("orders = %+v", resp.Orders)
    }
    if len(resp.StatusTimeline) != 1 || resp.StatusTimeline[0].Note != "booking created" {
        t.Errorf("timeline = %+v", resp.StatusTimeline)
    }
    if store.Len() != 1 {
        t.Errorf("store holds %d bookings, want 1", store.Len())
    }
}

func TestBookingCreateRejectsBadInput(t *testing.T) {
    h, store := newBookingHandler()
    e := echo.New()

    cases := []struct {
        name string
        body string
        want string
    }{
        {name: "bad time", body: strings.Replace(createBody, "2026-09-12T19:00:00Z", "next friday", 1), want: "dateTime"},
        {name: "bad phone", body: strings.Replace(createBody, "0912345678", "12345", 1), want: "phone"},
        {name: "unknown food", body: strings.Replace(createBody, `"foodId": 2`, `"foodId": 404`, 1), want: "404"},
        {name: "empty cart", body: strings.Replace(createBody, `[{"foodId": 1, "quantity": 2}, {"foodId": 2, "quantity": 1}]`, `[]`, 1), want: "orders"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := postJSON(e, "/api/bookings", tc.body)
            if err := h.Create(c); err != nil {
                t.Fatalf("Create: %v", err)
            }
            if rec.Code != http.StatusBadRequest {
                t.Errorf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
            }
            if !strings.Contains(rec.Body.String(), tc.want) {
                t.Errorf("body %q missing %q", rec.Body.String(), tc.want)
            }
        })
    }
    if store.Len() != 0 {
        t.Errorf("store holds %d bookings after rejected creates, want 0", store.Len())
    }
}

func TestBookingGetAndUpdateStatus(t *testing.T) {
    h, _ := newBookingHandler()
    e := echo.New()

    c, rec := postJSON(e, "/api/bookings", createBody)
    if err := h.Create(c); err != nil {
        t.Fatalf("Create: %v", err)
    }
    var created struct {
        ID string `json:"id"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }

    // Lookup by code.
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec = httptest.NewRecorder()
    c = e.NewContext(req, rec)
    c.SetParamNames("code")
    c.SetParamValues(created.ID)
    if err := h.Get(c); err != nil {
        t.Fatalf("Get: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("get status = %d", rec.Code)
    }

    // Transition to confirmed.
    req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"confirmed","note":"table 9"}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec = httptest.NewRecorder()
    c = e.NewContext(req, rec)
    c.SetParamNames("code")
    c.SetParamValues(created.ID)
    if err := h.UpdateStatus(c); err != nil {
        t.Fatalf("UpdateStatus: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
    }
    var updated struct {
        Status         string `json:"status"`
        StatusTimeline []struct {
            Note string `json:"note"`
        } `json:"statusTimeline"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if updated.Status != "confirmed" {
        t.Errorf("status = %q, want confirmed", updated.Status)
    }
    if len(updated.StatusTimeline) != 2 || updated.StatusTimeline[1].Note != "table 9" {
        t.Errorf("timeline = %+v", updated.StatusTimeline)
    }
}

func TestBookingGetUnknownCode(t *testing.T) {
    h, _ := newBookingHandler()
    e := echo.New()

    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("code")
    c.SetParamValues("BK00000000")
    if err := h.Get(c); err != nil {
        t.Fatalf("Get: %v", err)
    }
    if rec.Code != http.StatusNotFound {
        t.Errorf("status = %d, want 404", rec.Code)
    }
}

func TestParseBookingTime(t *testing.T) {
    cases := []struct {
        in string
        ok bool
    }{
        {"2026-09-12T19:00:00Z", true},
        {"2026-09-12T19:00:00", true},
        {"2026-09-12T19:00", true},
        {"2026-09-12 19:00:00", true},
        {"12/09/2026", false},
        {"", false},
    }
    for _, tc := range cases {
        if _, ok := parseBookingTime(tc.in); ok != tc.ok {
            t.Errorf("parseBookingTime(%q) ok = %v, want %v", tc.in, ok, tc.ok)
        }
    }
}
