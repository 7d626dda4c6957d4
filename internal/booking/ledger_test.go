package booking

import (
    "context"
    "errors"
    "regexp"
    "testing"
    "time"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// fakeCatalog serves a fixed menu from memory.
type fakeCatalog struct {
    items map[int64]struct {
        name  string
        price int64
    }
    calls int
}

func newFakeCatalog() *fakeCatalog {
    return &fakeCatalog{items: map[int64]struct {
        name  string
        price int64
    }{
        1: {"Pho Bo", 65000},
        2: {"Banh Mi", 35000},
        3: {"Bun Cha", 55000},
    }}
}

func (c *fakeCatalog) ResolveActivePrice(_ context.Context, foodID int64) (string, int64, error) {
    c.calls++
    item, ok := c.items[foodID]
    if !ok {
        return "", 0, ErrFoodNotFound
    }
    return item.name, item.price, nil
}

func validRequest() *CreateRequest {
    return &CreateRequest{
        Customer: CustomerInfo{Name: "Linh Tran", Phone: "0912345678", Email: "linh@example.com"},
        Details:  Details{Guests: 4, Time: time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)},
        Orders:   []OrderRequest{{FoodID: 1, Quantity: 2}, {FoodID: 2, Quantity: 1}},
    }
}

func TestCreateBooking(t *testing.T) {
    catalog := newFakeCatalog()
    store := NewMemoryStore()
    ledger := NewLedger(catalog, store)

    b, err := ledger.CreateBooking(context.Background(), validRequest())
    if err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }
    if !regexp.MustCompile(`^BK[0-9A-F]{8}$`).MatchString(b.Code) {
        t.Errorf("code %q does not match BK + 8 uppercase hex chars", b.Code)
    }
    if b.Status != model.StatusPending {
        t.Errorf("status = %q, want %q", b.Status, model.StatusPending)
    }
    if want := int64(2*65000 + 35000); b.TotalAmount != want {
        t.Errorf("total = %d, want %d", b.TotalAmount, want)
    }
    if len(b.History) != 1 {
        t.Fatalf("history has %d entries, want 1", len(b.History))
    }
    if b.History[0].Label != "awaiting confirmation" {
        t.Errorf("initial label = %q, want %q", b.History[0].Label, "awaiting confirmation")
    }
    if len(b.Lines) != 2 {
        t.Fatalf("lines = %d, want 2", len(b.Lines))
    }
    if b.Lines[0].FoodName != "Pho Bo" || b.Lines[0].Price != 65000 || b.Lines[0].Quantity != 2 {
        t.Errorf("line 0 = %+v, want Pho Bo x2 at 65000", b.Lines[0])
    }
    if store.Len() != 1 {
        t.Errorf("store holds %d bookings, want 1", store.Len())
    }
}

func TestCreateBookingAggregatesDuplicates(t *testing.T) {
    catalog := newFakeCatalog()
    ledger := NewLedger(catalog, NewMemoryStore())

    req := validRequest()
    req.Orders = []OrderRequest{
        {FoodID: 2, Quantity: 1},
        {FoodID: 1, Quantity: 2},
        {FoodID: 2, Quantity: 3},
        {FoodID: 1}, // zero quantity defaults to 1
    }
    b, err := ledger.CreateBooking(context.Background(), req)
    if err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }
    if len(b.Lines) != 2 {
        t.Fatalf("lines = %d, want 2 after aggregation", len(b.Lines))
    }
    // First-seen order preserved: food 2 before food 1.
    if got := *b.Lines[0].FoodID; got != 2 {
        t.Errorf("first line food = %d, want 2", got)
    }
    if b.Lines[0].Quantity != 4 {
        t.Errorf("food 2 quantity = %d, want 4", b.Lines[0].Quantity)
    }
    if b.Lines[1].Quantity != 3 {
        t.Errorf("food 1 quantity = %d, want 3", b.Lines[1].Quantity)
    }
    if catalog.calls != 2 {
        t.Errorf("catalog resolved %d times, want 2 (once per distinct food)", catalog.calls)
    }
}

func TestCreateBookingUnknownFoodPersistsNothing(t *testing.T) {
    store := NewMemoryStore()
    ledger := NewLedger(newFakeCatalog(), store)

    req := validRequest()
    req.Orders = append(req.Orders, OrderRequest{FoodID: 99, Quantity: 1})

    _, err := ledger.CreateBooking(context.Background(), req)
    ve, ok := AsValidation(err)
    if !ok {
        t.Fatalf("err = %v, want ValidationError", err)
    }
    if ve.Field != "orders" {
        t.Errorf("field = %q, want orders", ve.Field)
    }
    if store.Len() != 0 {
        t.Errorf("store holds %d bookings after failed create, want 0", store.Len())
    }
}

func TestCreateBookingSnapshotsPrices(t *testing.T) {
    catalog := newFakeCatalog()
    store := NewMemoryStore()
    ledger := NewLedger(catalog, store)

    b, err := ledger.CreateBooking(context.Background(), validRequest())
    if err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }
    oldTotal := b.TotalAmount

    // Reprice the menu after the booking exists.
    catalog.items[1] = struct {
        name  string
        price int64
    }{"Pho Bo Special", 99000}

    got, err := ledger.GetBooking(context.Background(), b.Code)
    if err != nil {
        t.Fatalf("GetBooking: %v", err)
    }
    if got.TotalAmount != oldTotal {
        t.Errorf("total changed from %d to %d after menu edit", oldTotal, got.TotalAmount)
    }
    if got.Lines[0].FoodName != "Pho Bo" || got.Lines[0].Price != 65000 {
        t.Errorf("snapshot line mutated: %+v", got.Lines[0])
    }
}

func TestTransitionStatus(t *testing.T) {
    ledger := NewLedger(newFakeCatalog(), NewMemoryStore())
    b, err := ledger.CreateBooking(context.Background(), validRequest())
    if err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }

    updated, err := ledger.TransitionStatus(context.Background(), b.Code, model.StatusConfirmed, "table 12")
    if err != nil {
        t.Fatalf("TransitionStatus: %v", err)
    }
    if updated.Status != model.StatusConfirmed {
        t.Errorf("status = %q, want confirmed", updated.Status)
    }
    if len(updated.History) != 2 {
        t.Fatalf("history = %d entries, want 2", len(updated.History))
    }
    if updated.History[1].Note != "table 12" {
        t.Errorf("note = %q, want %q", updated.History[1].Note, "table 12")
    }

    // Any state is reachable from any other, cancelled included.
    updated, err = ledger.TransitionStatus(context.Background(), b.Code, model.StatusCancelled, "")
    if err != nil {
        t.Fatalf("TransitionStatus to cancelled: %v", err)
    }
    if got := updated.History[2].Note; got != "status updated to cancelled" {
        t.Errorf("default note = %q", got)
    }
    if updated.History[0].Status != model.StatusPending {
        t.Errorf("timeline head rewritten: %+v", updated.History[0])
    }
}

func TestTransitionStatusErrors(t *testing.T) {
    ledger := NewLedger(newFakeCatalog(), NewMemoryStore())

    if _, err := ledger.TransitionStatus(context.Background(), "BKDEADBEEF", "shipped", ""); err == nil {
        t.Error("unknown status accepted")
    } else if _, ok := AsValidation(err); !ok {
        t.Errorf("err = %v, want ValidationError", err)
    }

    _, err := ledger.TransitionStatus(context.Background(), "BKDEADBEEF", model.StatusConfirmed, "")
    if !errors.Is(err, ErrBookingNotFound) {
        t.Errorf("err = %v, want ErrBookingNotFound", err)
    }
}

func TestDeleteBooking(t *testing.T) {
    store := NewMemoryStore()
    ledger := NewLedger(newFakeCatalog(), store)
    b, err := ledger.CreateBooking(context.Background(), validRequest())
    if err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }

    if err := ledger.DeleteBooking(context.Background(), b.Code); err != nil {
        t.Fatalf("DeleteBooking: %v", err)
    }
    if store.Len() != 0 {
        t.Errorf("store holds %d bookings after delete, want 0", store.Len())
    }
    if err := ledger.DeleteBooking(context.Background(), b.Code); !errors.Is(err, ErrBookingNotFound) {
        t.Errorf("second delete err = %v, want ErrBookingNotFound", err)
    }
}

func TestListBookingsNewestFirst(t *testing.T) {
    ledger := NewLedger(newFakeCatalog(), NewMemoryStore())

    var codes []string
    for i := 0; i < 3; i++ {
        b, err := ledger.CreateBooking(context.Background(), validRequest())
        if err != nil {
            t.Fatalf("CreateBooking #%d: %v", i, err)
        }
        codes = append(codes, b.Code)
    }

    all, err := ledger.ListBookings(context.Background())
    if err != nil {
        t.Fatalf("ListBookings: %v", err)
    }
    if len(all) != 3 {
        t.Fatalf("list = %d bookings, want 3", len(all))
    }
    for i, b := range all {
        if want := codes[len(codes)-1-i]; b.Code != want {
            t.Errorf("list[%d] = %s, want %s", i, b.Code, want)
        }
    }
}

// collidingStore rejects the first `collisions` inserts with ErrCodeTaken and
// records the code offered on every attempt.
type collidingStore struct {
    *MemoryStore
    collisions int
    codes      []string
}

func (s *collidingStore) Insert(ctx context.Context, b *model.Booking) error {
    s.codes = append(s.codes, b.Code)
    if len(s.codes) <= s.collisions {
        return ErrCodeTaken
    }
    return s.MemoryStore.Insert(ctx, b)
}

func TestCreateBookingRetriesOnCodeCollision(t *testing.T) {
    store := &collidingStore{MemoryStore: NewMemoryStore(), collisions: 2}
    ledger := NewLedger(newFakeCatalog(), store)

    b, err := ledger.CreateBooking(context.Background(), validRequest())
    if err != nil {
        t.Fatalf("CreateBooking: %v", err)
    }
    if len(store.codes) != 3 {
        t.Fatalf("insert attempted %d times, want 3", len(store.codes))
    }
    // Every attempt must carry a fresh code, and the stored booking the last one.
    seen := make(map[string]bool)
    for _, code := range store.codes {
        if seen[code] {
            t.Errorf("code %s reused across attempts", code)
        }
        seen[code] = true
    }
    if b.Code != store.codes[2] {
        t.Errorf("booking kept code %s, want the last attempt %s", b.Code, store.codes[2])
    }
    if store.Len() != 1 {
        t.Errorf("store holds %d bookings, want 1", store.Len())
    }
}

func TestCreateBookingGivesUpAfterThreeCollisions(t *testing.T) {
    store := &collidingStore{MemoryStore: NewMemoryStore(), collisions: 3}
    ledger := NewLedger(newFakeCatalog(), store)

    _, err := ledger.CreateBooking(context.Background(), validRequest())
    if err == nil {
        t.Fatal("create succeeded despite persistent code collisions")
    }
    if _, ok := AsValidation(err); ok {
        t.Errorf("collision surfaced as validation error: %v", err)
    }
    if !errors.Is(err, ErrCodeTaken) {
        t.Errorf("err = %v, want wrapped ErrCodeTaken", err)
    }
    if len(store.codes) != 3 {
        t.Errorf("insert attempted %d times, want 3", len(store.codes))
    }
    if store.Len() != 0 {
        t.Errorf("store holds %d bookings after failed create, want 0", store.Len())
    }
}

func TestNewCodeShape(t *testing.T) {
    pattern := regexp.MustCompile(`^BK[0-9A-F]{8}$`)
    seen := make(map[string]bool)
    for i := 0; i < 100; i++ {
        code := NewCode()
        if !pattern.MatchString(code) {
            t.Fatalf("code %q does not match pattern", code)
        }
        if seen[code] {
            t.Fatalf("duplicate code %q within 100 draws", code)
        }
        seen[code] = true
    }
}
