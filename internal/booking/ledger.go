package booking

import (
    "context"
    "encoding/hex"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// codeAttempts bounds how often a create retries after a code collision
// before surfacing an error.  Collisions are astronomically rare with an
// 8-hex-char random token, so one retry is already paranoia.
const codeAttempts = 3

// createdNote is the note attached to the first timeline entry of every
// booking.
const createdNote = "booking created"

// Catalog resolves a food id to its current name and price.  The ledger reads
// each item exactly once per create and copies the values into the order line
// snapshot; it never keeps a live reference to the menu.
type Catalog interface {
    ResolveActivePrice(ctx context.Context, foodID int64) (name string, price int64, err error)
}

// Store persists bookings together with their order lines.  Insert must be
// atomic: either the booking row and every line land, or nothing does.
// Insert returns ErrCodeTaken when the booking code collides with an
// existing row.
type Store interface {
    Insert(ctx context.Context, b *model.Booking) error
    GetByCode(ctx context.Context, code string) (*model.Booking, error)
    List(ctx context.Context) ([]*model.Booking, error)
    UpdateStatus(ctx context.Context, b *model.Booking) error
    Delete(ctx context.Context, code string) error
}

// CustomerInfo carries the contact details captured at creation time.
type CustomerInfo struct {
    Name  string
    Phone string
    Email string
}

// Details carries the reservation parameters.
type Details struct {
    Guests int
    Time   time.Time
    Note   string
}

// OrderRequest is one raw cart entry as submitted by the client.  Duplicate
// food ids are allowed here; the ledger collapses them.
type OrderRequest struct {
    FoodID   int64
    Quantity int
}

// CreateRequest is the full input to CreateBooking.
type CreateRequest struct {
    Customer CustomerInfo
    Details  Details
    Orders   []OrderRequest
}

// Ledger owns booking records.  It validates input, prices order lines off
// the catalog, locks totals at creation time and maintains the append-only
// status timeline.
type Ledger struct {
    catalog Catalog
    store   Store
}

// NewLedger constructs a Ledger.  Both dependencies are required.
func NewLedger(catalog Catalog, store Store) *Ledger {
    if catalog == nil || store == nil {
        panic("nil dependency passed to NewLedger")
    }
    return &Ledger{catalog: catalog, store: store}
}

// NewCode generates a public booking code: "BK" followed by 8 uppercase hex
// characters drawn from a random UUID.
func NewCode() string {
    id := uuid.New()
    return "BK" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

// aggregated is one order line after duplicate food ids have been collapsed.
type aggregated struct {
    foodID   int64
    quantity int
}

// aggregateOrders collapses the raw cart into at most one entry per food id,
// summing quantities and applying the default quantity of 1.  First-seen
// order is preserved so the persisted lines follow the cart.
func aggregateOrders(orders []OrderRequest) []aggregated {
    index := make(map[int64]int, len(orders))
    out := make([]aggregated, 0, len(orders))
    for _, o := range orders {
        qty := o.Quantity
        if qty == 0 {
            qty = 1
        }
        if i, ok := index[o.FoodID]; ok {
            out[i].quantity += qty
            continue
        }
        index[o.FoodID] = len(out)
        out = append(out, aggregated{foodID: o.FoodID, quantity: qty})
    }
    return out
}

// CreateBooking validates the request, prices the cart against the catalog
// and persists a new booking atomically.  The returned booking carries the
// generated code, the computed total and the initial timeline entry.  On any
// validation failure nothing is persisted.
func (l *Ledger) CreateBooking(ctx context.Context, req *CreateRequest) (*model.Booking, error) {
    if err := validateCreate(req); err != nil {
        return nil, err
    }

    lines := make([]model.OrderLine, 0, len(req.Orders))
    var total int64
    for _, agg := range aggregateOrders(req.Orders) {
        name, price, err := l.catalog.ResolveActivePrice(ctx, agg.foodID)
        if err != nil {
            if errors.Is(err, ErrFoodNotFound) {
                return nil, &ValidationError{
                    Field:   "orders",
                    Message: fmt.Sprintf("food with id %d does not exist", agg.foodID),
                }
            }
            return nil, fmt.Errorf("resolve food %d: %w", agg.foodID, err)
        }
        foodID := agg.foodID
        lines = append(lines, model.OrderLine{
            FoodID:   &foodID,
            FoodName: name,
            Price:    price,
            Quantity: agg.quantity,
        })
        total += price * int64(agg.quantity)
    }

    b := &model.Booking{
        CustomerName:  strings.TrimSpace(req.Customer.Name),
        CustomerPhone: req.Customer.Phone,
        CustomerEmail: req.Customer.Email,
        Guests:        req.Details.Guests,
        BookingTime:   req.Details.Time.UTC(),
        Note:          req.Details.Note,
        TotalAmount:   total,
        Lines:         lines,
    }
    b.ApplyStatus(model.StatusPending, createdNote, time.Now())

    // The unique index on code is the real uniqueness guarantee; on the rare
    // collision a fresh code is generated and the insert retried.
    var err error
    for attempt := 0; attempt < codeAttempts; attempt++ {
        b.Code = NewCode()
        err = l.store.Insert(ctx, b)
        if err == nil {
            return b, nil
        }
        if !errors.Is(err, ErrCodeTaken) {
            return nil, fmt.Errorf("insert booking: %w", err)
        }
    }
    return nil, fmt.Errorf("insert booking: %w", err)
}

// TransitionStatus moves a booking to newStatus and appends one timeline
// entry.  Any state is reachable from any other.  Order lines and the total
// are never touched.  An empty note gets a default message naming the new
// state.
func (l *Ledger) TransitionStatus(ctx context.Context, code, newStatus, note string) (*model.Booking, error) {
    if !model.ValidStatus(newStatus) {
        return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", newStatus)}
    }
    b, err := l.store.GetByCode(ctx, code)
    if err != nil {
        return nil, err
    }
    if note == "" {
        note = "status updated to " + newStatus
    }
    b.ApplyStatus(newStatus, note, time.Now())
    if err := l.store.UpdateStatus(ctx, b); err != nil {
        return nil, fmt.Errorf("update booking %s: %w", code, err)
    }
    return b, nil
}

// GetBooking returns the booking with the given code.
func (l *Ledger) GetBooking(ctx context.Context, code string) (*model.Booking, error) {
    return l.store.GetByCode(ctx, code)
}

// ListBookings returns all bookings, newest first.
func (l *Ledger) ListBookings(ctx context.Context) ([]*model.Booking, error) {
    return l.store.List(ctx)
}

// DeleteBooking removes a booking and all of its order lines.
func (l *Ledger) DeleteBooking(ctx context.Context, code string) error {
    return l.store.Delete(ctx, code)
}
