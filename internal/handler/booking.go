package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/booking"
    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/queue"
    queue_publisher "github.com/mtpfood/restaurant-backoffice/internal/service"
)

// BookingHandler exposes the booking ledger over HTTP.  Creation and reads
// are public; status transitions and deletes sit behind the admin middleware.
type BookingHandler struct {
    Ledger *booking.Ledger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(l *booking.Ledger) *BookingHandler {
    if l == nil {
        panic("nil ledger passed to NewBookingHandler")
    }
    return &BookingHandler{Ledger: l}
}

// ----- DTOs -----

type createBookingReq struct {
    CustomerInfo struct {
        Name  string `json:"name"`
        Phone string `json:"phone"`
        Email string `json:"email"`
    } `json:"customerInfo"`
    Booking struct {
        Guests   int    `json:"guests"`
        DateTime string `json:"dateTime"`
        Note     string `json:"note"`
    } `json:"booking"`
    Orders []struct {
        FoodID   int64 `json:"foodId"`
        Quantity int   `json:"quantity"`
    } `json:"orders"`
}

type transitionReq struct {
    Status string `json:"status"`
    Note   string `json:"note"`
}

// Create handles POST /api/bookings.  It validates and prices the cart
// through the ledger and returns the serialized booking with its generated
// code.  Nothing is persisted on validation failure.
func (h *BookingHandler) Create(c echo.Context) error {
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    when, ok := parseBookingTime(req.Booking.DateTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking.dateTime: unparseable timestamp"})
    }

    createReq := &booking.CreateRequest{
        Customer: booking.CustomerInfo{
            Name:  req.CustomerInfo.Name,
            Phone: req.CustomerInfo.Phone,
            Email: req.CustomerInfo.Email,
        },
        Details: booking.Details{
            Guests: req.Booking.Guests,
            Time:   when,
            Note:   req.Booking.Note,
        },
    }
    for _, o := range req.Orders {
        createReq.Orders = append(createReq.Orders, booking.OrderRequest{FoodID: o.FoodID, Quantity: o.Quantity})
    }

    b, err := h.Ledger.CreateBooking(c.Request().Context(), createReq)
    if err != nil {
        if ve, ok := booking.AsValidation(err); ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
    }

    publishEvent(b)
    return c.JSON(http.StatusCreated, serializeBooking(b))
}

// List handles GET /api/bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
    bookings, err := h.Ledger.ListBookings(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list bookings"})
    }
    out := make([]bookingResp, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, serializeBooking(b))
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/bookings/:code.
func (h *BookingHandler) Get(c echo.Context) error {
    b, err := h.Ledger.GetBooking(c.Request().Context(), c.Param("code"))
    if err != nil {
        if errors.Is(err, booking.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
    }
    return c.JSON(http.StatusOK, serializeBooking(b))
}

// UpdateStatus handles PUT /api/bookings/:code (admin).  Any state may be set
// from any other; the transition is recorded on the timeline.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
    var req transitionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    b, err := h.Ledger.TransitionStatus(c.Request().Context(), c.Param("code"), req.Status, req.Note)
    if err != nil {
        if ve, ok := booking.AsValidation(err); ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
        }
        if errors.Is(err, booking.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
    }

    publishEvent(b)
    return c.JSON(http.StatusOK, serializeBooking(b))
}

// Delete handles DELETE /api/bookings/:code (admin).  Hard delete, lines
// included.
func (h *BookingHandler) Delete(c echo.Context) error {
    err := h.Ledger.DeleteBooking(c.Request().Context(), c.Param("code"))
    if err != nil {
        if errors.Is(err, booking.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}

// publishEvent fires a booking event at the broker without blocking the
// request.  Publish failures are logged inside the publisher and ignored
// here.
func publishEvent(b *model.Booking) {
    ev := queue.BookingEvent{
        Code:         b.Code,
        Status:       b.Status,
        CustomerName: b.CustomerName,
        Guests:       b.Guests,
        BookingTime:  b.BookingTime.UTC().Format(time.RFC3339),
        TotalAmount:  b.TotalAmount,
        OccurredAt:   time.Now().UTC().Format(time.RFC3339),
    }
    if n := len(b.History); n > 0 {
        ev.Note = b.History[n-1].Note
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishBookingEvent(ctx, ev)
    }()
}
