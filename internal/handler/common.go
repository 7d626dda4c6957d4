package handler

import (
    "time"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// bookingTimeLayouts are the accepted formats for the reservation time, tried
// in order.  RFC 3339 is what the frontend sends; the shorter layouts keep
// hand-written requests working.
var bookingTimeLayouts = []string{
    time.RFC3339,
    "2006-01-02T15:04:05",
    "2006-01-02T15:04",
    "2006-01-02 15:04:05",
}

// parseBookingTime parses the dateTime field of a create request.
func parseBookingTime(s string) (time.Time, bool) {
    for _, layout := range bookingTimeLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return t, true
        }
    }
    return time.Time{}, false
}

// ----- shared response shapes -----

type customerPart struct {
    Name  string `json:"name"`
    Phone string `json:"phone"`
    Email string `json:"email"`
}

type detailsPart struct {
    Guests   int    `json:"guests"`
    DateTime string `json:"dateTime"`
    Note     string `json:"note"`
}

type orderPart struct {
    FoodID   *int64 `json:"foodId"`
    Name     string `json:"name"`
    Price    int64  `json:"price"`
    Quantity int    `json:"quantity"`
}

type bookingResp struct {
    ID             string              `json:"id"` // public code, never the numeric id
    Status         string              `json:"status"`
    StatusLabel    string              `json:"statusLabel"`
    CustomerInfo   customerPart        `json:"customerInfo"`
    Booking        detailsPart         `json:"booking"`
    Orders         []orderPart         `json:"orders"`
    TotalAmount    int64               `json:"totalAmount"`
    CreatedAt      string              `json:"createdAt"`
    UpdatedAt      string              `json:"updatedAt"`
    StatusTimeline []model.StatusEntry `json:"statusTimeline"`
}

// serializeBooking maps a booking to its public JSON shape.
func serializeBooking(b *model.Booking) bookingResp {
    orders := make([]orderPart, 0, len(b.Lines))
    for _, ln := range b.Lines {
        orders = append(orders, orderPart{
            FoodID:   ln.FoodID,
            Name:     ln.FoodName,
            Price:    ln.Price,
            Quantity: ln.Quantity,
        })
    }
    timeline := b.History
    if timeline == nil {
        timeline = []model.StatusEntry{}
    }
    return bookingResp{
        ID:          b.Code,
        Status:      b.Status,
        StatusLabel: model.StatusLabel(b.Status),
        CustomerInfo: customerPart{
            Name:  b.CustomerName,
            Phone: b.CustomerPhone,
            Email: b.CustomerEmail,
        },
        Booking: detailsPart{
            Guests:   b.Guests,
            DateTime: b.BookingTime.UTC().Format(time.RFC3339),
            Note:     b.Note,
        },
        Orders:         orders,
        TotalAmount:    b.TotalAmount,
        CreatedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
        UpdatedAt:      b.UpdatedAt.UTC().Format(time.RFC3339),
        StatusTimeline: timeline,
    }
}
