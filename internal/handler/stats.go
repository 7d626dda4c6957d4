package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/repository"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
    Foods    *repository.FoodRepo
    Bookings *repository.BookingStore
}

func NewStatsHandler(foods *repository.FoodRepo, bookings *repository.BookingStore) *StatsHandler {
    return &StatsHandler{Foods: foods, Bookings: bookings}
}

type upcomingResp struct {
    ID        string `json:"id"`
    GuestName string `json:"guestName"`
    Guests    int    `json:"guests"`
    DateTime  string `json:"dateTime"`
    Status    string `json:"status"`
}

type statsResp struct {
    TotalFoods        int64          `json:"totalFoods"`
    TotalBookings     int64          `json:"totalBookings"`
    PendingBookings   int64          `json:"pendingBookings"`
    ConfirmedBookings int64          `json:"confirmedBookings"`
    TotalRevenue      int64          `json:"totalRevenue"`
    Upcoming          []upcomingResp `json:"upcoming"`
}

// Get handles GET /api/admin/stats.
func (h *StatsHandler) Get(c echo.Context) error {
    ctx := c.Request().Context()
    var (
        resp statsResp
        err  error
    )
    if resp.TotalFoods, err = h.Foods.Count(ctx); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if resp.TotalBookings, err = h.Bookings.Count(ctx); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if resp.PendingBookings, err = h.Bookings.CountByStatus(ctx, model.StatusPending); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if resp.ConfirmedBookings, err = h.Bookings.CountByStatus(ctx, model.StatusConfirmed); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if resp.TotalRevenue, err = h.Bookings.Revenue(ctx); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    upcoming, err := h.Bookings.Upcoming(ctx, 3)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    resp.Upcoming = make([]upcomingResp, 0, len(upcoming))
    for _, b := range upcoming {
        resp.Upcoming = append(resp.Upcoming, upcomingResp{
            ID:        b.Code,
            GuestName: b.CustomerName,
            Guests:    b.Guests,
            DateTime:  b.BookingTime.UTC().Format(time.RFC3339),
            Status:    b.Status,
        })
    }
    return c.JSON(http.StatusOK, resp)
}
