package model

// Booking lifecycle states.  Transitions are deliberately unrestricted: an
// admin may move a booking from any state to any other, and every hop is
// recorded on the status timeline.
const (
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCompleted = "completed"
    StatusCancelled = "cancelled"
)

// BookingStatuses lists every valid booking state in display order.
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// statusLabels maps a state to its customer-facing label.
var statusLabels = map[string]string{
    StatusPending:   "awaiting confirmation",
    StatusConfirmed: "confirmed",
    StatusCompleted: "completed",
    StatusCancelled: "cancelled",
}

// ValidStatus reports whether s names a known booking state.
func ValidStatus(s string) bool {
    _, ok := statusLabels[s]
    return ok
}

// StatusLabel returns the display label for a state, falling back to the raw
// value for unknown states so historical data always renders.
func StatusLabel(s string) string {
    if label, ok := statusLabels[s]; ok {
        return label
    }
    return s
}
