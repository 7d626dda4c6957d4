// Package booking implements the booking ledger: creating bookings from a
// cart of order lines with menu-authoritative pricing, the append-only status
// timeline, and lookup/delete by public code.  Persistence and menu lookup
// are injected through the Store and Catalog interfaces so the ledger itself
// stays storage-agnostic.
package booking

import (
    "errors"
    "fmt"
)

// ErrBookingNotFound is returned when no booking exists for a given code.
// Handlers should translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrFoodNotFound is returned by Catalog implementations when a food id does
// not resolve to a menu item.
var ErrFoodNotFound = errors.New("food not found")

// ErrCodeTaken is returned by Store implementations when inserting a booking
// whose code collides with an existing row.  The ledger regenerates the code
// and retries a bounded number of times before giving up.
var ErrCodeTaken = errors.New("booking code already taken")

// ValidationError describes a constraint violation in a create or transition
// request.  It always refers to input the caller can correct and never
// corresponds to partially applied state.
type ValidationError struct {
    Field   string
    Message string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
    var ve *ValidationError
    if errors.As(err, &ve) {
        return ve, true
    }
    return nil, false
}
