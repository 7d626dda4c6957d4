package booking

import (
    "net/mail"
    "regexp"
    "strings"
    "unicode/utf8"
)

// Input limits mirrored from the public API contract.
const (
    minNameLen  = 2
    maxNameLen  = 120
    minGuests   = 1
    maxGuests   = 40
    maxQuantity = 20
)

// phonePattern accepts local 10-digit numbers starting with 0.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

// validateCreate checks every constraint on a create request before any
// mutation happens.  The first violation wins; nothing is persisted on
// failure.
func validateCreate(req *CreateRequest) error {
    name := strings.TrimSpace(req.Customer.Name)
    // Length in runes, not bytes: accented names must not burn 2-3 units per
    // character.
    if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
        return &ValidationError{Field: "customerInfo.name", Message: "name must be 2-120 characters"}
    }
    if !phonePattern.MatchString(req.Customer.Phone) {
        return &ValidationError{Field: "customerInfo.phone", Message: "phone must be 10 digits starting with 0"}
    }
    if _, err := mail.ParseAddress(req.Customer.Email); err != nil {
        return &ValidationError{Field: "customerInfo.email", Message: "invalid email address"}
    }
    if req.Details.Guests < minGuests || req.Details.Guests > maxGuests {
        return &ValidationError{Field: "booking.guests", Message: "guests must be between 1 and 40"}
    }
    if req.Details.Time.IsZero() {
        return &ValidationError{Field: "booking.dateTime", Message: "reservation time is required"}
    }
    if len(req.Orders) == 0 {
        return &ValidationError{Field: "orders", Message: "at least one order line is required"}
    }
    for _, o := range req.Orders {
        if o.FoodID <= 0 {
            return &ValidationError{Field: "orders", Message: "food id must be a positive integer"}
        }
        if o.Quantity < 0 || o.Quantity > maxQuantity {
            return &ValidationError{Field: "orders", Message: "quantity must be between 1 and 20"}
        }
    }
    return nil
}
