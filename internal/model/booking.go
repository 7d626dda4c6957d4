package model

import (
    "encoding/json"
    "time"
)

// Booking is a single table reservation together with the food order placed
// for it.  The public identifier is Code; the numeric ID never leaves the
// persistence layer.  TotalAmount and the per-line price snapshots are fixed
// at creation time and are never recomputed when the menu changes.
//
// Fields:
//  ID            – primary key identifier.
//  Code          – unique public token (BK + 8 hex chars).
//  CustomerName  – bookings.customer_name.
//  CustomerPhone – bookings.customer_phone.
//  CustomerEmail – bookings.customer_email.
//  Guests        – party size, 1..40.
//  BookingTime   – reserved table time.
//  Note          – free-form customer note.
//  Status        – current lifecycle state; always equals the status of the
//                  last History entry.
//  TotalAmount   – sum of line price * quantity, smallest currency unit.
//  History       – append-only status timeline, oldest first.
//  Lines         – order lines owned by this booking.
type Booking struct {
    ID            uint64        // bookings.id
    Code          string        // bookings.code
    CustomerName  string        // bookings.customer_name
    CustomerPhone string        // bookings.customer_phone
    CustomerEmail string        // bookings.customer_email
    Guests        int           // bookings.guests
    BookingTime   time.Time     // bookings.booking_datetime
    Note          string        // bookings.note
    Status        string        // bookings.status
    TotalAmount   int64         // bookings.total_amount
    History       []StatusEntry // bookings.status_history (JSON text column)
    Lines         []OrderLine   // booking_items rows
    CreatedAt     time.Time     // bookings.created_at
    UpdatedAt     time.Time     // bookings.updated_at
}

// OrderLine is one aggregated (food, quantity) entry within a booking.  The
// food name and price are copied out of the menu when the booking is created,
// so later menu edits or deletions never alter a booking's history.  FoodID
// stays populated even after the referenced food is removed.
type OrderLine struct {
    ID        uint64 // booking_items.id
    BookingID uint64 // booking_items.booking_id
    FoodID    *int64 // booking_items.food_id (nullable)
    FoodName  string // booking_items.food_name (snapshot)
    Price     int64  // booking_items.price (snapshot)
    Quantity  int    // booking_items.quantity
}

// StatusEntry is a single record on the status timeline.  Time is stored as
// an RFC 3339 string because the timeline is persisted as an opaque JSON blob
// rather than a relational table.
type StatusEntry struct {
    Status string `json:"status"`
    Label  string `json:"label"`
    Note   string `json:"note"`
    Time   string `json:"time"`
}

// ApplyStatus appends one entry to the status timeline and moves the booking
// to the new state.  It is the only place the timeline grows; nothing ever
// truncates or reorders it.
func (b *Booking) ApplyStatus(status, note string, at time.Time) {
    b.History = append(b.History, StatusEntry{
        Status: status,
        Label:  StatusLabel(status),
        Note:   note,
        Time:   at.UTC().Format(time.RFC3339),
    })
    b.Status = status
}

// EncodeHistory serializes the status timeline for storage in the
// status_history text column.
func EncodeHistory(entries []StatusEntry) (string, error) {
    if entries == nil {
        entries = []StatusEntry{}
    }
    raw, err := json.Marshal(entries)
    if err != nil {
        return "", err
    }
    return string(raw), nil
}

// DecodeHistory parses the stored timeline.  An empty or missing blob decodes
// to an empty timeline rather than an error so legacy rows remain readable.
func DecodeHistory(raw string) ([]StatusEntry, error) {
    if raw == "" {
        return []StatusEntry{}, nil
    }
    var entries []StatusEntry
    if err := json.Unmarshal([]byte(raw), &entries); err != nil {
        return nil, err
    }
    return entries, nil
}
