package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/mtpfood/restaurant-backoffice/internal/booking"
    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// BookingStore is the MySQL implementation of booking.Store.  A booking and
// its order lines are written in one transaction; the unique index on code is
// the enforcement point for code uniqueness.  The status timeline lives in
// the status_history TEXT column as a JSON blob and is decoded into
// model.StatusEntry values on read.
type BookingStore struct{ DB *sql.DB }

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{DB: db} }

const bookingColumns = `id, code, customer_name, customer_phone, customer_email,
	guests, booking_datetime, note, status, total_amount, status_history, created_at, updated_at`

// Insert writes the booking row and all of its order lines atomically.  The
// generated id and timestamps are populated on b.  Returns
// booking.ErrCodeTaken when the code collides with an existing booking.
func (s *BookingStore) Insert(ctx context.Context, b *model.Booking) error {
    history, err := model.EncodeHistory(b.History)
    if err != nil {
        return fmt.Errorf("encode history: %w", err)
    }

    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res, err := tx.ExecContext(ctx,
        `INSERT INTO bookings
			(code, customer_name, customer_phone, customer_email, guests, booking_datetime, note, status, total_amount, status_history)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
        b.Code, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
        b.Guests, b.BookingTime, b.Note, b.Status, b.TotalAmount, history)
    if err != nil {
        if isDuplicateKey(err) {
            return booking.ErrCodeTaken
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    if len(b.Lines) > 0 {
        // Single multi-row insert for all lines.
        query := "INSERT INTO booking_items (booking_id, food_id, food_name, price, quantity) VALUES "
        args := make([]any, 0, len(b.Lines)*5)
        for i := range b.Lines {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?, ?, ?)"
            b.Lines[i].BookingID = b.ID
            args = append(args, b.ID, b.Lines[i].FoodID, b.Lines[i].FoodName, b.Lines[i].Price, b.Lines[i].Quantity)
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return err
        }
    }

    // Query back DB-generated timestamps so the caller sees the stored row.
    err = tx.QueryRowContext(ctx,
        "SELECT created_at, updated_at FROM bookings WHERE id = ?", b.ID).
        Scan(&b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
    var b model.Booking
    var note, history sql.NullString
    err := row.Scan(&b.ID, &b.Code, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
        &b.Guests, &b.BookingTime, &note, &b.Status, &b.TotalAmount, &history,
        &b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return nil, err
    }
    b.Note = note.String
    b.History, err = model.DecodeHistory(history.String)
    if err != nil {
        return nil, fmt.Errorf("decode history for %s: %w", b.Code, err)
    }
    return &b, nil
}

// GetByCode returns one booking with its order lines.
func (s *BookingStore) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
    row := s.DB.QueryRowContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE code = ?", code)
    b, err := scanBooking(row)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    if err := s.loadLines(ctx, []*model.Booking{b}); err != nil {
        return nil, err
    }
    return b, nil
}

// List returns every booking, newest first, with order lines populated by a
// single follow-up query.
func (s *BookingStore) List(ctx context.Context) ([]*model.Booking, error) {
    rows, err := s.DB.QueryContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC, id DESC")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    bookings := make([]*model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        bookings = append(bookings, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if err := s.loadLines(ctx, bookings); err != nil {
        return nil, err
    }
    return bookings, nil
}

// loadLines fetches order lines for all given bookings in one query and
// attaches them in line-id order.
func (s *BookingStore) loadLines(ctx context.Context, bookings []*model.Booking) error {
    if len(bookings) == 0 {
        return nil
    }
    index := make(map[uint64]*model.Booking, len(bookings))
    ids := make([]any, 0, len(bookings))
    placeholders := make([]string, 0, len(bookings))
    for _, b := range bookings {
        b.Lines = []model.OrderLine{}
        index[b.ID] = b
        ids = append(ids, b.ID)
        placeholders = append(placeholders, "?")
    }
    query := `SELECT id, booking_id, food_id, food_name, price, quantity
	          FROM booking_items
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, id`
    rows, err := s.DB.QueryContext(ctx, query, ids...)
    if err != nil {
        return err
    }
    defer rows.Close()
    for rows.Next() {
        var ln model.OrderLine
        var foodID sql.NullInt64
        if err := rows.Scan(&ln.ID, &ln.BookingID, &foodID, &ln.FoodName, &ln.Price, &ln.Quantity); err != nil {
            return err
        }
        if foodID.Valid {
            id := foodID.Int64
            ln.FoodID = &id
        }
        if b, ok := index[ln.BookingID]; ok {
            b.Lines = append(b.Lines, ln)
        }
    }
    return rows.Err()
}

// UpdateStatus persists the booking's current status and timeline.  It is a
// single-row update; lines and total are never written here.
func (s *BookingStore) UpdateStatus(ctx context.Context, b *model.Booking) error {
    history, err := model.EncodeHistory(b.History)
    if err != nil {
        return fmt.Errorf("encode history: %w", err)
    }
    res, err := s.DB.ExecContext(ctx,
        "UPDATE bookings SET status = ?, status_history = ? WHERE id = ?",
        b.Status, history, b.ID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return booking.ErrBookingNotFound
    }
    return nil
}

// Delete hard-deletes a booking and its order lines in one transaction.
func (s *BookingStore) Delete(ctx context.Context, code string) error {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var id uint64
    err = tx.QueryRowContext(ctx, "SELECT id FROM bookings WHERE code = ?", code).Scan(&id)
    if errors.Is(err, sql.ErrNoRows) {
        return booking.ErrBookingNotFound
    }
    if err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM booking_items WHERE booking_id = ?", id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Count returns the total number of bookings.
func (s *BookingStore) Count(ctx context.Context) (int64, error) {
    var n int64
    err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
    return n, err
}

// CountByStatus returns how many bookings are in the given state.
func (s *BookingStore) CountByStatus(ctx context.Context, status string) (int64, error) {
    var n int64
    err := s.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM bookings WHERE status = ?", status).Scan(&n)
    return n, err
}

// Revenue sums total_amount over confirmed and completed bookings.
func (s *BookingStore) Revenue(ctx context.Context) (int64, error) {
    var n int64
    err := s.DB.QueryRowContext(ctx,
        "SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status IN (?, ?)",
        model.StatusConfirmed, model.StatusCompleted).Scan(&n)
    return n, err
}

// Upcoming returns the next `limit` bookings whose reservation time is in the
// future and whose state is pending or confirmed, soonest first.
func (s *BookingStore) Upcoming(ctx context.Context, limit int) ([]*model.Booking, error) {
    rows, err := s.DB.QueryContext(ctx,
        "SELECT "+bookingColumns+` FROM bookings
		 WHERE booking_datetime >= ? AND status IN (?, ?)
		 ORDER BY booking_datetime ASC
		 LIMIT ?`,
        time.Now().UTC(), model.StatusPending, model.StatusConfirmed, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    bookings := make([]*model.Booking, 0, limit)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        bookings = append(bookings, b)
    }
    return bookings, rows.Err()
}
