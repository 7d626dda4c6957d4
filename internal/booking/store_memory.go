package booking

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// MemoryStore is a mutex-guarded in-memory Store.  It backs the unit tests
// and is handy for running the server without a database.  Bookings are
// deep-copied on the way in and out so callers can never mutate stored state
// through a returned pointer.
type MemoryStore struct {
    mu       sync.RWMutex
    byCode   map[string]*model.Booking
    nextID   uint64
    nextLine uint64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{
        byCode:   make(map[string]*model.Booking),
        nextID:   1,
        nextLine: 1,
    }
}

func (s *MemoryStore) Insert(_ context.Context, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    if _, exists := s.byCode[b.Code]; exists {
        return ErrCodeTaken
    }
    b.ID = s.nextID
    s.nextID++
    now := time.Now().UTC()
    b.CreatedAt = now
    b.UpdatedAt = now
    for i := range b.Lines {
        b.Lines[i].ID = s.nextLine
        s.nextLine++
        b.Lines[i].BookingID = b.ID
    }
    s.byCode[b.Code] = cloneBooking(b)
    return nil
}

func (s *MemoryStore) GetByCode(_ context.Context, code string) (*model.Booking, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    b, ok := s.byCode[code]
    if !ok {
        return nil, ErrBookingNotFound
    }
    return cloneBooking(b), nil
}

func (s *MemoryStore) List(_ context.Context) ([]*model.Booking, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    out := make([]*model.Booking, 0, len(s.byCode))
    for _, b := range s.byCode {
        out = append(out, cloneBooking(b))
    }
    // Newest first; IDs are monotonic so they break created-at ties.
    sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
    return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    stored, ok := s.byCode[b.Code]
    if !ok {
        return ErrBookingNotFound
    }
    stored.Status = b.Status
    stored.History = append([]model.StatusEntry(nil), b.History...)
    stored.UpdatedAt = time.Now().UTC()
    return nil
}

func (s *MemoryStore) Delete(_ context.Context, code string) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    if _, ok := s.byCode[code]; !ok {
        return ErrBookingNotFound
    }
    delete(s.byCode, code)
    return nil
}

// Len reports how many bookings the store holds.
func (s *MemoryStore) Len() int {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return len(s.byCode)
}

func cloneBooking(b *model.Booking) *model.Booking {
    c := *b
    c.History = append([]model.StatusEntry(nil), b.History...)
    c.Lines = make([]model.OrderLine, len(b.Lines))
    for i, ln := range b.Lines {
        c.Lines[i] = ln
        if ln.FoodID != nil {
            id := *ln.FoodID
            c.Lines[i].FoodID = &id
        }
    }
    return &c
}
