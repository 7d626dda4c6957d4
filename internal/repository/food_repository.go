package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/mtpfood/restaurant-backoffice/internal/booking"
    "github.com/mtpfood/restaurant-backoffice/internal/model"
)

// FoodRepo provides CRUD access to the `foods` table.  It also implements
// booking.Catalog: the booking ledger calls ResolveActivePrice once per order
// line at creation time and copies the values out.
type FoodRepo struct{ DB *sql.DB }

// NewFoodRepo returns a FoodRepo bound to the given database.
func NewFoodRepo(db *sql.DB) *FoodRepo { return &FoodRepo{DB: db} }

const foodColumns = "id, name, price, image, description, is_active, created_at, updated_at"

func scanFood(row interface{ Scan(...any) error }) (*model.Food, error) {
    var f model.Food
    var desc sql.NullString
    err := row.Scan(&f.ID, &f.Name, &f.Price, &f.Image, &desc, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
    if err != nil {
        return nil, err
    }
    f.Description = desc.String
    return &f, nil
}

// ListActive returns all active menu items, newest first.  This backs the
// public menu endpoint.
func (r *FoodRepo) ListActive(ctx context.Context) ([]*model.Food, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+foodColumns+" FROM foods WHERE is_active = 1 ORDER BY created_at DESC")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    foods := make([]*model.Food, 0)
    for rows.Next() {
        f, err := scanFood(rows)
        if err != nil {
            return nil, err
        }
        foods = append(foods, f)
    }
    return foods, rows.Err()
}

// GetByID returns a food by id regardless of its active flag, so the admin
// panel can inspect hidden items.  Returns booking.ErrFoodNotFound when the
// id is unknown.
func (r *FoodRepo) GetByID(ctx context.Context, id int64) (*model.Food, error) {
    row := r.DB.QueryRowContext(ctx, "SELECT "+foodColumns+" FROM foods WHERE id = ?", id)
    f, err := scanFood(row)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, booking.ErrFoodNotFound
    }
    return f, err
}

// ResolveActivePrice implements booking.Catalog.  It resolves by id without
// filtering on the active flag: hiding an item from the menu must not break
// carts built while it was visible.
func (r *FoodRepo) ResolveActivePrice(ctx context.Context, foodID int64) (string, int64, error) {
    var name string
    var price int64
    err := r.DB.QueryRowContext(ctx,
        "SELECT name, price FROM foods WHERE id = ?", foodID).Scan(&name, &price)
    if errors.Is(err, sql.ErrNoRows) {
        return "", 0, booking.ErrFoodNotFound
    }
    if err != nil {
        return "", 0, err
    }
    return name, price, nil
}

// Create inserts a new food and returns it with generated fields populated.
func (r *FoodRepo) Create(ctx context.Context, f *model.Food) (*model.Food, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO foods (name, price, image, description, is_active) VALUES (?, ?, ?, ?, ?)",
        f.Name, f.Price, f.Image, f.Description, f.IsActive)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    return r.GetByID(ctx, id)
}

// Update persists every mutable field of the food.  Callers load the row
// first and apply partial changes to the struct.
func (r *FoodRepo) Update(ctx context.Context, f *model.Food) (*model.Food, error) {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE foods SET name = ?, price = ?, image = ?, description = ?, is_active = ? WHERE id = ?",
        f.Name, f.Price, f.Image, f.Description, f.IsActive, f.ID)
    if err != nil {
        return nil, err
    }
    return r.GetByID(ctx, f.ID)
}

// Delete removes a food.  Order lines that snapshot this food keep their
// food_id; the booking_items table has no FK to foods for that reason.
func (r *FoodRepo) Delete(ctx context.Context, id int64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM foods WHERE id = ?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return booking.ErrFoodNotFound
    }
    return nil
}

// Count returns the number of foods, for the stats endpoint.
func (r *FoodRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods").Scan(&n)
    return n, err
}
