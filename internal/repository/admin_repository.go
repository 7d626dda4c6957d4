package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/utils"
)

// AdminRepo provides access to the `admin_users` table.
type AdminRepo struct{ DB *sql.DB }

// NewAdminRepo returns an AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create inserts an admin with a bcrypt-hashed password and returns its ID.
func (r *AdminRepo) Create(ctx context.Context, fullName, email, password string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO admin_users (full_name, email, password_hash) VALUES (?,?,?)",
        fullName, email, hash)
    if err != nil {
        if isDuplicateKey(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches an admin by normalized email.  Returns sql.ErrNoRows
// when the email is unknown.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var a model.AdminUser
    err := r.DB.QueryRowContext(ctx,
        "SELECT id, full_name, email, password_hash, is_active, created_at, updated_at FROM admin_users WHERE email = ? LIMIT 1",
        email).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
    return a, err
}

// GetByID fetches an admin by primary key.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
    var a model.AdminUser
    err := r.DB.QueryRowContext(ctx,
        "SELECT id, full_name, email, password_hash, is_active, created_at, updated_at FROM admin_users WHERE id = ? LIMIT 1",
        id).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
    return a, err
}

// Count returns the number of admin accounts.  The first registration is
// open; every later one requires an authenticated admin.
func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&n)
    return n, err
}
