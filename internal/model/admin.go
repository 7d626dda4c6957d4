package model

import "time"

// AdminUser is a back-office account stored in `admin_users`.  Only the
// bcrypt hash of the password is persisted.
type AdminUser struct {
    ID           uint64    // admin_users.id
    FullName     string    // admin_users.full_name
    Email        string    // admin_users.email
    PasswordHash string    // admin_users.password_hash
    IsActive     bool      // admin_users.is_active
    CreatedAt    time.Time // admin_users.created_at
    UpdatedAt    time.Time // admin_users.updated_at
}
