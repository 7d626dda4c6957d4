package model

import "time"

// Food represents a menu item as stored in the `foods` table.  Prices are
// integers in the smallest currency unit.  Inactive items stay in the table
// so existing bookings keep resolving their snapshots, but they are hidden
// from the public menu.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – dish name.
//  Price       – price in the smallest currency unit.
//  Image       – external URL or stored upload filename.
//  Description – free-form description.
//  IsActive    – whether the item is shown on the public menu.
type Food struct {
    ID          int64     // foods.id
    Name        string    // foods.name
    Price       int64     // foods.price
    Image       string    // foods.image
    Description string    // foods.description
    IsActive    bool      // foods.is_active
    CreatedAt   time.Time // foods.created_at
    UpdatedAt   time.Time // foods.updated_at
}
