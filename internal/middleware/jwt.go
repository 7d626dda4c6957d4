package middleware // reusable HTTP middleware for the admin API

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/utils"
)

// AdminLoader resolves an admin id from a token into the stored account.  It
// is satisfied by repository.AdminRepo.
type AdminLoader interface {
    GetByID(ctx context.Context, id uint64) (model.AdminUser, error)
}

// AdminAuth returns an Echo middleware that validates a Bearer access token,
// loads the admin account it was issued for and rejects missing or inactive
// accounts.  Handlers behind it can read the identity via c.Get("admin_id")
// and c.Get("admin_email").
func AdminAuth(secret string, admins AdminLoader) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            adminID, email, err := utils.ParseAdminToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            admin, err := admins.GetByID(c.Request().Context(), adminID)
            if err != nil || !admin.IsActive {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
            }

            c.Set("admin_id", adminID)
            c.Set("admin_email", email)
            return next(c)
        }
    }
}
