package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mtpfood/restaurant-backoffice/internal/config"
    "github.com/mtpfood/restaurant-backoffice/internal/repository"
    "github.com/mtpfood/restaurant-backoffice/internal/utils"
)

// AuthHandler bundles dependencies for admin auth endpoints.
type AuthHandler struct {
    Cfg    config.Config
    Admins *repository.AdminRepo
}

func NewAuthHandler(cfg config.Config, admins *repository.AdminRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Admins: admins}
}

// ----- DTOs -----

type registerReq struct {
    FullName string `json:"fullName"`
    Email    string `json:"email"`
    Password string `json:"password"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type adminPart struct {
    ID       uint64 `json:"id"`
    FullName string `json:"fullName"`
    Email    string `json:"email"`
}
type authResp struct {
    Token string    `json:"token"`
    Admin adminPart `json:"admin"`
}

// Register creates an admin account.  The very first admin registers freely;
// once any admin exists the request must carry a valid admin token.  A token
// for the new account is returned immediately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.FullName = strings.TrimSpace(req.FullName)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.FullName == "" || req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName/email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    count, err := h.Admins.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if count > 0 && !h.callerIsAdmin(ctx, c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "admin login required to create new admins"})
    }

    id, err := h.Admins.Create(ctx, req.FullName, req.Email, req.Password, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create admin failed"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, id, req.Email, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    return c.JSON(http.StatusCreated, authResp{
        Token: access.Token,
        Admin: adminPart{ID: id, FullName: req.FullName, Email: req.Email},
    })
}

// Login verifies credentials and issues an access token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    admin, err := h.Admins.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !admin.IsActive || !utils.VerifyPassword(admin.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, admin.Email, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    return c.JSON(http.StatusOK, authResp{
        Token: access.Token,
        Admin: adminPart{ID: admin.ID, FullName: admin.FullName, Email: admin.Email},
    })
}

// Me returns the authenticated admin's profile.  Requires the admin
// middleware.
func (h *AuthHandler) Me(c echo.Context) error {
    id, ok := c.Get("admin_id").(uint64)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    admin, err := h.Admins.GetByID(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, adminPart{ID: admin.ID, FullName: admin.FullName, Email: admin.Email})
}

// callerIsAdmin reports whether the request carries a token for an existing
// active admin.  Used by Register, which sits outside the admin middleware so
// the first account can be created.
func (h *AuthHandler) callerIsAdmin(ctx context.Context, c echo.Context) bool {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return false
    }
    id, _, err := utils.ParseAdminToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
    if err != nil {
        return false
    }
    admin, err := h.Admins.GetByID(ctx, id)
    return err == nil && admin.IsActive
}
