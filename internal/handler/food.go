package handler

import (
    "context"
    "errors"
    "fmt"
    "io"
    "net/http"
    "os"
    "path/filepath"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/mtpfood/restaurant-backoffice/internal/booking"
    "github.com/mtpfood/restaurant-backoffice/internal/config"
    "github.com/mtpfood/restaurant-backoffice/internal/middleware"
    "github.com/mtpfood/restaurant-backoffice/internal/model"
    "github.com/mtpfood/restaurant-backoffice/internal/repository"
)

// allowed image extensions for menu uploads
var imageExts = map[string]bool{
    ".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// FoodHandler serves the menu catalog.  Mutations run behind the admin
// middleware and invalidate the response cache so the public menu never
// serves stale prices.
type FoodHandler struct {
    Repo      *repository.FoodRepo
    UploadDir string
    CacheCfg  config.CacheConfig
    Redis     *redis.Client
}

func NewFoodHandler(repo *repository.FoodRepo, uploadDir string, cacheCfg config.CacheConfig, rdb *redis.Client) *FoodHandler {
    return &FoodHandler{Repo: repo, UploadDir: uploadDir, CacheCfg: cacheCfg, Redis: rdb}
}

type foodResp struct {
    ID          int64  `json:"id"`
    Name        string `json:"name"`
    Price       int64  `json:"price"`
    Image       string `json:"image,omitempty"`
    Description string `json:"description,omitempty"`
    IsActive    bool   `json:"isActive"`
    CreatedAt   string `json:"createdAt"`
    UpdatedAt   string `json:"updatedAt"`
}

func serializeFood(f *model.Food) foodResp {
    return foodResp{
        ID:          f.ID,
        Name:        f.Name,
        Price:       f.Price,
        Image:       f.Image,
        Description: f.Description,
        IsActive:    f.IsActive,
        CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
        UpdatedAt:   f.UpdatedAt.UTC().Format(time.RFC3339),
    }
}

// List returns the active menu, newest first.
func (h *FoodHandler) List(c echo.Context) error {
    foods, err := h.Repo.ListActive(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]foodResp, 0, len(foods))
    for _, f := range foods {
        out = append(out, serializeFood(f))
    }
    return c.JSON(http.StatusOK, out)
}

// Get returns a single food by id, hidden items included.
func (h *FoodHandler) Get(c echo.Context) error {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid food id"})
    }
    f, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, booking.ErrFoodNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "food not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, serializeFood(f))
}

// Create adds a menu item.  Accepts multipart form data so an image can be
// uploaded in the same request.
func (h *FoodHandler) Create(c echo.Context) error {
    name := strings.TrimSpace(c.FormValue("name"))
    priceRaw := strings.TrimSpace(c.FormValue("price"))
    if name == "" || priceRaw == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and price are required"})
    }
    price, err := strconv.ParseInt(priceRaw, 10, 64)
    if err != nil || price < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a non-negative integer"})
    }

    f := &model.Food{
        Name:        name,
        Price:       price,
        Description: strings.TrimSpace(c.FormValue("description")),
        IsActive:    parseActive(c.FormValue("isActive"), true),
    }

    if image, err := h.saveImage(c); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    } else if image != "" {
        f.Image = image
    }

    created, err := h.Repo.Create(c.Request().Context(), f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create food failed"})
    }
    h.invalidateCache(c)
    return c.JSON(http.StatusCreated, serializeFood(created))
}

// Update applies partial changes to a food.  Only fields present in the form
// are touched; a new image replaces and removes the old file.
func (h *FoodHandler) Update(c echo.Context) error {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid food id"})
    }
    f, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, booking.ErrFoodNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "food not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    if v := strings.TrimSpace(c.FormValue("name")); v != "" {
        f.Name = v
    }
    if v := strings.TrimSpace(c.FormValue("price")); v != "" {
        price, err := strconv.ParseInt(v, 10, 64)
        if err != nil || price < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a non-negative integer"})
        }
        f.Price = price
    }
    if v := c.FormValue("description"); v != "" {
        f.Description = strings.TrimSpace(v)
    }
    if v := c.FormValue("isActive"); v != "" {
        f.IsActive = parseActive(v, f.IsActive)
    }

    oldImage := f.Image
    if image, err := h.saveImage(c); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    } else if image != "" {
        f.Image = image
    }

    updated, err := h.Repo.Update(c.Request().Context(), f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update food failed"})
    }
    if f.Image != oldImage {
        h.removeImage(oldImage)
    }
    h.invalidateCache(c)
    return c.JSON(http.StatusOK, serializeFood(updated))
}

// Delete removes a food and its image file.  Past bookings keep their price
// and name snapshots.
func (h *FoodHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid food id"})
    }
    f, err := h.Repo.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, booking.ErrFoodNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "food not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete food failed"})
    }
    h.removeImage(f.Image)
    h.invalidateCache(c)
    return c.JSON(http.StatusOK, echo.Map{"message": "food deleted"})
}

// saveImage stores an uploaded "image" file under the upload dir and returns
// its public path.  Missing file is not an error.
func (h *FoodHandler) saveImage(c echo.Context) (string, error) {
    fh, err := c.FormFile("image")
    if err != nil {
        return "", nil
    }
    ext := strings.ToLower(filepath.Ext(fh.Filename))
    if !imageExts[ext] {
        return "", fmt.Errorf("unsupported image type %q", ext)
    }
    src, err := fh.Open()
    if err != nil {
        return "", err
    }
    defer src.Close()

    if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
        return "", err
    }
    name := uuid.New().String() + ext
    dst, err := os.Create(filepath.Join(h.UploadDir, name))
    if err != nil {
        return "", err
    }
    defer dst.Close()
    if _, err := io.Copy(dst, src); err != nil {
        return "", err
    }
    return "/" + filepath.ToSlash(filepath.Join(h.UploadDir, name)), nil
}

// removeImage deletes a previously uploaded file, ignoring paths outside the
// upload dir and files that are already gone.
func (h *FoodHandler) removeImage(public string) {
    if public == "" {
        return
    }
    rel := strings.TrimPrefix(public, "/")
    if !strings.HasPrefix(rel, filepath.ToSlash(h.UploadDir)) {
        return
    }
    _ = os.Remove(filepath.FromSlash(rel))
}

func (h *FoodHandler) invalidateCache(c echo.Context) {
    ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
    defer cancel()
    middleware.InvalidateCache(ctx, h.CacheCfg, h.Redis)
}

func parseActive(raw string, def bool) bool {
    switch strings.ToLower(strings.TrimSpace(raw)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    default:
        return def
    }
}
