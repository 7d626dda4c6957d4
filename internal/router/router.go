package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/mtpfood/restaurant-backoffice/internal/config"
    "github.com/mtpfood/restaurant-backoffice/internal/handler"
    "github.com/mtpfood/restaurant-backoffice/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication and are
// not part of the API surface.  Currently it exposes a health check for load
// balancers and uptime monitors, plus the static upload directory so menu
// images can be served directly.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
    e.GET("/healthz", handler.Health)
    e.Static("/"+uploadDir, uploadDir)
}

// RegisterPublic registers the guest-facing endpoints: menu browsing, booking
// creation and lookup, and the chat assistant.  Menu reads sit behind the
// Redis response cache and the rate limiter when those are enabled; both
// middlewares pass requests straight through when Redis is unavailable.
func RegisterPublic(e *echo.Echo, foods *handler.FoodHandler, bookings *handler.BookingHandler, chat *handler.ChatHandler,
    rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {

    limiter := middleware.NewTokenBucket(rlCfg, rdb)
    cache := middleware.NewRedisCache(cacheCfg, rdb)

    g := e.Group("/api", limiter)

    // Menu reads are hot and cacheable.
    g.GET("/foods", foods.List, cache)
    g.GET("/foods/:id", foods.Get, cache)

    g.POST("/bookings", bookings.Create)
    g.GET("/bookings/:code", bookings.Get)

    g.POST("/ai/chat", chat.Send)
}

// RegisterAuth registers login and registration.  Register lives outside the
// admin group because the very first account must be creatable without a
// token; the handler enforces the admin check itself once accounts exist.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
    g := e.Group("/api/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
}

// RegisterAdmin registers the back-office endpoints.  Every route in this
// group requires a valid admin access token.
func RegisterAdmin(e *echo.Echo, cfg config.Config, admins middleware.AdminLoader,
    a *handler.AuthHandler, foods *handler.FoodHandler, bookings *handler.BookingHandler,
    chat *handler.ChatHandler, stats *handler.StatsHandler, seed *handler.SeedHandler) {

    g := e.Group("/api/admin")
    g.Use(middleware.AdminAuth(cfg.JWTSecret, admins))

    g.GET("/me", a.Me)

    g.POST("/foods", foods.Create)
    g.PUT("/foods/:id", foods.Update)
    g.DELETE("/foods/:id", foods.Delete)

    g.GET("/bookings", bookings.List)
    g.PUT("/bookings/:code/status", bookings.UpdateStatus)
    g.DELETE("/bookings/:code", bookings.Delete)

    g.GET("/chat/:session", chat.History)

    g.GET("/stats", stats.Get)
    g.POST("/seed", seed.Run)
}
