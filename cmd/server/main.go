package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/mtpfood/restaurant-backoffice/internal/assistant"
    "github.com/mtpfood/restaurant-backoffice/internal/booking"
    "github.com/mtpfood/restaurant-backoffice/internal/config"
    "github.com/mtpfood/restaurant-backoffice/internal/database"
    "github.com/mtpfood/restaurant-backoffice/internal/handler"
    "github.com/mtpfood/restaurant-backoffice/internal/queue"
    "github.com/mtpfood/restaurant-backoffice/internal/repository"
    "github.com/mtpfood/restaurant-backoffice/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.Bootstrap(ctx, db); err != nil {
        cancel()
        log.Fatalf("database bootstrap: %v", err)
    }
    cancel()

    // Redis is optional infrastructure: a nil client disables the response
    // cache and the rate limiter without affecting correctness.
    rdb := config.NewRedisClient()
    cacheCfg := config.LoadCacheConfig()
    rlCfg := config.LoadRateLimitConfig()

    foodRepo := repository.NewFoodRepo(db)
    bookingStore := repository.NewBookingStore(db)
    adminRepo := repository.NewAdminRepo(db)
    chatRepo := repository.NewChatRepo(db)

    ledger := booking.NewLedger(foodRepo, bookingStore)

    var assist *assistant.Assistant
    if client := assistant.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel); client != nil {
        assist = assistant.New(client, 10*time.Second)
    } else {
        log.Println("assistant: no GROQ_API_KEY, running scripted responder only")
        assist = assistant.New(nil, 0)
    }

    authHandler := handler.NewAuthHandler(cfg, adminRepo)
    foodHandler := handler.NewFoodHandler(foodRepo, cfg.UploadDir, cacheCfg, rdb)
    bookingHandler := handler.NewBookingHandler(ledger)
    chatHandler := handler.NewChatHandler(assist, foodRepo, chatRepo)
    statsHandler := handler.NewStatsHandler(foodRepo, bookingStore)
    seedHandler := handler.NewSeedHandler(foodRepo)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())

    router.RegisterRoutes(e, cfg.UploadDir)
    router.RegisterAuth(e, authHandler)
    router.RegisterPublic(e, foodHandler, bookingHandler, chatHandler, rdb, cacheCfg, rlCfg)
    router.RegisterAdmin(e, cfg, adminRepo, authHandler, foodHandler, bookingHandler, chatHandler, statsHandler, seedHandler)

    // Booking events are mirrored to a log file by a RabbitMQ consumer.  The
    // consumer reconnects forever, so a broker outage only delays the log.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("queue consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
