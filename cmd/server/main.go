package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Loads .env files into the environment
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/health-platform/internal/config"
    "github.com/iliyamo/health-platform/internal/database"
    "github.com/iliyamo/health-platform/internal/handler"
    "github.com/iliyamo/health-platform/internal/queue"
    "github.com/iliyamo/health-platform/internal/repository"
    "github.com/iliyamo/health-platform/internal/router"
    "github.com/iliyamo/health-platform/internal/scanner"
    "github.com/iliyamo/health-platform/internal/storage"
)

func main() {
    _ = godotenv.Load() // Optional .env for local development

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    store, err := storage.NewDiskStore(cfg.UploadDir, storage.FileBaseURL(cfg.PublicBaseURL, cfg.Port))
    if err != nil {
        log.Fatalf("storage: %v", err)
    }

    // Redis is optional: when unreachable the client is nil and the
    // cache and rate-limit middleware degrade to pass-through.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; caching and rate limiting disabled")
    }

    // Repositories
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    diagnoses := repository.NewDiagnosisRepo(db)
    medicines := repository.NewMedicineRepo(db)
    cart := repository.NewCartRepo(db)
    prescriptions := repository.NewPrescriptionRepo(db)
    doctors := repository.NewDoctorRepo(db)

    // Handlers
    auth := handler.NewAuthHandler(cfg, users, tokens)
    diag := handler.NewDiagnosisHandler(diagnoses, store)
    shop := handler.NewShopHandler(medicines, cart)
    rx := handler.NewPrescriptionHandler(prescriptions, medicines, cart, store, scanner.NewStaticExtractor())
    docs := handler.NewDoctorHandler(doctors)

    e := echo.New() // Create Echo instance
    router.RegisterRoutes(e, cfg.UploadDir)
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterPublic(e, shop, docs, rdb)
    router.RegisterPatient(e, diag, shop, rx, cfg.JWTSecret)

    // Consume prescription events in the background; the consumer
    // reconnects on its own and never takes the server down.
    go func() {
        if err := queue.StartPrescriptionConsumer(); err != nil {
            log.Printf("prescription consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
