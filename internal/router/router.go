package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/health-platform/internal/config"     // app configuration
    "github.com/iliyamo/health-platform/internal/handler"    // import the handlers that implement business logic
    "github.com/iliyamo/health-platform/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the static file route
// under which the local object store serves uploaded medical files.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
    // The health endpoint can be used by load balancers or monitoring
    // systems to verify that the service is up and running.
    e.GET("/healthz", handler.Health)
    // Uploaded diagnosis photos, reports and prescription scans are
    // publicly resolvable under /files, matching the URLs returned by
    // the disk object store.
    e.Static("/files", uploadDir)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Routes that do not require an existing session: each handler is
    // responsible for generating or exchanging tokens.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token and returns a new pair.
    g.POST("/refresh", a.Refresh)
    // Logout accepts a JSON body containing a `refresh_token` and
    // invalidates that single session; no JWT required.
    g.POST("/logout", a.Logout)

    // Routes that require a valid access token.  All handlers on this
    // group execute the JWTAuth middleware before being invoked.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("PATIENT", "ADMIN"))
    auth.GET("/me", a.Me)
    // Revoke every session of the current user across devices.
    auth.POST("/logout-all", a.LogoutAll)
}

// RegisterPublic registers unauthenticated browse endpoints: the
// medicine catalog and the doctor listing.  These routes sit behind
// the Redis response cache and rate limiter when a Redis client is
// available; both degrade to no-ops otherwise.
func RegisterPublic(e *echo.Echo, shop *handler.ShopHandler, docs *handler.DoctorHandler, rdb *redis.Client) {
    cacheCfg := config.LoadCacheConfig()
    rlCfg := config.LoadRateLimitConfig()
    g := e.Group(
        "/v1",
        middleware.NewTokenBucket(rlCfg, rdb),
        middleware.NewRedisCache(cacheCfg, rdb),
    )
    g.GET("/medicines", shop.ListMedicines)
    g.GET("/doctors", docs.List)
}

// RegisterPatient registers the authenticated patient-facing flows:
// diagnosis submissions, the shopping cart and prescription intake.
// All routes require a valid JWT; the role check accepts ADMIN too so
// staff accounts can inspect their own data through the same API.
func RegisterPatient(
    e *echo.Echo,
    diag *handler.DiagnosisHandler,
    shop *handler.ShopHandler,
    rx *handler.PrescriptionHandler,
    jwtSecret string,
) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("PATIENT", "ADMIN"),
    )
    // Diagnosis submission flow.
    g.GET("/diagnoses", diag.List)
    g.POST("/diagnoses", diag.Create)
    g.DELETE("/diagnoses/:id", diag.Delete)
    // Cart synchronization flow.
    g.GET("/cart", shop.GetCart)
    g.POST("/cart/items", shop.AddToCart)
    g.DELETE("/cart/items/:id", shop.RemoveFromCart)
    // Prescription intake flow.
    g.GET("/prescriptions", rx.List)
    g.POST("/prescriptions/scan", rx.Scan)
}
