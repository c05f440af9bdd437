package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/retailcore/inventory-system/internal/api/handler"
	"github.com/retailcore/inventory-system/internal/api/middleware"
	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// RouterConfig carries the transport-level knobs the router needs.
type RouterConfig struct {
	CookieName    string
	SecureCookies bool
}

// Dependencies groups everything the router wires into handlers.
type Dependencies struct {
	Auth   ports.AuthService
	Guard  ports.Authorizer
	Index  ports.AssignmentIndex
	Users  ports.UserRepository
	Stores ports.StoreRepository
	Mongo  *mongo.Database
	Redis  *redis.Client // nil when sessions are in-memory
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory_auth"))

	// --- Auth boundary ---
	authHandler := handler.NewAuthHandler(deps.Auth, cfg.CookieName, cfg.SecureCookies)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// authorize gates a route behind one capability; storeParam names the
	// path parameter carrying the store scope, empty for unscoped routes.
	authorize := func(capability domain.Capability, storeParam string) echo.MiddlewareFunc {
		return middleware.Authorize(deps.Guard, capability, storeParam, cfg.CookieName)
	}

	// --- Store-scoped resources ---
	storeHandler := handler.NewStoreHandler(deps.Stores)
	e.GET("/stores/:store_id/inventory", storeHandler.Overview,
		authorize(domain.CapInventoryView, "store_id"))

	// --- Administrative assignment API ---
	assignmentHandler := handler.NewAssignmentHandler(deps.Index, deps.Users, deps.Stores)
	e.PUT("/stores/:store_id/users/:user_id", assignmentHandler.Assign,
		authorize(domain.CapStoresAssign, "store_id"))
	e.DELETE("/stores/:store_id/users/:user_id", assignmentHandler.Unassign,
		authorize(domain.CapStoresAssign, "store_id"))
	e.DELETE("/users/:user_id/stores", assignmentHandler.UnassignAll,
		authorize(domain.CapStoresAssign, ""))

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
