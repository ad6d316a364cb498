package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bistroboss/bistro-api/docs"
	"github.com/bistroboss/bistro-api/internal/api/handler"
	"github.com/bistroboss/bistro-api/internal/api/middleware"
	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// Dependencies is everything NewRouter needs to serve requests.
type Dependencies struct {
	Log     zerolog.Logger
	Tokens  ports.TokenService
	Users   ports.UserService
	Catalog ports.CatalogService
	Carts   ports.CartService

	// HealthChecks are run by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Check

	AllowedOrigins    []string
	GuardUserAdminOps bool
	GuardCartWrites   bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(deps.Log))
	if len(deps.AllowedOrigins) > 0 {
		e.Use(middleware.CORS(deps.AllowedOrigins))
	}

	// --- Guards ---
	authenticate := middleware.Authenticate(deps.Tokens)
	adminOnly := middleware.Require(authenticate, middleware.RequireRole(domain.RoleAdmin, deps.Users))

	// Routes that only carry guards when the operator opts in.
	userAdminOps := middleware.Require()
	if deps.GuardUserAdminOps {
		userAdminOps = adminOnly
	}
	cartWrites := middleware.Require()
	if deps.GuardCartWrites {
		cartWrites = middleware.Require(authenticate)
	}

	tokenHandler := handler.NewTokenHandler(deps.Tokens)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	cartHandler := handler.NewCartHandler(deps.Carts)
	userHandler := handler.NewUserHandler(deps.Users)

	e.GET("/", handler.Banner)

	// --- Tokens ---
	e.POST("/token", tokenHandler.Issue)
	e.POST("/jwt", tokenHandler.Issue)

	// --- Catalog (public) ---
	e.GET("/menu", catalogHandler.Menu)
	e.GET("/reviews", catalogHandler.Reviews)

	// --- Carts ---
	e.GET("/carts", cartHandler.List,
		middleware.Require(authenticate, middleware.OptionalSelfScope(middleware.QueryParam("email"))))
	e.POST("/carts", cartHandler.Add, cartWrites)
	e.DELETE("/carts/:id", cartHandler.Remove, cartWrites)

	// --- Users ---
	users := e.Group("/users")
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Register)
	users.DELETE("/:id", userHandler.Delete, userAdminOps)
	users.PATCH("/admin/:id", userHandler.Promote, userAdminOps)
	users.GET("/admin/:email", userHandler.AdminStatus,
		middleware.Require(authenticate, middleware.SelfScope(middleware.PathParam("email"))))

	// --- Operations (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.HealthChecks).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
