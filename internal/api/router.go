package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gongcha/admin-api/internal/api/handler"
	"github.com/gongcha/admin-api/internal/api/middleware"
	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
	"github.com/gongcha/admin-api/internal/core/service"
	"github.com/gongcha/admin-api/internal/infrastructure/config"
	mongodb "github.com/gongcha/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gongcha/admin-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// All clients are constructed once here and injected by reference; no handler
// reaches for process-wide state.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gongcha_admin"))
	e.Use(middleware.Gate(middleware.GateConfig{
		LoginPath: "/login",
		HomePath:  "/dashboard",
		BypassPrefixes: []string{
			"/api/", "/health", "/metrics", "/swagger",
			"/assets/", "/static/", "/favicon.ico",
		},
	}))

	// --- Dependencies ---
	revoker := redisdb.NewSessionRevoker(rdb)
	credRepo := mongodb.NewCredentialRepository(db)
	memberRepo := mongodb.NewMemberRepository(db)
	staffRepo := mongodb.NewStaffRepository(db)
	storeRepo := mongodb.NewStoreRepository(db)
	menuRepo := mongodb.NewMenuRepository(db)

	authService := service.NewAuthService(credRepo, staffRepo, revoker, cfg.JWTSecret, cfg.SessionTTL, log)
	memberService := service.NewMemberService(memberRepo, credRepo, audit, log)
	staffService := service.NewStaffService(staffRepo, credRepo, revoker, audit, log)
	storeService := service.NewStoreService(storeRepo, log)
	menuService := service.NewMenuService(menuRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Production())
	memberHandler := handler.NewMemberHandler(memberService)
	staffHandler := handler.NewStaffHandler(staffService)
	storeHandler := handler.NewStoreHandler(storeService)
	menuHandler := handler.NewMenuHandler(menuService)

	session := middleware.Session(cfg.JWTSecret, revoker)

	// --- Public auth routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/session", authHandler.CreateSession)

	// --- Authenticated API ---
	api := e.Group("/api", session)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/setup-user", staffHandler.SetupUser)
	api.POST("/setup-user", staffHandler.SetupUser)

	members := api.Group("/members", middleware.RBAC(domain.RoleAdmin, domain.RoleMaster, domain.RoleManager, domain.RoleStoreManager))
	members.GET("", memberHandler.List)
	members.GET("/:uid", memberHandler.Get)
	members.PATCH("/:uid", memberHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleMaster, domain.RoleManager))
	members.DELETE("/:uid", memberHandler.Delete, middleware.RBAC(domain.RoleAdmin, domain.RoleMaster))
	members.PATCH("/:uid/points", memberHandler.EditPoints, middleware.RBAC(domain.RoleAdmin, domain.RoleMaster))
	members.POST("/:uid/vouchers", memberHandler.GrantVoucher, middleware.RBAC(domain.RoleAdmin, domain.RoleMaster))

	staff := api.Group("/staff", middleware.RBAC(domain.RoleAdmin, domain.RoleMaster))
	staff.GET("", staffHandler.List)
	staff.POST("", staffHandler.Create)
	staff.PATCH("/:uid", staffHandler.Update)
	staff.DELETE("/:uid", staffHandler.Delete)

	anyStaff := middleware.RBAC(domain.RoleAdmin, domain.RoleMaster, domain.RoleManager, domain.RoleStoreManager, domain.RoleCashier)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleMaster)

	stores := api.Group("/stores")
	stores.GET("", storeHandler.List, anyStaff)
	stores.GET("/:id", storeHandler.Get, anyStaff)
	stores.POST("", storeHandler.Create, adminOnly)
	stores.PATCH("/:id", storeHandler.Update, adminOnly)

	menu := api.Group("/menu")
	menu.GET("", menuHandler.List, anyStaff)
	menu.GET("/:id", menuHandler.Get, anyStaff)
	menu.POST("", menuHandler.Create, adminOnly)
	menu.PATCH("/:id", menuHandler.Update, adminOnly)
	menu.DELETE("/:id", menuHandler.Delete, adminOnly)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
