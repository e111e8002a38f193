package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/stmarks-parish/parish-cms/docs"
	"github.com/stmarks-parish/parish-cms/internal/api/handler"
	"github.com/stmarks-parish/parish-cms/internal/api/middleware"
	"github.com/stmarks-parish/parish-cms/internal/core/domain"
	"github.com/stmarks-parish/parish-cms/internal/core/ports"
	"github.com/stmarks-parish/parish-cms/internal/core/service"
	mongodb "github.com/stmarks-parish/parish-cms/internal/infrastructure/db/mongo"
	redisinfra "github.com/stmarks-parish/parish-cms/internal/infrastructure/db/redis"
	"github.com/stmarks-parish/parish-cms/internal/pkg/config"
)

// Deps carries the externally constructed resources the router wires into
// services and handlers.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	DB       *mongo.Database
	Redis    *redis.Client
	Files    ports.FileStore
	Calendar ports.CalendarClient
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("parish"))

	// --- Repositories ---
	staffRepo := mongodb.NewStaffRepository(d.DB)
	memberRepo := mongodb.NewMemberRepository(d.DB)
	announcementRepo := mongodb.NewAnnouncementRepository(d.DB)
	bulletinRepo := mongodb.NewBulletinRepository(d.DB)
	eventRepo := mongodb.NewEventRepository(d.DB)
	subscriberRepo := mongodb.NewSubscriberRepository(d.DB)
	cache := redisinfra.NewContentCache(d.Redis)

	// --- Services ---
	tokens := service.NewTokenService(d.Config.StaffJWTSecret, d.Config.MemberJWTSecret)
	authService := service.NewAuthService(staffRepo, tokens, d.Config.SetupSecret, d.Log)
	memberService := service.NewMemberService(memberRepo, tokens, d.Log)
	announcementService := service.NewAnnouncementService(announcementRepo, cache, d.Log)
	bulletinService := service.NewBulletinService(bulletinRepo, d.Files, cache, d.Log)
	eventService := service.NewEventService(eventRepo, d.Calendar, d.Log)
	subscriberService := service.NewSubscriberService(subscriberRepo, d.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	bulletinHandler := handler.NewBulletinHandler(bulletinService)
	eventHandler := handler.NewEventHandler(eventService)
	subscriberHandler := handler.NewSubscriberHandler(subscriberService)

	staffAuth := middleware.Authenticate(tokens, authService, domain.AudienceStaff)
	memberAuth := middleware.Authenticate(tokens, memberService, domain.AudienceMember)

	// --- Public routes ---
	e.POST("/api/setup", authHandler.Setup)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/members/register", memberHandler.Register)
	e.POST("/api/members/login", memberHandler.Login)

	e.GET("/api/announcements/active", announcementHandler.GetActive)
	e.GET("/api/bulletins/current", bulletinHandler.GetCurrent)
	e.GET("/api/bulletins/:id/file", bulletinHandler.Download)
	e.GET("/api/events", eventHandler.ListUpcoming)

	e.POST("/api/subscribe", subscriberHandler.Subscribe)
	e.POST("/api/unsubscribe/:token", subscriberHandler.Unsubscribe)

	// --- Staff routes ---
	staff := e.Group("/api", staffAuth)
	staff.GET("/auth/me", authHandler.Me)
	staff.POST("/auth/change-password", authHandler.ChangePassword)
	staff.POST("/auth/users", authHandler.CreateUser, middleware.RequireAdmin)

	staff.GET("/announcements", announcementHandler.List, middleware.RequireModerator)
	staff.POST("/announcements", announcementHandler.Create, middleware.RequireModerator)
	staff.PUT("/announcements/:id", announcementHandler.Update, middleware.RequireModerator)
	staff.POST("/announcements/:id/activate", announcementHandler.Activate, middleware.RequireModerator)
	staff.POST("/announcements/:id/deactivate", announcementHandler.Deactivate, middleware.RequireModerator)
	staff.DELETE("/announcements/:id", announcementHandler.Delete, middleware.RequireModerator)

	staff.GET("/bulletins", bulletinHandler.List, middleware.RequireModerator)
	staff.POST("/bulletins", bulletinHandler.Upload, middleware.RequireModerator)
	staff.POST("/bulletins/:id/activate", bulletinHandler.Activate, middleware.RequireModerator)
	staff.POST("/bulletins/:id/deactivate", bulletinHandler.Deactivate, middleware.RequireModerator)
	staff.DELETE("/bulletins/:id", bulletinHandler.Delete, middleware.RequireModerator)

	staff.POST("/events", eventHandler.Create, middleware.RequireModerator)
	staff.PUT("/events/:id", eventHandler.Update, middleware.RequireModerator)
	staff.DELETE("/events/:id", eventHandler.Delete, middleware.RequireModerator)
	staff.POST("/events/sync", eventHandler.Sync, middleware.RequireAdmin)

	staff.GET("/subscribers", subscriberHandler.List, middleware.RequireAdmin)

	// --- Member routes ---
	member := e.Group("/api/members", memberAuth)
	member.GET("/me", memberHandler.Me)
	member.PUT("/me", memberHandler.UpdateProfile)
	member.DELETE("/me", memberHandler.Deactivate)
	member.POST("/change-password", memberHandler.ChangePassword)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
