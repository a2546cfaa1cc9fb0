package main

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/handler"
	"github.com/Kusalkumar06/eventia/internal/middleware"
	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/Kusalkumar06/eventia/pkg/validator"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type app struct {
	events        service.EventService
	registrations service.RegistrationService
	users         service.UserService
	activities    service.ActivityService
	categories    service.CategoryService
}

func newApp(db *gorm.DB, notifier service.Notifier, cache service.CacheInvalidator, log *zerolog.Logger) *app {
	// Repositories
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	activitySvc := service.NewActivityService(activityRepo, log)
	deps := service.Deps{
		Events:        eventRepo,
		Registrations: registrationRepo,
		Users:         userRepo,
		Categories:    categoryRepo,
		Activities:    activitySvc,
		Notifier:      notifier,
		Cache:         cache,
		Log:           log,
	}
	return &app{
		events:        service.NewEventService(deps),
		registrations: service.NewRegistrationService(deps),
		users:         service.NewUserService(deps),
		activities:    activitySvc,
		categories:    service.NewCategoryService(categoryRepo, log),
	}
}

func newServer(a *app, jwt *auth.JWTProvider, log *zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(log)
	e.Validator = validator.EchoValidator{}
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())
	e.Use(jwt.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "eventia"})
	})

	api := e.Group("/api/v1")
	handler.NewEventHandler(a.events, jwt).RegisterRoutes(api)
	handler.NewRegistrationHandler(a.registrations, jwt).RegisterRoutes(api)
	handler.NewAdminHandler(a.events, a.activities, a.users, jwt).RegisterRoutes(api)
	handler.NewUserHandler(a.users, a.activities, jwt).RegisterRoutes(api)
	handler.NewCategoryHandler(a.categories, jwt).RegisterRoutes(api)
	return e
}
