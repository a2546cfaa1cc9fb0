package handler

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/dto"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc        service.UserService
	activities service.ActivityService
	auth       auth.Provider
}

func NewUserHandler(svc service.UserService, activities service.ActivityService, p auth.Provider) *UserHandler {
	return &UserHandler{svc: svc, activities: activities, auth: p}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/me/organizer-request", h.RequestOrganizer)
	g.GET("/me/activities", h.ListMyActivities)
}

func (h *UserHandler) RequestOrganizer(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	if err := h.svc.RequestOrganizer(c.Request().Context(), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Organizer request submitted"})
}

// ListMyActivities returns the caller's own audit entries, newest first.
func (h *UserHandler) ListMyActivities(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	acts, err := h.activities.ForActor(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToActivityResponses(acts))
}
