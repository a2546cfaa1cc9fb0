package handler

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/dto"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/labstack/echo/v4"
)

type activityQuery struct {
	EntityType string `query:"entity_type" validate:"omitempty,oneof=event user"`
	EntityID   string `query:"entity_id" validate:"required_with=EntityType"`
	Limit      int    `query:"limit" validate:"gte=0,lte=500"`
}

// AdminHandler serves the moderation dashboard reads and the organizer
// request decisions.
type AdminHandler struct {
	events     service.EventService
	activities service.ActivityService
	users      service.UserService
	auth       auth.Provider
}

func NewAdminHandler(events service.EventService, activities service.ActivityService, users service.UserService, p auth.Provider) *AdminHandler {
	return &AdminHandler{events: events, activities: activities, users: users, auth: p}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/admin/events", h.ListEvents)
	g.GET("/admin/activities", h.ListActivities)
	g.POST("/admin/users/:id/organizer-request/approve", h.ApproveOrganizer)
	g.POST("/admin/users/:id/organizer-request/reject", h.RejectOrganizer)
}

func (h *AdminHandler) ListEvents(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	var q dto.ListQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	events, err := h.events.ListForAdmin(c.Request().Context(), actor, service.EventListFilter{
		Status: models.EventStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}

func (h *AdminHandler) ListActivities(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	var q activityQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	var acts []models.Activity
	if q.EntityType != "" {
		acts, err = h.activities.ForEntity(c.Request().Context(), actor, models.EntityType(q.EntityType), q.EntityID)
	} else {
		acts, err = h.activities.Recent(c.Request().Context(), actor, q.Limit)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToActivityResponses(acts))
}

func (h *AdminHandler) ApproveOrganizer(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	if err := h.users.ApproveOrganizer(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Organizer request approved"})
}

func (h *AdminHandler) RejectOrganizer(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	if err := h.users.RejectOrganizer(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Organizer request rejected"})
}
