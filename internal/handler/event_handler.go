package handler

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/dto"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc  service.EventService
	auth auth.Provider
}

func NewEventHandler(svc service.EventService, p auth.Provider) *EventHandler {
	return &EventHandler{svc: svc, auth: p}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events", h.CreateEvent)
	g.GET("/events", h.ListEvents)
	g.GET("/events/slug/:slug", h.GetEventBySlug)
	g.GET("/events/:id", h.GetEvent)
	g.PATCH("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
	g.POST("/events/:id/publish", h.PublishEvent)
	g.POST("/events/:id/reject", h.RejectEvent)
	g.POST("/events/:id/cancel", h.CancelEvent)
	g.GET("/me/events", h.ListMyEvents)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	var in service.EventInput
	if err := bind(c, &in); err != nil {
		return err
	}

	event, err := h.svc.Create(c.Request().Context(), in, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	var in service.EventInput
	if err := bind(c, &in); err != nil {
		return err
	}

	event, err := h.svc.Update(c.Request().Context(), c.Param("id"), in, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) PublishEvent(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	if err := h.svc.Publish(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event published"})
}

func (h *EventHandler) RejectEvent(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	var req dto.RejectEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.Reject(c.Request().Context(), c.Param("id"), req.Reason, actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event rejected"})
}

func (h *EventHandler) CancelEvent(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	if err := h.svc.Cancel(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event cancelled"})
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.svc.Get(c.Request().Context(), c.Param("id"), viewer(h.auth, c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEventBySlug(c echo.Context) error {
	event, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"), viewer(h.auth, c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	var q dto.ListQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	events, err := h.svc.ListPublished(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}

func (h *EventHandler) ListMyEvents(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	events, err := h.svc.ListForOrganizer(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}
