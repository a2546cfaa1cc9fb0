package handler

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/dto"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	svc  service.RegistrationService
	auth auth.Provider
}

func NewRegistrationHandler(svc service.RegistrationService, p auth.Provider) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, auth: p}
}

func (h *RegistrationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events/:id/registrations", h.Register)
	g.DELETE("/events/:id/registrations", h.Unregister)
	g.GET("/events/:id/registrations", h.ListForEvent)
	g.GET("/me/registrations", h.ListMine)
}

func (h *RegistrationHandler) Register(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	reg, err := h.svc.Register(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) Unregister(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	if err := h.svc.Unregister(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RegistrationHandler) ListForEvent(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	regs, err := h.svc.ListForEvent(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponses(regs))
}

func (h *RegistrationHandler) ListMine(c echo.Context) error {
	actor, err := h.auth.RequireAuthenticated(c)
	if err != nil {
		return err
	}
	regs, err := h.svc.ListForUser(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponses(regs))
}
