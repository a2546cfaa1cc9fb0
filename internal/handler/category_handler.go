package handler

import (
	"net/http"

	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/dto"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	svc  service.CategoryService
	auth auth.Provider
}

func NewCategoryHandler(svc service.CategoryService, p auth.Provider) *CategoryHandler {
	return &CategoryHandler{svc: svc, auth: p}
}

func (h *CategoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.ListCategories)
	g.POST("/admin/categories", h.CreateCategory)
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	cats, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToCategoryResponses(cats))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	actor, err := h.auth.RequireRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	var req dto.CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.svc.Create(c.Request().Context(), req.Name, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToCategoryResponses([]models.Category{*cat})[0])
}
