package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/api/metrics"
	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// MenuHandler handles HTTP requests for menu items. Payloads are arbitrary
// attribute bags; only reserved identity/timestamp keys are enforced.
type MenuHandler struct {
	service ports.MenuService
}

func NewMenuHandler(service ports.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// Create handles POST /api/menu.
//
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]interface{}  true  "Item attributes"
// @Success      201  {object}  domain.MenuItem
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/menu [post]
func (h *MenuHandler) Create(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	var attrs map[string]any
	if err := c.Bind(&attrs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(attrs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty payload")
	}

	item, err := h.service.CreateItem(c.Request().Context(), attrs)
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("menu", "create").Inc()
	return c.JSON(http.StatusCreated, item)
}

// Update handles PATCH /api/menu/:id.
//
// @Summary      Patch menu item attributes
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Item id"
// @Param        body  body  map[string]interface{}  true  "Attributes to update"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/menu/{id} [patch]
func (h *MenuHandler) Update(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	var attrs map[string]any
	if err := c.Bind(&attrs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateItem(c.Request().Context(), c.Param("id"), attrs); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("menu", "update").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/menu/:id.
//
// @Summary      Delete a menu item
// @Tags         menu
// @Produce      json
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/menu/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	if err := h.service.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("menu", "delete").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Get handles GET /api/menu/:id.
//
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  domain.MenuItem
// @Failure      404  {object}  map[string]string
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) Get(c echo.Context) error {
	item, err := h.service.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// List handles GET /api/menu.
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /api/menu [get]
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
