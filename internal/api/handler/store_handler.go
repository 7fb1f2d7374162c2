package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/api/metrics"
	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// StoreHandler handles HTTP requests for store records.
type StoreHandler struct {
	service ports.StoreService
}

func NewStoreHandler(service ports.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

type createStoreRequest struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Address        string   `json:"address"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	OpenHours      string   `json:"openHours"`
	StatusOverride string   `json:"statusOverride"`
}

// updateStoreRequest is the allow-listed store patch; the id is immutable
// and deliberately absent.
type updateStoreRequest struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	OpenHours      *string  `json:"openHours"`
	StatusOverride *string  `json:"statusOverride"`
	IsActive       *bool    `json:"isActive"`
}

// Create handles POST /api/stores.
//
// @Summary      Create a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        body  body  createStoreRequest  true  "Store details"
// @Success      201  {object}  domain.Store
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.service.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		ID:             req.ID,
		Name:           req.Name,
		Address:        req.Address,
		Lat:            req.Lat,
		Lng:            req.Lng,
		OpenHours:      req.OpenHours,
		StatusOverride: req.StatusOverride,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("store", "create").Inc()
	return c.JSON(http.StatusCreated, store)
}

// Update handles PATCH /api/stores/:id.
//
// @Summary      Patch store fields
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Store id"
// @Param        body  body  updateStoreRequest  true  "Fields to update"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/stores/{id} [patch]
func (h *StoreHandler) Update(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.UpdateStore(c.Request().Context(), ports.UpdateStoreInput{
		ID:             c.Param("id"),
		Name:           req.Name,
		Address:        req.Address,
		Lat:            req.Lat,
		Lng:            req.Lng,
		OpenHours:      req.OpenHours,
		StatusOverride: req.StatusOverride,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("store", "update").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Get handles GET /api/stores/:id.
//
// @Summary      Get a store
// @Tags         stores
// @Produce      json
// @Param        id  path  string  true  "Store id"
// @Success      200  {object}  domain.Store
// @Failure      404  {object}  map[string]string
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) Get(c echo.Context) error {
	store, err := h.service.GetStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// List handles GET /api/stores.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Success      200  {array}  domain.Store
// @Router       /api/stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.service.ListStores(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}
