package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/api/metrics"
	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// StaffHandler handles HTTP requests for staff accounts.
type StaffHandler struct {
	service ports.StaffService
}

func NewStaffHandler(service ports.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

type createStaffRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required"`
	Role            string   `json:"role" validate:"required"`
	StoreLocation   string   `json:"storeLocation"`
	StoreLocations  []string `json:"storeLocations"`
	AccessAllStores bool     `json:"accessAllStores"`
}

// updateStaffRequest is the allow-listed staff patch: exactly these six
// fields are writable, everything else in the payload is dropped by binding.
type updateStaffRequest struct {
	Name            *string   `json:"name"`
	Role            *string   `json:"role"`
	IsActive        *bool     `json:"isActive"`
	StoreLocation   *string   `json:"storeLocation"`
	StoreLocations  *[]string `json:"storeLocations"`
	AccessAllStores *bool     `json:"accessAllStores"`
}

type setupUserRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/staff: credential account plus staff document.
//
// @Summary      Create a staff account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body  createStaffRequest  true  "Staff details"
// @Success      201  {object}  domain.Staff
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/staff [post]
func (h *StaffHandler) Create(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	staff, err := h.service.CreateStaff(c.Request().Context(), ports.CreateStaffInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		StoreLocation:   req.StoreLocation,
		StoreLocations:  req.StoreLocations,
		AccessAllStores: req.AccessAllStores,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("staff", "create").Inc()
	return c.JSON(http.StatusCreated, staff)
}

// Update handles PATCH /api/staff/:uid.
//
// @Summary      Patch staff fields
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        uid   path  string              true  "Staff uid"
// @Param        body  body  updateStaffRequest  true  "Fields to update"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/staff/{uid} [patch]
func (h *StaffHandler) Update(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster); err != nil {
		return err
	}

	var req updateStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.UpdateStaff(c.Request().Context(), ports.UpdateStaffInput{
		UID:             c.Param("uid"),
		Name:            req.Name,
		Role:            req.Role,
		IsActive:        req.IsActive,
		StoreLocation:   req.StoreLocation,
		StoreLocations:  req.StoreLocations,
		AccessAllStores: req.AccessAllStores,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("staff", "update").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/staff/:uid.
//
// @Summary      Delete a staff account
// @Tags         staff
// @Produce      json
// @Param        uid  path  string  true  "Staff uid"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/staff/{uid} [delete]
func (h *StaffHandler) Delete(c echo.Context) error {
	identity, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster)
	if err != nil {
		return err
	}

	if err := h.service.DeleteStaff(c.Request().Context(), c.Param("uid"), identity); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("staff", "delete").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// List handles GET /api/staff.
//
// @Summary      List staff accounts
// @Tags         staff
// @Produce      json
// @Success      200  {array}  domain.Staff
// @Router       /api/staff [get]
func (h *StaffHandler) List(c echo.Context) error {
	staff, err := h.service.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}

// SetupUser handles GET|POST /api/setup-user: registers the authenticated
// identity into the staff collection if absent.
//
// @Summary      Self-register the authenticated identity as staff
// @Tags         staff
// @Produce      json
// @Success      200  {object}  domain.Staff
// @Success      201  {object}  domain.Staff
// @Failure      401  {object}  map[string]string
// @Router       /api/setup-user [post]
func (h *StaffHandler) SetupUser(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req setupUserRequest
	if c.Request().Method == http.MethodPost {
		_ = c.Bind(&req) // body optional
	}

	staff, created, err := h.service.SetupUser(c.Request().Context(), identity, req.Name)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		metrics.RecordWritesTotal.WithLabelValues("staff", "create").Inc()
	}
	return c.JSON(status, staff)
}
