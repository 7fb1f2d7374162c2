package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gongcha/admin-api/internal/api/metrics"
	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// MemberHandler handles HTTP requests for loyalty member records.
type MemberHandler struct {
	service ports.MemberService
}

func NewMemberHandler(service ports.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// updateMemberRequest is the allow-listed member patch. Unknown JSON fields
// are dropped by binding; nil means "leave unchanged".
type updateMemberRequest struct {
	Name        *string `json:"name"`
	Tier        *string `json:"tier"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        *string `json:"role"`
}

type editPointsRequest struct {
	CurrentPoints  *int64 `json:"currentPoints" validate:"required"`
	LifetimePoints *int64 `json:"lifetimePoints" validate:"required"`
}

type grantVoucherRequest struct {
	RewardID  string    `json:"rewardId" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Code      string    `json:"code" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=personal general"`
	ExpiresAt time.Time `json:"expiresAt" validate:"required"`
}

type listMembersResponse struct {
	Items      []*domain.Member `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List handles GET /api/members.
//
// @Summary      List members
// @Tags         members
// @Produce      json
// @Param        tier    query  string  false  "Filter by tier"
// @Param        search  query  string  false  "Partial match on name or phone"
// @Param        page    query  int     false  "Page (1-based)"
// @Param        limit   query  int     false  "Page size (max 100)"
// @Success      200  {object}  listMembersResponse
// @Router       /api/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	var page, limit int
	echo.QueryParamsBinder(c).Int("page", &page).Int("limit", &limit)

	result, err := h.service.ListMembers(c.Request().Context(), ports.ListMembersInput{
		Tier:   c.QueryParam("tier"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listMembersResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /api/members/:uid.
//
// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Param        uid  path  string  true  "Member uid"
// @Success      200  {object}  domain.Member
// @Failure      404  {object}  map[string]string
// @Router       /api/members/{uid} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	member, err := h.service.GetMember(c.Request().Context(), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Update handles PATCH /api/members/:uid. Authorization derives from the
// session identity only; no caller-supplied admin id is accepted.
//
// @Summary      Patch member fields
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        uid   path  string               true  "Member uid"
// @Param        body  body  updateMemberRequest  true  "Fields to update"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/members/{uid} [patch]
func (h *MemberHandler) Update(c echo.Context) error {
	if _, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster, domain.RoleManager); err != nil {
		return err
	}

	var req updateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.UpdateMember(c.Request().Context(), ports.UpdateMemberInput{
		UID:         c.Param("uid"),
		Name:        req.Name,
		Tier:        req.Tier,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("member", "update").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// EditPoints handles PATCH /api/members/:uid/points. Admin only; the editor
// uid is stamped onto the document as an audit trail.
//
// @Summary      Edit a member's point balances
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        uid   path  string             true  "Member uid"
// @Param        body  body  editPointsRequest  true  "New balances"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/members/{uid}/points [patch]
func (h *MemberHandler) EditPoints(c echo.Context) error {
	identity, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster)
	if err != nil {
		return err
	}

	var req editPointsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.EditPoints(c.Request().Context(), ports.EditPointsInput{
		UID:            c.Param("uid"),
		CurrentPoints:  *req.CurrentPoints,
		LifetimePoints: *req.LifetimePoints,
		Editor:         identity,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("member", "points").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// GrantVoucher handles POST /api/members/:uid/vouchers.
//
// @Summary      Grant a voucher to a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        uid   path  string               true  "Member uid"
// @Param        body  body  grantVoucherRequest  true  "Voucher details"
// @Success      201  {object}  domain.Voucher
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/members/{uid}/vouchers [post]
func (h *MemberHandler) GrantVoucher(c echo.Context) error {
	identity, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster)
	if err != nil {
		return err
	}

	var req grantVoucherRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	voucher, err := h.service.GrantVoucher(c.Request().Context(), ports.GrantVoucherInput{
		UID:       c.Param("uid"),
		RewardID:  req.RewardID,
		Title:     req.Title,
		Code:      req.Code,
		Type:      req.Type,
		ExpiresAt: req.ExpiresAt,
		Actor:     identity,
	})
	if err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("member", "voucher").Inc()
	return c.JSON(http.StatusCreated, voucher)
}

// Delete handles DELETE /api/members/:uid.
//
// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Param        uid  path  string  true  "Member uid"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/members/{uid} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	identity, err := requireRole(c, domain.RoleAdmin, domain.RoleMaster)
	if err != nil {
		return err
	}

	if err := h.service.DeleteMember(c.Request().Context(), c.Param("uid"), identity); err != nil {
		return err
	}

	metrics.RecordWritesTotal.WithLabelValues("member", "delete").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
