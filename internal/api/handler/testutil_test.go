package handler_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gongcha/admin-api/internal/api"
	"github.com/gongcha/admin-api/internal/api/handler"
	"github.com/gongcha/admin-api/internal/core/domain"
	"github.com/gongcha/admin-api/internal/core/ports"
)

// newEcho builds an Echo instance with the production validator and error
// handler wired in, so handler tests observe the real response envelopes.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func newContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asIdentity injects the context values the session middleware would set.
func asIdentity(c echo.Context, uid, role string) {
	c.Set("uid", uid)
	c.Set("role", role)
	c.Set("email", uid+"@gongcha.id")
	c.Set("sid", "sid-"+uid)
}

// run invokes a handler and routes any returned error through the central
// error handler, the way the framework does in production.
func run(t *testing.T, e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	t.Helper()
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

// Stub services. Each method delegates to an optional function field; tests
// only set the fields they exercise.

type authServiceStub struct {
	loginFn         func(ctx context.Context, email, password string) (string, error)
	createSessionFn func(ctx context.Context, idToken string) (*ports.SessionResult, error)
	logoutFn        func(ctx context.Context, sid string) error
}

func (s *authServiceStub) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *authServiceStub) CreateSession(ctx context.Context, idToken string) (*ports.SessionResult, error) {
	return s.createSessionFn(ctx, idToken)
}

func (s *authServiceStub) Logout(ctx context.Context, sid string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, sid)
}

type memberServiceStub struct {
	getFn    func(ctx context.Context, uid string) (*domain.Member, error)
	listFn   func(ctx context.Context, in ports.ListMembersInput) (*ports.ListMembersResult, error)
	updateFn func(ctx context.Context, in ports.UpdateMemberInput) error
	pointsFn func(ctx context.Context, in ports.EditPointsInput) error
	grantFn  func(ctx context.Context, in ports.GrantVoucherInput) (*domain.Voucher, error)
	deleteFn func(ctx context.Context, uid string, actor ports.Identity) error
}

func (s *memberServiceStub) GetMember(ctx context.Context, uid string) (*domain.Member, error) {
	return s.getFn(ctx, uid)
}

func (s *memberServiceStub) ListMembers(ctx context.Context, in ports.ListMembersInput) (*ports.ListMembersResult, error) {
	return s.listFn(ctx, in)
}

func (s *memberServiceStub) UpdateMember(ctx context.Context, in ports.UpdateMemberInput) error {
	return s.updateFn(ctx, in)
}

func (s *memberServiceStub) EditPoints(ctx context.Context, in ports.EditPointsInput) error {
	return s.pointsFn(ctx, in)
}

func (s *memberServiceStub) GrantVoucher(ctx context.Context, in ports.GrantVoucherInput) (*domain.Voucher, error) {
	return s.grantFn(ctx, in)
}

func (s *memberServiceStub) DeleteMember(ctx context.Context, uid string, actor ports.Identity) error {
	return s.deleteFn(ctx, uid, actor)
}

type staffServiceStub struct {
	createFn func(ctx context.Context, in ports.CreateStaffInput) (*domain.Staff, error)
	updateFn func(ctx context.Context, in ports.UpdateStaffInput) error
	deleteFn func(ctx context.Context, uid string, actor ports.Identity) error
	listFn   func(ctx context.Context) ([]*domain.Staff, error)
	setupFn  func(ctx context.Context, identity ports.Identity, name string) (*domain.Staff, bool, error)
}

func (s *staffServiceStub) CreateStaff(ctx context.Context, in ports.CreateStaffInput) (*domain.Staff, error) {
	return s.createFn(ctx, in)
}

func (s *staffServiceStub) UpdateStaff(ctx context.Context, in ports.UpdateStaffInput) error {
	return s.updateFn(ctx, in)
}

func (s *staffServiceStub) DeleteStaff(ctx context.Context, uid string, actor ports.Identity) error {
	return s.deleteFn(ctx, uid, actor)
}

func (s *staffServiceStub) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	return s.listFn(ctx)
}

func (s *staffServiceStub) SetupUser(ctx context.Context, identity ports.Identity, name string) (*domain.Staff, bool, error) {
	return s.setupFn(ctx, identity, name)
}
