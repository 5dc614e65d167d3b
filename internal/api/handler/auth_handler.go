package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// SocialProfileKey is the storage key of the pending social signup.
const SocialProfileKey = "social-profile"

type AuthHandler struct {
	directory ports.AuthService
	backend   ports.AuthBackend
	socialTTL time.Duration
	log       zerolog.Logger
}

// NewAuthHandler serves login from directory and answers identity
// questions through backend.
func NewAuthHandler(directory ports.AuthService, backend ports.AuthBackend, socialTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{directory: directory, backend: backend, socialTTL: socialTTL, log: log}
}

// CheckID reports whether a login id is still available.
//
// @Summary      Check login id availability
// @Tags         auth
// @Produce      json
// @Param        loginId  query     string  true  "Login id"
// @Success      200      {object}  checkIDResponse
// @Failure      400      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /api/v1/auth/check-id [get]
func (h *AuthHandler) CheckID(c echo.Context) error {
	loginID := strings.TrimSpace(c.QueryParam("loginId"))
	if loginID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "loginId is required")
	}

	available, err := h.backend.CheckLoginID(c.Request().Context(), loginID)
	if err != nil {
		h.log.Warn().Err(err).Msg("check-id failed")
		return echo.NewHTTPError(http.StatusBadGateway, "identity backend unavailable")
	}
	return c.JSON(http.StatusOK, checkIDResponse{Available: available})
}

// Login authenticates against the mock directory, stores the credential for
// the visitor and opens the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	tok, user, err := h.directory.Login(ctx, req.LoginID, req.Password)
	if err != nil {
		return err
	}

	if err := v.Tokens.Set(ctx, tok); err != nil {
		return err
	}
	stored, _ := v.Tokens.Get(ctx)
	if err := v.Session.Login(ctx, *user, stored); err != nil {
		return err
	}

	h.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Str("client_id", v.ClientID).Msg("visitor logged in")
	return c.JSON(http.StatusOK, authResponse{Token: tok, Session: v.Session.Snapshot()})
}

// Logout clears the session and the stored credential.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := v.Session.Logout(ctx); err != nil {
		return err
	}
	if err := v.Tokens.Remove(ctx); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the visitor's session together with the consistency
// check of its credential. A tampered session is cleared before replying.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	res := v.Validator.Validate(ctx)
	tampered := false
	if !res.Valid {
		tampered = v.Tamper.Handle(ctx, res)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Session:  v.Session.Snapshot(),
		Valid:    res.Valid,
		Reason:   string(res.Reason),
		Tampered: tampered,
	})
}

// PutSocialProfile keeps the profile returned by a social login until the
// signup form is submitted.
//
// @Summary      Store pending social profile
// @Tags         auth
// @Accept       json
// @Param        body  body  domain.SocialProfile  true  "Social profile"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /auth/social-profile [put]
func (h *AuthHandler) PutSocialProfile(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req domain.SocialProfile
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	b, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if err := v.Storage.Set(c.Request().Context(), SocialProfileKey, string(b), h.socialTTL); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSocialProfile returns the pending social profile, if it has not expired.
//
// @Summary      Pending social profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.SocialProfile
// @Failure      404  {object}  errorResponse
// @Router       /auth/social-profile [get]
func (h *AuthHandler) GetSocialProfile(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	raw, ok, err := v.Storage.Get(c.Request().Context(), SocialProfileKey)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no pending social profile")
	}

	var p domain.SocialProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		h.log.Warn().Err(err).Msg("discarding unreadable social profile")
		_ = v.Storage.Delete(c.Request().Context(), SocialProfileKey)
		return echo.NewHTTPError(http.StatusNotFound, "no pending social profile")
	}
	return c.JSON(http.StatusOK, p)
}

// ConfirmCustomer is the mock identity endpoint: it returns the profile
// behind the Authorization header or 401.
//
// @Summary      Confirm customer
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /customers/confirm [get]
func (h *AuthHandler) ConfirmCustomer(c echo.Context) error {
	raw := c.Request().Header.Get(echo.HeaderAuthorization)
	if raw == "" {
		return domain.ErrUnauthenticated
	}

	user, err := h.directory.ConfirmCustomer(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, user)
}
