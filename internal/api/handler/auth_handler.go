package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// AuthHandler serves the login boundary: /login, /logout and /session.
type AuthHandler struct {
	authService   ports.AuthService
	cookieName    string
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, cookieName string, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Login authenticates a user and issues a session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(session.Token, session.ExpiresAt))
	return c.JSON(http.StatusOK, loginResponse{User: user, ExpiresAt: session.ExpiresAt})
}

// Logout revokes the presented session. Always 200, even when the cookie is
// missing or the token already dead.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	// Expire the cookie client-side regardless of token state.
	c.SetCookie(h.clearedCookie())
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Session returns the authenticated identity and resolved permission summary.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.SessionSummary
// @Failure      401  {object}  map[string]string
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return domain.ErrSessionInvalid
	}

	summary, err := h.authService.Summary(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
