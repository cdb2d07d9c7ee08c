package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/agamariel/transsupply/internal/auth"
	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler обрабатывает вход и данные текущего пользователя.
type UserHandler struct {
	userService     services.UserService
	tokenExpiration time.Duration
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(userService services.UserService, tokenExpiration time.Duration) *UserHandler {
	return &UserHandler{
		userService:     userService,
		tokenExpiration: tokenExpiration,
	}
}

// Login обрабатывает POST /api/auth/login.
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return serviceError(c, err, "failed to login user")
	}

	h.setAuthToken(c, token)

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		Principal: user.Principal(),
	})
}

// Me обрабатывает GET /api/me.
func (h *UserHandler) Me(c echo.Context) error {
	p, err := auth.GetPrincipalFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// setAuthToken устанавливает токен в cookie и заголовок ответа.
func (h *UserHandler) setAuthToken(c echo.Context, token string) {
	maxAge := int(h.tokenExpiration.Seconds())
	if maxAge <= 0 {
		maxAge = 86400
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})

	c.Response().Header().Set("Authorization", "Bearer "+token)
}
