package auth

import (
	"net/http"
	"strings"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/labstack/echo/v4"
)

// ContextKey - тип для ключей контекста.
type ContextKey string

const (
	// PrincipalKey - ключ для хранения участника сессии в контексте.
	PrincipalKey ContextKey = "principal"
)

// CookieName - имя cookie с токеном.
const CookieName = "Authorization"

// JWTMiddleware создаёт middleware для проверки JWT токена.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractTokenFromHeader(c)

			if token == "" {
				token = extractTokenFromCookie(c)
			}

			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}

			claims, err := ValidateToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(string(PrincipalKey), claims.Principal())

			return next(c)
		}
	}
}

// RequireRole пропускает только участников с одной из указанных ролей.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := GetPrincipalFromContext(c)
			if err != nil {
				return err
			}
			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

// extractTokenFromHeader извлекает токен из заголовка Authorization.
func extractTokenFromHeader(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Проверка формата "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}

	return ""
}

// extractTokenFromCookie извлекает токен из cookie.
func extractTokenFromCookie(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetPrincipalFromContext извлекает участника сессии из контекста.
func GetPrincipalFromContext(c echo.Context) (models.Principal, error) {
	p, ok := c.Get(string(PrincipalKey)).(models.Principal)
	if !ok {
		return models.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}
	return p, nil
}
