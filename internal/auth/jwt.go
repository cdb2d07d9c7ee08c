package auth

import (
	"errors"
	"time"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims содержит информацию об участнике сессии в JWT токене.
type Claims struct {
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	Name     string      `json:"name,omitempty"`
	Role     models.Role `json:"role"`
	ClientID string      `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

var (
	// ErrInvalidToken возвращается при невалидном токене.
	ErrInvalidToken = errors.New("invalid token")
)

// Principal восстанавливает участника сессии из claims.
func (c *Claims) Principal() models.Principal {
	return models.Principal{
		UserID:   c.UserID,
		Email:    c.Email,
		Name:     c.Name,
		Role:     c.Role,
		ClientID: c.ClientID,
	}
}

// GenerateToken генерирует JWT токен для участника сессии.
func GenerateToken(p models.Principal, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   p.UserID,
		Email:    p.Email,
		Name:     p.Name,
		Role:     p.Role,
		ClientID: p.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken валидирует JWT токен и возвращает claims.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверка метода подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Клиентская сессия без привязки к клиенту ничего не должна видеть.
	if !claims.Role.IsValid() || (claims.Role == models.RoleClient && claims.ClientID == "") {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
