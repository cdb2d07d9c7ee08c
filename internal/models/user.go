package models

import (
	"time"
)

// Role - роль пользователя в системе.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// IsValid сообщает, известна ли роль.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleClient
}

// User представляет учётную запись для входа.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	ClientID     string    `db:"client_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// Principal - участник сессии. Определяет видимость заказов.
type Principal struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     Role   `json:"role"`
	ClientID string `json:"client_id,omitempty"`
}

// IsAdmin сообщает, есть ли у участника полный доступ.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Principal строит участника сессии по учётной записи.
func (u *User) Principal() Principal {
	return Principal{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		ClientID: u.ClientID,
	}
}

// LoginRequest - запрос на аутентификацию пользователя.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ на успешный вход.
type LoginResponse struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
}
