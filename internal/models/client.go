package models

import "time"

// Client - клиент-владелец заказов.
type Client struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientRequest - запрос на создание клиента. Пароль необязателен:
// если он задан, для клиента создаётся учётная запись.
type CreateClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}
