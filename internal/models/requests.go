package models

import "github.com/shopspring/decimal"

// OrderInput - данные для создания заказа. Пустой InternalRef означает,
// что номер будет сгенерирован.
type OrderInput struct {
	InternalRef     string          `json:"internal_ref,omitempty"`
	ClientID        string          `json:"client_id" validate:"required"`
	Status          OrderStatus     `json:"status,omitempty" validate:"omitempty,oneof=pickup warehouse delivered"`
	PickupAddress   Address         `json:"pickup_address"`
	ReceiverAddress *Address        `json:"receiver_address,omitempty"`
	CollectionDate  Date            `json:"collection_date"`
	ReceiverName    string          `json:"receiver_name" validate:"required"`
	ReceiverPhone   string          `json:"receiver_phone"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Packages        []PackageInput  `json:"packages" validate:"dive"`
	Photos          []string        `json:"photos,omitempty"`
}

// PackageInput - данные нового места груза.
type PackageInput struct {
	ClientRef  string  `json:"client_ref"`
	Dimensions string  `json:"dimensions"`
	WeightKg   float64 `json:"weight_kg" validate:"gte=0"`
	Colli      int     `json:"colli" validate:"gte=0"`
}

// SetStatusRequest - запрос на смену статуса заказа.
type SetStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pickup warehouse delivered"`
}

// AddPhotoRequest - запрос на добавление фотографии к заказу.
type AddPhotoRequest struct {
	URI string `json:"uri" validate:"required"`
}
