package models

import (
	"errors"
	"fmt"
)

// OrderStatus описывает этап жизненного цикла заказа.
type OrderStatus string

const (
	OrderStatusPickup    OrderStatus = "pickup"
	OrderStatusWarehouse OrderStatus = "warehouse"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ErrUnknownStatus возвращается при разборе неизвестного статуса.
var ErrUnknownStatus = errors.New("unknown order status")

// StatusStep - шаг конвейера статусов с метаданными для отображения.
type StatusStep struct {
	Status      OrderStatus `json:"status"`
	Index       int         `json:"index"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Progress    float64     `json:"progress"`
}

// pipeline задаёт линейный порядок статусов: pickup → warehouse → delivered.
var pipeline = []OrderStatus{
	OrderStatusPickup,
	OrderStatusWarehouse,
	OrderStatusDelivered,
}

var statusMeta = map[OrderStatus]struct{ label, description string }{
	OrderStatusPickup:    {"Pickup", "Scheduled for collection"},
	OrderStatusWarehouse: {"Warehouse", "Received at hub"},
	OrderStatusDelivered: {"Delivered", "Successfully delivered"},
}

// Pipeline возвращает все шаги конвейера по порядку.
func Pipeline() []StatusStep {
	steps := make([]StatusStep, 0, len(pipeline))
	for _, s := range pipeline {
		steps = append(steps, StatusStep{
			Status:      s,
			Index:       s.Index(),
			Label:       s.Label(),
			Description: s.Description(),
			Progress:    s.Progress(),
		})
	}
	return steps
}

// ParseOrderStatus разбирает строку в статус.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid сообщает, входит ли статус в конвейер.
func (s OrderStatus) IsValid() bool {
	return s.Index() >= 0
}

// Index возвращает позицию статуса в конвейере или -1.
func (s OrderStatus) Index() int {
	for i, p := range pipeline {
		if p == s {
			return i
		}
	}
	return -1
}

// Progress возвращает долю пройденного пути: (index+1)/len(pipeline).
func (s OrderStatus) Progress() float64 {
	idx := s.Index()
	if idx < 0 {
		return 0
	}
	return float64(idx+1) / float64(len(pipeline))
}

// IsTerminal сообщает, является ли статус последним в конвейере.
func (s OrderStatus) IsTerminal() bool {
	return s == pipeline[len(pipeline)-1]
}

func (s OrderStatus) Label() string {
	return statusMeta[s].label
}

func (s OrderStatus) Description() string {
	return statusMeta[s].description
}
