package services

import "github.com/agamariel/transsupply/internal/models"

// CanView сообщает, виден ли заказ участнику.
// Администратор видит всё, клиент - только свои заказы, остальные - ничего.
func CanView(p models.Principal, o *models.Order) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return p.ClientID != "" && o.ClientID == p.ClientID
	default:
		return false
	}
}

// VisibleOrders отбирает видимые участнику заказы, сохраняя порядок.
func VisibleOrders(p models.Principal, orders []*models.Order) []*models.Order {
	visible := make([]*models.Order, 0, len(orders))
	for _, o := range orders {
		if CanView(p, o) {
			visible = append(visible, o)
		}
	}
	return visible
}
