package storage

import (
	"time"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/shopspring/decimal"
)

// orderColumns - порядок столбцов таблицы orders, общий для SELECT и INSERT.
var orderColumns = []string{
	"id", "client_id", "internal_ref", "status",
	"pickup_street", "pickup_city", "pickup_country",
	"receiver_street", "receiver_city", "receiver_country",
	"collection_date", "receiver_name", "receiver_phone",
	"total_weight_kg", "total_price", "photos",
	"created_at", "updated_at",
}

var packageColumns = []string{
	"id", "order_id", "client_ref", "dimensions", "weight_kg", "colli",
}

// OrderRow - плоское представление заказа в таблице orders.
// Адреса разложены по столбцам, пустая улица хранится как NULL.
type OrderRow struct {
	ID              string
	ClientID        string
	InternalRef     string
	Status          string
	PickupStreet    *string
	PickupCity      string
	PickupCountry   string
	ReceiverStreet  *string
	ReceiverCity    string
	ReceiverCountry string
	CollectionDate  *time.Time
	ReceiverName    string
	ReceiverPhone   string
	TotalWeightKg   float64
	TotalPrice      decimal.Decimal
	Photos          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PackageRow - строка таблицы order_packages.
type PackageRow struct {
	ID         string
	OrderID    string
	ClientRef  string
	Dimensions string
	WeightKg   float64
	Colli      int
}

// NewOrderRow раскладывает заказ в плоскую строку. Места не входят в строку.
func NewOrderRow(o *models.Order) OrderRow {
	row := OrderRow{
		ID:              o.ID,
		ClientID:        o.ClientID,
		InternalRef:     o.InternalRef,
		Status:          string(o.Status),
		PickupStreet:    nullableString(o.PickupAddress.Street),
		PickupCity:      o.PickupAddress.City,
		PickupCountry:   o.PickupAddress.Country,
		ReceiverStreet:  nullableString(o.ReceiverAddress.Street),
		ReceiverCity:    o.ReceiverAddress.City,
		ReceiverCountry: o.ReceiverAddress.Country,
		ReceiverName:    o.ReceiverName,
		ReceiverPhone:   o.ReceiverPhone,
		TotalWeightKg:   o.TotalWeightKg,
		TotalPrice:      o.TotalPrice,
		Photos:          o.Photos,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if !o.CollectionDate.IsZero() {
		d := o.CollectionDate.Time
		row.CollectionDate = &d
	}
	if row.Photos == nil {
		row.Photos = []string{}
	}
	return row
}

// Order собирает доменный заказ из строки.
func (r OrderRow) Order() *models.Order {
	o := &models.Order{
		ID:          r.ID,
		ClientID:    r.ClientID,
		InternalRef: r.InternalRef,
		Status:      models.OrderStatus(r.Status),
		PickupAddress: models.Address{
			Street:  derefString(r.PickupStreet),
			City:    r.PickupCity,
			Country: r.PickupCountry,
		},
		ReceiverAddress: models.Address{
			Street:  derefString(r.ReceiverStreet),
			City:    r.ReceiverCity,
			Country: r.ReceiverCountry,
		},
		ReceiverName:  r.ReceiverName,
		ReceiverPhone: r.ReceiverPhone,
		TotalWeightKg: r.TotalWeightKg,
		TotalPrice:    r.TotalPrice,
		Photos:        r.Photos,
		Packages:      []models.Package{},
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.CollectionDate != nil {
		d := r.CollectionDate.UTC()
		o.CollectionDate = models.NewDate(d.Year(), d.Month(), d.Day())
	}
	if o.Photos == nil {
		o.Photos = []string{}
	}
	return o
}

func (r OrderRow) values() []interface{} {
	return []interface{}{
		r.ID, r.ClientID, r.InternalRef, r.Status,
		r.PickupStreet, r.PickupCity, r.PickupCountry,
		r.ReceiverStreet, r.ReceiverCity, r.ReceiverCountry,
		r.CollectionDate, r.ReceiverName, r.ReceiverPhone,
		r.TotalWeightKg, r.TotalPrice, r.Photos,
		r.CreatedAt, r.UpdatedAt,
	}
}

func (r *OrderRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID, &r.ClientID, &r.InternalRef, &r.Status,
		&r.PickupStreet, &r.PickupCity, &r.PickupCountry,
		&r.ReceiverStreet, &r.ReceiverCity, &r.ReceiverCountry,
		&r.CollectionDate, &r.ReceiverName, &r.ReceiverPhone,
		&r.TotalWeightKg, &r.TotalPrice, &r.Photos,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

// NewPackageRow переводит место в строку таблицы.
func NewPackageRow(p models.Package) PackageRow {
	return PackageRow{
		ID:         p.ID,
		OrderID:    p.OrderID,
		ClientRef:  p.ClientRef,
		Dimensions: p.Dimensions,
		WeightKg:   p.WeightKg,
		Colli:      p.Colli,
	}
}

// Package собирает место из строки.
func (r PackageRow) Package() models.Package {
	return models.Package{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ClientRef:  r.ClientRef,
		Dimensions: r.Dimensions,
		WeightKg:   r.WeightKg,
		Colli:      r.Colli,
	}
}

// patchColumns переводит заданные поля патча в столбцы таблицы orders.
func patchColumns(p models.OrderPatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.InternalRef != nil {
		cols["internal_ref"] = *p.InternalRef
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.PickupAddress != nil {
		cols["pickup_street"] = nullableString(p.PickupAddress.Street)
		cols["pickup_city"] = p.PickupAddress.City
		cols["pickup_country"] = p.PickupAddress.Country
	}
	if p.ReceiverAddress != nil {
		cols["receiver_street"] = nullableString(p.ReceiverAddress.Street)
		cols["receiver_city"] = p.ReceiverAddress.City
		cols["receiver_country"] = p.ReceiverAddress.Country
	}
	if p.CollectionDate != nil {
		if p.CollectionDate.IsZero() {
			cols["collection_date"] = nil
		} else {
			cols["collection_date"] = p.CollectionDate.Time
		}
	}
	if p.ReceiverName != nil {
		cols["receiver_name"] = *p.ReceiverName
	}
	if p.ReceiverPhone != nil {
		cols["receiver_phone"] = *p.ReceiverPhone
	}
	if p.TotalPrice != nil {
		cols["total_price"] = *p.TotalPrice
	}
	if p.Photos != nil {
		photos := *p.Photos
		if photos == nil {
			photos = []string{}
		}
		cols["photos"] = photos
	}
	return cols
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// packageInsertColumns возвращает новый срез колонок места вместе с position.
func packageInsertColumns() []string {
	columns := make([]string, 0, len(packageColumns)+1)
	columns = append(columns, packageColumns...)
	return append(columns, "position")
}
