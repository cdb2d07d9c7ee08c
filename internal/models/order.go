package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout - формат календарной даты без времени.
const DateLayout = "2006-01-02"

// Date - календарная дата (дата сбора груза), сериализуется как YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate создаёт дату в UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает строку формата YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Address - адрес забора или доставки груза.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (a Address) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.City, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Package - место груза внутри заказа.
type Package struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	ClientRef  string  `json:"client_ref"`
	Dimensions string  `json:"dimensions"`
	WeightKg   float64 `json:"weight_kg"`
	Colli      int     `json:"colli"`
}

var (
	ErrNegativeWeight = errors.New("weight must be a non-negative number")
	ErrInvalidColli   = errors.New("colli must be a positive integer")
)

// Validate проверяет числовые поля места. Нулевое количество колли считается значением по умолчанию (1).
func (p *Package) Validate() error {
	if math.IsNaN(p.WeightKg) || math.IsInf(p.WeightKg, 0) || p.WeightKg < 0 {
		return ErrNegativeWeight
	}
	if p.Colli == 0 {
		p.Colli = 1
	}
	if p.Colli < 0 {
		return ErrInvalidColli
	}
	return nil
}

// Order представляет отправку: от забора до доставки на склад.
type Order struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	InternalRef     string          `json:"internal_ref"`
	Status          OrderStatus     `json:"status"`
	PickupAddress   Address         `json:"pickup_address"`
	ReceiverAddress Address         `json:"receiver_address"`
	CollectionDate  Date            `json:"collection_date"`
	ReceiverName    string          `json:"receiver_name"`
	ReceiverPhone   string          `json:"receiver_phone"`
	Packages        []Package       `json:"packages"`
	TotalWeightKg   float64         `json:"total_weight_kg"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Photos          []string        `json:"photos"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PackageCount возвращает количество мест. Не хранится, считается при чтении.
func (o *Order) PackageCount() int {
	return len(o.Packages)
}

// ColliCount возвращает суммарное количество колли по всем местам.
func (o *Order) ColliCount() int {
	total := 0
	for _, p := range o.Packages {
		total += p.Colli
	}
	return total
}

// Clone возвращает глубокую копию заказа.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.Packages != nil {
		c.Packages = make([]Package, len(o.Packages))
		copy(c.Packages, o.Packages)
	}
	if o.Photos != nil {
		c.Photos = make([]string, len(o.Photos))
		copy(c.Photos, o.Photos)
	}
	return &c
}

// OrderResponse - представление заказа для HTTP-ответа с производными счётчиками.
type OrderResponse struct {
	*Order
	PackageCount int     `json:"package_count"`
	ColliCount   int     `json:"colli_count"`
	Progress     float64 `json:"progress"`
}

// NewOrderResponse собирает DTO из доменного заказа.
func NewOrderResponse(o *Order) *OrderResponse {
	return &OrderResponse{
		Order:        o,
		PackageCount: o.PackageCount(),
		ColliCount:   o.ColliCount(),
		Progress:     o.Status.Progress(),
	}
}

// OrderPatch - частичное обновление заказа. nil-поле не изменяется.
// Единственное место, определяющее, какие поля заказа изменяемы.
type OrderPatch struct {
	InternalRef     *string          `json:"internal_ref,omitempty"`
	Status          *OrderStatus     `json:"status,omitempty"`
	PickupAddress   *Address         `json:"pickup_address,omitempty"`
	ReceiverAddress *Address         `json:"receiver_address,omitempty"`
	CollectionDate  *Date            `json:"collection_date,omitempty"`
	ReceiverName    *string          `json:"receiver_name,omitempty"`
	ReceiverPhone   *string          `json:"receiver_phone,omitempty"`
	TotalPrice      *decimal.Decimal `json:"total_price,omitempty"`
	Photos          *[]string        `json:"-"`
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p OrderPatch) IsEmpty() bool {
	return p.InternalRef == nil && p.Status == nil && p.PickupAddress == nil &&
		p.ReceiverAddress == nil && p.CollectionDate == nil && p.ReceiverName == nil &&
		p.ReceiverPhone == nil && p.TotalPrice == nil && p.Photos == nil
}

// Apply переносит заданные поля патча в заказ.
func (p OrderPatch) Apply(o *Order) {
	if p.InternalRef != nil {
		o.InternalRef = *p.InternalRef
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.PickupAddress != nil {
		o.PickupAddress = *p.PickupAddress
	}
	if p.ReceiverAddress != nil {
		o.ReceiverAddress = *p.ReceiverAddress
	}
	if p.CollectionDate != nil {
		o.CollectionDate = *p.CollectionDate
	}
	if p.ReceiverName != nil {
		o.ReceiverName = *p.ReceiverName
	}
	if p.ReceiverPhone != nil {
		o.ReceiverPhone = *p.ReceiverPhone
	}
	if p.TotalPrice != nil {
		o.TotalPrice = *p.TotalPrice
	}
	if p.Photos != nil {
		photos := make([]string, len(*p.Photos))
		copy(photos, *p.Photos)
		o.Photos = photos
	}
}

// OrderFilter - параметры поиска по списку заказов.
type OrderFilter struct {
	Query    string
	Status   OrderStatus
	ClientID string
}

// Matches проверяет заказ по фильтру: подстрока без учёта регистра
// в внутреннем номере, имени получателя или городе забора.
func (f OrderFilter) Matches(o *Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.ClientID != "" && o.ClientID != f.ClientID {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(o.InternalRef), q) ||
		strings.Contains(strings.ToLower(o.ReceiverName), q) ||
		strings.Contains(strings.ToLower(o.PickupAddress.City), q)
}

// Stats - сводные показатели по видимым пользователю заказам.
type Stats struct {
	TotalOrders    int             `json:"total_orders"`
	PendingPickups int             `json:"pending_pickups"`
	InWarehouse    int             `json:"in_warehouse"`
	Delivered      int             `json:"delivered"`
	TotalWeight    float64         `json:"total_weight"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalPackages  int             `json:"total_packages"`
	TotalColli     int             `json:"total_colli"`
}
