package storage

import (
	"fmt"
	"time"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/shopspring/decimal"
)

// demoPackage - сокращённая запись места для демо-набора: клиентский номер, вес, габариты, колли.
type demoPackage struct {
	ref    string
	weight float64
	dims   string
	colli  int
}

type demoOrder struct {
	seq       string
	clientID  string
	ref       string
	status    models.OrderStatus
	city      string
	country   string
	collected string
	receiver  string
	phone     string
	price     int64
	created   string
	updated   string
	packages  []demoPackage
}

var demoClients = []struct{ id, email, name string }{
	{"client-aioc", "ops@aioc.az", "AIOC"},
	{"client-bpsd", "logistics@bpsd.az", "BPSD"},
	{"client-btc", "shipping@btc.az", "BTC"},
	{"client-bpcs", "ops@bpcs.az", "BPCS"},
	{"client-scpc", "logistics@scpc.az", "SCPC"},
	{"client-gpc", "shipping@gpc.ge", "GPC"},
}

var demoOrders = []demoOrder{
	{"2025-04-0090", "client-bpsd", "2025Q2-090", models.OrderStatusDelivered, "Eibergen", "Netherlands", "2025-04-15",
		"BPSD Logistics", "+994 12 345 6789", 115, "2025-04-14", "2025-04-20",
		[]demoPackage{{"N3178987", 120, "120x85x69", 1}}},
	{"2025-04-0091", "client-aioc", "2025Q2-091", models.OrderStatusDelivered, "Vienna", "Austria", "2025-04-16",
		"AIOC Operations", "+994 12 345 6780", 310, "2025-04-15", "2025-04-22",
		[]demoPackage{
			{"N3180282", 9.94, "32x32x32", 2},
			{"N3180297", 0.75, "32x32x12", 1},
			{"N3180411", 10.04, "36x30x15", 3},
			{"N3180463", 2.6, "60x16x15", 1},
			{"N3180526", 4.1, "30x30x24", 1},
			{"N3180545", 10, "28x26x20", 1},
		}},
	{"2025-04-0092", "client-aioc", "2025Q2-092", models.OrderStatusDelivered, "Norderstedt", "Germany", "2025-04-18",
		"AIOC Hamburg Branch", "+994 12 345 6781", 185, "2025-04-17", "2025-04-24",
		[]demoPackage{{"N3183169", 29, "60x40x58", 1}}},
	{"2025-04-0094", "client-btc", "2025Q2-094", models.OrderStatusDelivered, "Pavlov", "Czech Republic", "2025-04-20",
		"BTC Tbilisi", "+995 32 123 4567", 320, "2025-04-19", "2025-04-26",
		[]demoPackage{
			{"N3162150", 150, "74x108x99", 1},
			{"N3162150-2", 15.97, "66x44x37", 1},
			{"N3162150-3", 150, "74x108x99", 1},
		}},
	{"2025-04-0096", "client-bpsd", "2025Q2-096", models.OrderStatusDelivered, "Agotnes", "Norway", "2025-04-22",
		"BPSD Norway Ops", "+994 12 345 6782", 300, "2025-04-21", "2025-04-28",
		[]demoPackage{{"N3185880", 102, "120x80x55", 1}}},
	{"2026-01-0001", "client-scpc", "2026Q1-001", models.OrderStatusWarehouse, "Vienna", "Austria", "2026-01-10",
		"SCPC Baku Office", "+994 12 345 6790", 310, "2026-01-09", "2026-01-15",
		[]demoPackage{
			{"N3255445", 1, "51x30x23", 1},
			{"N3255460", 7.84, "36x30x25", 1},
			{"N3255504", 0.4, "29x13x24", 1},
			{"N3255513", 20.7, "28x26x20", 3},
			{"N3255546", 9.82, "36x30x25", 1},
			{"N3255553", 11, "47x42x38", 1},
			{"N3255435", 2.41, "51x30x23", 1},
		}},
	{"2026-01-0002", "client-btc", "2026Q1-002", models.OrderStatusWarehouse, "Oskarshamn", "Sweden", "2026-01-12",
		"BTC Tbilisi HQ", "+995 32 123 4568", 850, "2026-01-11", "2026-01-18",
		[]demoPackage{
			{"N3255131-1", 355, "120x80x65", 1},
			{"N3255131-2", 357, "120x80x65", 1},
			{"N3255131-3", 214, "120x80x65", 1},
			{"N3255211-1", 358, "120x80x65", 1},
			{"N3255211-2", 359, "120x80x65", 1},
			{"N3255211-3", 218, "120x80x65", 1},
		}},
	{"2026-01-0003", "client-btc", "2026Q1-003", models.OrderStatusDelivered, "Llanera", "Spain", "2026-01-14",
		"BTC Tbilisi Branch", "+995 32 123 4569", 450, "2026-01-13", "2026-01-20",
		[]demoPackage{
			{"N3254720-1", 358, "120x80x65", 1},
			{"N3254720-2", 358, "120x80x65", 1},
			{"N3254720-3", 217, "120x80x65", 1},
		}},
	{"2026-01-0012", "client-aioc", "2026Q1-012", models.OrderStatusWarehouse, "Campina", "Romania", "2026-01-17",
		"AIOC Romania", "+994 12 345 6783", 260, "2026-01-16", "2026-01-21",
		[]demoPackage{{"N3271437", 50, "55x55x50", 1}}},
	{"2026-01-0022", "client-aioc", "2026Q1-022", models.OrderStatusPickup, "Zurich", "Switzerland", "2026-01-29",
		"AIOC Zurich", "+994 12 345 6786", 320, "2026-01-26", "2026-01-26",
		[]demoPackage{{"N3287161", 850, "148x98x102", 1}}},
	{"2026-01-0035", "client-btc", "2026Q1-035", models.OrderStatusPickup, "Arras", "France", "2026-01-30",
		"BTC Baku", "+994 12 345 6787", 350, "2026-01-27", "2026-01-27",
		[]demoPackage{
			{"N3293133-1", 477.24, "60x80x80", 1},
			{"N3293133-2", 993, "120x80x100", 1},
			{"N3293133-3", 993, "120x80x100", 1},
		}},
	{"2026-01-0036", "client-aioc", "2026Q1-036", models.OrderStatusWarehouse, "Vienna", "Austria", "2026-01-24",
		"AIOC Vienna Hub", "+994 12 345 6788", 310, "2026-01-23", "2026-01-26",
		[]demoPackage{
			{"N3296451", 4.38, "30x30x24", 3},
			{"N3296463", 5.11, "33x23x12", 3},
			{"N3296423", 10.1, "28x26x20", 1},
			{"N3296491", 22.29, "120x80x40", 2},
			{"N3296515", 6, "44x33x31", 1},
			{"N3296395", 1.1, "23x22x23", 1},
		}},
	{"2026-01-0044", "client-bpsd", "2026Q1-044", models.OrderStatusPickup, "Zurich", "Switzerland", "2026-01-30",
		"Combined Shipment - Zurich", "+994 12 345 6793", 360, "2026-01-27", "2026-01-27",
		[]demoPackage{
			{"N3317533", 115, "80x60x50", 1},
			{"N3316023", 5.7, "40x40x20", 1},
		}},
}

var demoLocations = []models.Location{
	{ID: "1", Name: "Vienna, Austria", Lat: 48.2082, Lng: 16.3738},
	{ID: "2", Name: "Zurich, Switzerland", Lat: 47.3769, Lng: 8.5417},
	{ID: "3", Name: "Norderstedt, Germany", Lat: 53.6859, Lng: 9.9867},
	{ID: "4", Name: "Pavlov, Czech Republic", Lat: 48.8686, Lng: 16.6728},
	{ID: "5", Name: "Arras, France", Lat: 50.2910, Lng: 2.7775},
	{ID: "6", Name: "Campina, Romania", Lat: 45.0833, Lng: 25.7333},
	{ID: "7", Name: "Oskarshamn, Sweden", Lat: 57.2656, Lng: 16.4500},
	{ID: "8", Name: "Llanera, Spain", Lat: 43.4500, Lng: -5.9167},
	{ID: "9", Name: "Cologne, Germany", Lat: 50.9375, Lng: 6.9603},
	{ID: "10", Name: "Milan, Italy", Lat: 45.4642, Lng: 9.1900},
	{ID: "11", Name: "Eibergen, Netherlands", Lat: 52.0983, Lng: 6.6500},
	{ID: "12", Name: "Agotnes, Norway", Lat: 60.4000, Lng: 5.0333},
}

// DemoSnapshot строит демо-набор клиентов и заказов. Все заказы доставляются на warehouse.
// Общий вес каждого заказа считается по его местам.
func DemoSnapshot(warehouse models.Address) *Snapshot {
	clientsCreated := mustDemoTime("2025-01-01")
	snap := &Snapshot{}
	for _, c := range demoClients {
		snap.Clients = append(snap.Clients, &models.Client{
			ID:        c.id,
			Email:     c.email,
			Name:      c.name,
			CreatedAt: clientsCreated,
		})
	}

	for _, d := range demoOrders {
		id := "ord-" + d.seq
		collected, err := models.ParseDate(d.collected)
		if err != nil {
			panic(err)
		}
		o := &models.Order{
			ID:              id,
			ClientID:        d.clientID,
			InternalRef:     d.ref,
			Status:          d.status,
			PickupAddress:   models.Address{City: d.city, Country: d.country},
			ReceiverAddress: warehouse,
			CollectionDate:  collected,
			ReceiverName:    d.receiver,
			ReceiverPhone:   d.phone,
			TotalPrice:      decimal.NewFromInt(d.price),
			Photos:          []string{},
			CreatedAt:       mustDemoTime(d.created),
			UpdatedAt:       mustDemoTime(d.updated),
		}
		for i, p := range d.packages {
			o.Packages = append(o.Packages, models.Package{
				ID:         fmt.Sprintf("box-%s-%d", d.seq, i+1),
				OrderID:    id,
				ClientRef:  p.ref,
				Dimensions: p.dims,
				WeightKg:   p.weight,
				Colli:      p.colli,
			})
			o.TotalWeightKg += p.weight
		}
		snap.Orders = append(snap.Orders, o)
	}
	return snap
}

// DemoLocations возвращает частые места забора груза для демо-режима.
func DemoLocations() []models.Location {
	locs := make([]models.Location, len(demoLocations))
	copy(locs, demoLocations)
	return locs
}

func mustDemoTime(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
