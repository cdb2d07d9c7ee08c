package services

import "github.com/agamariel/transsupply/internal/models"

// TotalWeight суммирует вес мест в порядке списка.
func TotalWeight(packages []models.Package) float64 {
	total := 0.0
	for _, p := range packages {
		total += p.WeightKg
	}
	return total
}

// AddPackage возвращает копию заказа с добавленным местом и пересчитанным общим весом.
// Исходный заказ не изменяется.
func AddPackage(order *models.Order, pkg models.Package) *models.Order {
	updated := order.Clone()
	pkg.OrderID = order.ID
	updated.Packages = append(updated.Packages, pkg)
	updated.TotalWeightKg = TotalWeight(updated.Packages)
	return updated
}

// RemovePackage возвращает копию заказа без места packageID.
func RemovePackage(order *models.Order, packageID string) (*models.Order, error) {
	updated := order.Clone()
	for i, p := range updated.Packages {
		if p.ID == packageID {
			updated.Packages = append(updated.Packages[:i], updated.Packages[i+1:]...)
			updated.TotalWeightKg = TotalWeight(updated.Packages)
			return updated, nil
		}
	}
	return nil, ErrPackageNotFound
}
