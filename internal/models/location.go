package models

import "strings"

// Location - частое место забора груза.
type Location struct {
	ID   string  `json:"id"`
	Name string  `json:"name" validate:"required"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// MatchesName проверяет вхождение подстроки в название без учёта регистра.
func (l Location) MatchesName(query string) bool {
	return strings.Contains(strings.ToLower(l.Name), strings.ToLower(query))
}
