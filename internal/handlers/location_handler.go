package handlers

import (
	"net/http"

	"github.com/agamariel/transsupply/internal/models"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/labstack/echo/v4"
)

// LocationHandler обрабатывает справочник мест забора.
type LocationHandler struct {
	locationService services.LocationService
}

// NewLocationHandler создаёт новый экземпляр LocationHandler.
func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// List обрабатывает GET /api/locations.
func (h *LocationHandler) List(c echo.Context) error {
	locs, err := h.locationService.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return serviceError(c, err, "failed to list locations")
	}
	return c.JSON(http.StatusOK, locs)
}

// Create обрабатывает POST /api/locations.
func (h *LocationHandler) Create(c echo.Context) error {
	var req models.Location
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	loc, err := h.locationService.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "failed to create location")
	}
	return c.JSON(http.StatusCreated, loc)
}

// Delete обрабатывает DELETE /api/locations/:id.
func (h *LocationHandler) Delete(c echo.Context) error {
	if err := h.locationService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(c, err, "failed to delete location")
	}
	return c.NoContent(http.StatusNoContent)
}
