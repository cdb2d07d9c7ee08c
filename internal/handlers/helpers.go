package handlers

import (
	"errors"
	"net/http"

	"github.com/agamariel/transsupply/internal/logger"
	"github.com/agamariel/transsupply/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestValidator подключает validator/v10 к echo (c.Validate).
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator создаёт валидатор запросов.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate проверяет структуру по тегам validate.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// bindAndValidate разбирает тело запроса и проверяет его.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// serviceError переводит ошибку сервисного слоя в HTTP-ошибку.
func serviceError(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrPackageNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrLocationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrClientEmailExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidStatusTransition):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrPersistence):
		logger.FromContext(c.Request().Context(), nil).Error(msg, zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
	}

	logger.FromContext(c.Request().Context(), nil).Error(msg, zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
