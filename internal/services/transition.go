package services

import (
	"fmt"

	"github.com/agamariel/transsupply/internal/models"
)

// TransitionPolicy решает, допустима ли смена статуса from -> to.
// Оба статуса к этому моменту уже проверены на допустимость.
type TransitionPolicy func(from, to models.OrderStatus) error

// AllowAnyTransition разрешает любую смену статуса, включая возврат назад.
func AllowAnyTransition(from, to models.OrderStatus) error {
	return nil
}

// ForwardOnly запрещает возврат к более раннему этапу.
func ForwardOnly(from, to models.OrderStatus) error {
	if to.Index() < from.Index() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}
	return nil
}
