package services

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrLocationNotFound = errors.New("location not found")

	ErrValidation              = errors.New("validation failed")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrClientEmailExists       = errors.New("client email already exists")

	// ErrPersistence оборачивает отказ хранилища. Состояние в памяти при этом не меняется.
	ErrPersistence = errors.New("persistence failure")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("email and password are required")
)
