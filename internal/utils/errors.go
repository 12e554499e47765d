package utils

import "errors"

// Common application errors used across services.
var (
	ErrFileNotFound    = errors.New("FILE_NOT_FOUND")
	ErrMissingColumn   = errors.New("MISSING_REQUIRED_COLUMN")
	ErrInvalidMinPrice = errors.New("INVALID_MIN_PRICE")
	ErrInvalidMaxPrice = errors.New("INVALID_MAX_PRICE")
)
