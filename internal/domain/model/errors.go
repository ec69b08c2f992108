package model

import "errors"

// Sentinel validation errors.
var (
	ErrInvalidDelivery = errors.New("invalid delivery")
	ErrRunsMismatch    = errors.New("runs do not add up")
	ErrInvalidMatch    = errors.New("invalid match")
)
