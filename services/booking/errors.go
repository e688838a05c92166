package booking

import "errors"

var (
	ErrEstablishmentNotFound = errors.New("establishment not found")
	ErrServiceNotFound       = errors.New("service not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrSlotUnavailable       = errors.New("requested slot is not available")
	ErrInvalidInput          = errors.New("invalid booking input")
)
