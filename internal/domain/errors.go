package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrHallNotFound      = errors.New("hall not found")
	ErrHallNotAvailable  = errors.New("hall is not available at the selected time")
	ErrHallInactive      = errors.New("hall is not accepting sessions")
	ErrSeatAlreadyBooked = errors.New("seat is already booked")
	ErrSeatOutOfBounds   = errors.New("seat is outside the hall layout")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUserAlreadyExists = errors.New("user already exists with this email")
)
