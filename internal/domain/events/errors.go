package events

import "errors"

var (
	ErrSeriesNotFound   = errors.New("potluck series not found")
	ErrPotluckNotFound  = errors.New("potluck not found")
	ErrInvalidDateRange = errors.New("series end date must be after start date")
	ErrInvalidEntityRef = errors.New("reference must name exactly one person or household")
)
