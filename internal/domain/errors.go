package domain

import "errors"

// Business rejections. Every one of these is an expected, user-facing outcome;
// storage faults are kept separate and propagate unwrapped.
var (
	ErrSpaceNotFound           = errors.New("space not found")
	ErrSpaceUnavailable        = errors.New("space is not available for booking")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrInvalidTimeRange        = errors.New("start time must be before end time")
	ErrPastStartTime           = errors.New("start time must be in the future")
	ErrTimeSlotOverlap         = errors.New("time slot overlaps an existing booking")
	ErrCannotModifyCompleted   = errors.New("completed booking can no longer be modified")
	ErrAlreadyCancelled        = errors.New("booking is already cancelled")
	ErrCannotCancelPast        = errors.New("booking has already started")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrPriceNotFound           = errors.New("no price entry for space and tier")
	ErrIncompletePriceSet      = errors.New("price set must cover hour, day and month exactly once")
	ErrInvalidPrice            = errors.New("price must be at least 0.01")
	ErrInvalidOpenHours        = errors.New("open time must be before close time")
	ErrInvalidCapacity         = errors.New("capacity must be at least 1")
	ErrNameRequired            = errors.New("name is required")
)
