package rotation

import "errors"

// Validation errors: the operation is rejected and no state mutates.
var (
	ErrAlreadyRegistered = errors.New("user is already registered")
	ErrUnknownUser       = errors.New("user has not joined the rotation")
	ErrInvalidSlot       = errors.New("invalid day or period")
	ErrEmptyOrder        = errors.New("participant ordering is empty")
)

// Conflict errors: the operation is rejected, the caller decides what next.
var (
	// ErrAlreadyAssigned is returned by Claim when the slot is taken.
	// Manual assignment does not hit this guard.
	ErrAlreadyAssigned = errors.New("shift is already assigned")
)

// Not-found errors: explicit absent results, never a crash.
var (
	ErrNoShiftToday = errors.New("no shift assigned today")
	ErrNoWeekData   = errors.New("no data recorded for this week")
	// ErrNoEvents means the week-level completion rate is undefined
	// because completed+missed is zero.
	ErrNoEvents = errors.New("no completion or miss events recorded")
)
