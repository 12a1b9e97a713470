package booking

import "errors"

// Kind classifies every expected business failure of a booking operation.
// True faults (broken storage, programming errors) are returned as plain
// errors and are never mapped to a Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindInvalidArgument
	KindPastDate
	KindSameDay
	KindOutsideBusinessHours
	KindNotOnTheHour
	KindNotFound
	KindConflict
	KindInvalidState
)

// Error is the typed failure returned by booking operations. Messages are
// stable so clients can show them directly.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the failure kind from err, or KindUnknown for plain faults.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// Stable user-facing messages. The conflict pair must stay distinct so client
// UIs can tell "pick another day" from "pick another hour".
const (
	msgPastDate        = "appointment time must be in the future"
	msgSameDay         = "appointments must be booked at least one day ahead"
	msgOutsideHours    = "appointments must start between 09:00 and 17:00"
	msgNotOnTheHour    = "appointments must start exactly on the hour"
	msgUserDayTaken    = "user already booked that day"
	msgStaffSlotTaken  = "staff busy in that slot"
	msgNeitherStaff    = "either a trainer or a nutritionist must be specified"
	msgBothStaff       = "only one of trainer or nutritionist may be specified"
	msgNotYourRole     = "caller does not hold the required role"
	msgCancelCompleted = "cannot cancel a completed appointment"
)
