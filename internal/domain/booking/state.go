package booking

import "github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"

// State is a query filter over booking lists. Unlike Status it is not stored:
// CURRENT, PAST and FUTURE are computed against the clock at query time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a raw filter string into a State. The raw value is
// echoed back verbatim in the error so callers can see what they sent.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(raw), nil
	}
	return "", apperror.InvalidArgument("Unknown state: %s", raw)
}
