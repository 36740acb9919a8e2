// Package booking holds the booking aggregate, its status state machine and
// the list-filter states used by availability queries.
package booking

import (
	"time"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
)

// Booking is a request to borrow an item for a time window.
type Booking struct {
	id       int64
	start    time.Time
	end      time.Time
	itemID   int64
	bookerID int64
	status   Status
}

// NewBooking creates a booking in WAITING status. The window must be
// well-formed: start strictly before end, start not in the past.
func NewBooking(start, end time.Time, itemID, bookerID int64, now time.Time) (*Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.InvalidArgument("booking start and end are required")
	}
	if !start.Before(end) {
		return nil, apperror.InvalidArgument("booking start must be before end")
	}
	if start.Before(now) {
		return nil, apperror.InvalidArgument("booking start must not be in the past")
	}
	return &Booking{
		start:    start,
		end:      end,
		itemID:   itemID,
		bookerID: bookerID,
		status:   StatusWaiting,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data.
func Reconstruct(id int64, start, end time.Time, itemID, bookerID int64, status Status) *Booking {
	return &Booking{
		id:       id,
		start:    start,
		end:      end,
		itemID:   itemID,
		bookerID: bookerID,
		status:   status,
	}
}

func (b *Booking) ID() int64        { return b.id }
func (b *Booking) Start() time.Time { return b.start }
func (b *Booking) End() time.Time   { return b.end }
func (b *Booking) ItemID() int64    { return b.itemID }
func (b *Booking) BookerID() int64  { return b.bookerID }
func (b *Booking) Status() Status   { return b.status }

// IsBookedBy reports whether the given user placed this booking.
func (b *Booking) IsBookedBy(userID int64) bool { return b.bookerID == userID }

// Decide applies the owner's approve/reject decision.
func (b *Booking) Decide(approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return apperror.InvalidArgument("booking %d is already decided", b.id)
	}
	b.status = target
	return nil
}

// HasEndedBy reports whether the booking window closed before the given
// moment.
func (b *Booking) HasEndedBy(now time.Time) bool { return b.end.Before(now) }
