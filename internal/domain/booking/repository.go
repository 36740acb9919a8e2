package booking

import (
	"context"
	"time"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// Repository is the persistence port for bookings. List queries return
// bookings ordered by start descending.
type Repository interface {
	Save(ctx context.Context, b *Booking) (*Booking, error)
	FindByID(ctx context.Context, id int64) (*Booking, error)
	// FindByIDAndParticipant returns the booking only when the user is its
	// booker or the owner of its item.
	FindByIDAndParticipant(ctx context.Context, id, userID int64) (*Booking, error)
	// UpdateStatus moves a booking from one status to another. It reports
	// whether the row was actually updated, so concurrent decisions lose
	// cleanly instead of overwriting each other.
	UpdateStatus(ctx context.Context, id int64, from, to Status) (bool, error)

	FindByBooker(ctx context.Context, bookerID int64, page pageable.OffsetPage) ([]*Booking, error)
	FindCurrentByBooker(ctx context.Context, bookerID int64, now time.Time, page pageable.OffsetPage) ([]*Booking, error)
	FindPastByBooker(ctx context.Context, bookerID int64, now time.Time, page pageable.OffsetPage) ([]*Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID int64, now time.Time, page pageable.OffsetPage) ([]*Booking, error)
	FindByBookerAndStatus(ctx context.Context, bookerID int64, status Status, page pageable.OffsetPage) ([]*Booking, error)

	FindByOwnerItems(ctx context.Context, ownerID int64, page pageable.OffsetPage) ([]*Booking, error)
	FindCurrentByOwnerItems(ctx context.Context, ownerID int64, now time.Time, page pageable.OffsetPage) ([]*Booking, error)
	FindPastByOwnerItems(ctx context.Context, ownerID int64, now time.Time, page pageable.OffsetPage) ([]*Booking, error)
	FindFutureByOwnerItems(ctx context.Context, ownerID int64, now time.Time, page pageable.OffsetPage) ([]*Booking, error)
	FindByOwnerItemsAndStatus(ctx context.Context, ownerID int64, status Status, page pageable.OffsetPage) ([]*Booking, error)

	// FindLastForItem returns the latest non-rejected booking that has
	// started by now, or nil when there is none.
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)
	// FindNextForItem returns the earliest non-rejected booking starting
	// after now, or nil when there is none.
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)
	// FindFinishedApprovedByItemAndBooker reports whether the user completed
	// an approved booking of the item, which gates comment posting.
	FindFinishedApprovedByItemAndBooker(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}
