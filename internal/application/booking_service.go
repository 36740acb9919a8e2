package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	itemDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/item"
	userDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/user"
	"github.com/shareit-marketplace/shareit-backend/internal/events"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

const eventSource = "shareit-server"

// EventPublisher sends event envelopes to the booking topic.
type EventPublisher interface {
	Publish(ctx context.Context, key string, env events.Envelope) error
}

// BookingService is the application service orchestrating the booking
// lifecycle and the availability queries.
type BookingService struct {
	bookings  bookingDomain.Repository
	items     itemDomain.Repository
	users     userDomain.Repository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// AddBooking places a new booking in WAITING status.
func (s *BookingService) AddBooking(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingResponse, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if itm.IsOwnedBy(bookerID) {
		return nil, apperror.NotFound("owner cannot book their own item")
	}
	if !itm.Available() {
		return nil, apperror.InvalidArgument("item %d is not available for booking", itm.ID())
	}

	if req.Start == nil || req.End == nil {
		return nil, apperror.InvalidArgument("booking start and end are required")
	}
	b, err := bookingDomain.NewBooking(req.Start.Time, req.End.Time, itm.ID(), bookerID, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.bookings.Save(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishEvent(ctx, events.BookingCreated, saved.ID(), events.BookingCreatedEvent{
		BookingID:  saved.ID(),
		ItemID:     itm.ID(),
		BookerID:   bookerID,
		Start:      saved.Start(),
		End:        saved.End(),
		OccurredAt: s.now().UTC(),
	})

	resp := toBookingResponse(saved, itm, booker)
	return &resp, nil
}

// DecideBooking applies the owner's approve/reject decision to a WAITING or
// REJECTED booking.
func (s *BookingService) DecideBooking(ctx context.Context, userID, bookingID int64, approved bool) (*BookingResponse, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status() == bookingDomain.StatusApproved {
		return nil, apperror.InvalidArgument("booking %d is already approved", bookingID)
	}

	itm, err := s.items.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(userID) {
		if b.IsBookedBy(userID) {
			return nil, apperror.NotFound("booker cannot decide their own booking")
		}
		return nil, apperror.InvalidArgument("user %d does not own item %d", userID, itm.ID())
	}

	from := b.Status()
	target := bookingDomain.StatusRejected
	eventType := events.BookingRejected
	if approved {
		target = bookingDomain.StatusApproved
		eventType = events.BookingApproved
	}
	if !from.CanTransitionTo(target) {
		return nil, apperror.InvalidArgument("booking %d is already decided", bookingID)
	}

	// The status write is guarded by the status we just read, so two
	// concurrent decisions cannot both land.
	updated, err := s.bookings.UpdateStatus(ctx, bookingID, from, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !updated {
		return nil, apperror.InvalidArgument("booking %d was decided concurrently", bookingID)
	}
	b = bookingDomain.Reconstruct(b.ID(), b.Start(), b.End(), b.ItemID(), b.BookerID(), target)

	booker, err := s.users.FindByID(ctx, b.BookerID())
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, eventType, b.ID(), events.BookingDecidedEvent{
		BookingID:  b.ID(),
		ItemID:     itm.ID(),
		OwnerID:    userID,
		Status:     target.String(),
		OccurredAt: s.now().UTC(),
	})

	resp := toBookingResponse(b, itm, booker)
	return &resp, nil
}

// GetBooking returns a booking to its booker or the owner of its item.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*BookingResponse, error) {
	b, err := s.bookings.FindByIDAndParticipant(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, b.BookerID())
	if err != nil {
		return nil, err
	}

	resp := toBookingResponse(b, itm, booker)
	return &resp, nil
}

// GetBookingsByBooker lists the user's own bookings filtered by state, newest
// start first.
func (s *BookingService) GetBookingsByBooker(ctx context.Context, bookerID int64, state bookingDomain.State, page pageable.OffsetPage) ([]BookingResponse, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		list []*bookingDomain.Booking
		err  error
	)
	switch state {
	case bookingDomain.StateAll:
		list, err = s.bookings.FindByBooker(ctx, bookerID, page)
	case bookingDomain.StateCurrent:
		list, err = s.bookings.FindCurrentByBooker(ctx, bookerID, now, page)
	case bookingDomain.StatePast:
		list, err = s.bookings.FindPastByBooker(ctx, bookerID, now, page)
	case bookingDomain.StateFuture:
		list, err = s.bookings.FindFutureByBooker(ctx, bookerID, now, page)
	case bookingDomain.StateWaiting:
		list, err = s.bookings.FindByBookerAndStatus(ctx, bookerID, bookingDomain.StatusWaiting, page)
	case bookingDomain.StateRejected:
		list, err = s.bookings.FindByBookerAndStatus(ctx, bookerID, bookingDomain.StatusRejected, page)
	default:
		return nil, apperror.InvalidArgument("Unknown state: %s", state)
	}
	if err != nil {
		return nil, err
	}

	return s.toBookingResponses(ctx, list)
}

// GetBookingsByOwnerItems lists bookings of the user's items filtered by
// state, newest start first.
func (s *BookingService) GetBookingsByOwnerItems(ctx context.Context, ownerID int64, state bookingDomain.State, page pageable.OffsetPage) ([]BookingResponse, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	now := s.now()
	var (
		list []*bookingDomain.Booking
		err  error
	)
	switch state {
	case bookingDomain.StateAll:
		list, err = s.bookings.FindByOwnerItems(ctx, ownerID, page)
	case bookingDomain.StateCurrent:
		list, err = s.bookings.FindCurrentByOwnerItems(ctx, ownerID, now, page)
	case bookingDomain.StatePast:
		list, err = s.bookings.FindPastByOwnerItems(ctx, ownerID, now, page)
	case bookingDomain.StateFuture:
		list, err = s.bookings.FindFutureByOwnerItems(ctx, ownerID, now, page)
	case bookingDomain.StateWaiting:
		list, err = s.bookings.FindByOwnerItemsAndStatus(ctx, ownerID, bookingDomain.StatusWaiting, page)
	case bookingDomain.StateRejected:
		list, err = s.bookings.FindByOwnerItemsAndStatus(ctx, ownerID, bookingDomain.StatusRejected, page)
	default:
		return nil, apperror.InvalidArgument("Unknown state: %s", state)
	}
	if err != nil {
		return nil, err
	}

	return s.toBookingResponses(ctx, list)
}

func (s *BookingService) toBookingResponses(ctx context.Context, list []*bookingDomain.Booking) ([]BookingResponse, error) {
	itemIDs := make([]int64, 0, len(list))
	bookerIDs := make([]int64, 0, len(list))
	for _, b := range list {
		itemIDs = append(itemIDs, b.ItemID())
		bookerIDs = append(bookerIDs, b.BookerID())
	}

	itemList, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[int64]*itemDomain.Item, len(itemList))
	for _, i := range itemList {
		itemsByID[i.ID()] = i
	}

	userList, err := s.users.FindByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[int64]*userDomain.User, len(userList))
	for _, u := range userList {
		usersByID[u.ID()] = u
	}

	responses := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		itm, ok := itemsByID[b.ItemID()]
		if !ok {
			return nil, fmt.Errorf("booking %d references missing item %d", b.ID(), b.ItemID())
		}
		booker, ok := usersByID[b.BookerID()]
		if !ok {
			return nil, fmt.Errorf("booking %d references missing user %d", b.ID(), b.BookerID())
		}
		responses = append(responses, toBookingResponse(b, itm, booker))
	}
	return responses, nil
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, bookingID int64, data any) {
	if s.publisher == nil {
		return
	}

	env, err := events.NewEnvelope(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create event envelope",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, strconv.FormatInt(bookingID, 10), env); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Int64("booking_id", bookingID),
			zap.Error(err),
		)
	}
}
