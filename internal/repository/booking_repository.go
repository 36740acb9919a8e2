package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time `gorm:"not null"`
	ItemID    int64     `gorm:"index;not null"`
	BookerID  int64     `gorm:"index;not null"`
	Status    string    `gorm:"not null;size:20;index"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return toDomainBooking(model), nil
}

// FindByID retrieves a booking by id.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("booking with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByIDAndParticipant retrieves a booking only when the user is its booker
// or owns its item. Anyone else gets not-found, never a hint that the booking
// exists.
func (r *GormBookingRepository) FindByIDAndParticipant(ctx context.Context, id, userID int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("bookings.id = ? AND (bookings.booker_id = ? OR items.owner_id = ?)", id, userID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("booking with id %d not found", id)
		}
		return nil, fmt.Errorf("failed to find booking for participant: %w", err)
	}
	return toDomainBooking(&model), nil
}

// UpdateStatus moves a booking between statuses with a guard on the expected
// current status. Reports false when another decision got there first.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to bookingDomain.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindByBooker retrieves all of the user's bookings.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID int64, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "booker_id = ?", bookerID)
}

// FindCurrentByBooker retrieves the user's bookings whose window contains now.
// The bounds are inclusive: a booking that starts or ends exactly now counts.
func (r *GormBookingRepository) FindCurrentByBooker(ctx context.Context, bookerID int64, now time.Time, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "booker_id = ? AND start_date <= ? AND end_date >= ?", bookerID, now, now)
}

// FindPastByBooker retrieves the user's bookings that ended before now.
func (r *GormBookingRepository) FindPastByBooker(ctx context.Context, bookerID int64, now time.Time, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "booker_id = ? AND end_date < ?", bookerID, now)
}

// FindFutureByBooker retrieves the user's bookings starting after now.
func (r *GormBookingRepository) FindFutureByBooker(ctx context.Context, bookerID int64, now time.Time, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "booker_id = ? AND start_date > ?", bookerID, now)
}

// FindByBookerAndStatus retrieves the user's bookings in the given status.
func (r *GormBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID int64, status bookingDomain.Status, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "booker_id = ? AND status = ?", bookerID, string(status))
}

// FindByOwnerItems retrieves all bookings of the owner's items.
func (r *GormBookingRepository) FindByOwnerItems(ctx context.Context, ownerID int64, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "item_id IN (?)", r.ownerItemIDs(ownerID))
}

// FindCurrentByOwnerItems retrieves bookings of the owner's items whose
// window contains now.
func (r *GormBookingRepository) FindCurrentByOwnerItems(ctx context.Context, ownerID int64, now time.Time, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "item_id IN (?) AND start_date <= ? AND end_date >= ?", r.ownerItemIDs(ownerID), now, now)
}

// FindPastByOwnerItems retrieves bookings of the owner's items that ended
// before now.
func (r *GormBookingRepository) FindPastByOwnerItems(ctx context.Context, ownerID int64, now time.Time, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "item_id IN (?) AND end_date < ?", r.ownerItemIDs(ownerID), now)
}

// FindFutureByOwnerItems retrieves bookings of the owner's items starting
// after now.
func (r *GormBookingRepository) FindFutureByOwnerItems(ctx context.Context, ownerID int64, now time.Time, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "item_id IN (?) AND start_date > ?", r.ownerItemIDs(ownerID), now)
}

// FindByOwnerItemsAndStatus retrieves bookings of the owner's items in the
// given status.
func (r *GormBookingRepository) FindByOwnerItemsAndStatus(ctx context.Context, ownerID int64, status bookingDomain.Status, page pageable.OffsetPage) ([]*bookingDomain.Booking, error) {
	return r.list(ctx, page, "item_id IN (?) AND status = ?", r.ownerItemIDs(ownerID), string(status))
}

// FindLastForItem retrieves the latest non-rejected booking that has started
// by now, or nil when there is none.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status <> ? AND start_date <= ?", itemID, string(bookingDomain.StatusRejected), now).
		Order("start_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking for item: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindNextForItem retrieves the earliest non-rejected booking starting after
// now, or nil when there is none.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status <> ? AND start_date > ?", itemID, string(bookingDomain.StatusRejected), now).
		Order("start_date ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking for item: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindFinishedApprovedByItemAndBooker reports whether the user has an
// approved booking of the item that already ended.
func (r *GormBookingRepository) FindFinishedApprovedByItemAndBooker(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, string(bookingDomain.StatusApproved), now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

func (r *GormBookingRepository) ownerItemIDs(ownerID int64) *gorm.DB {
	return r.db.Model(&ItemModel{}).Select("id").Where("owner_id = ?", ownerID)
}

func (r *GormBookingRepository) list(ctx context.Context, page pageable.OffsetPage, query string, args ...any) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("start_date DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings, nil
}

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		StartDate: b.Start(),
		EndDate:   b.End(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Status:    string(b.Status()),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID, m.StartDate, m.EndDate, m.ItemID, m.BookerID, bookingDomain.Status(m.Status),
	)
}
