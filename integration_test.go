//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-marketplace/shareit-backend/internal/application"
	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	"github.com/shareit-marketplace/shareit-backend/internal/events"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apptime"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// TestBookingLifecycleAgainstPostgres runs the full booking lifecycle against
// a real PostgreSQL instance: register, list an item, book it, approve, query
// both list families.
func TestBookingLifecycleAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupServices(t, infra.DB)
	ctx := context.Background()

	owner, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "owner", Email: "owner@example.com"})
	require.NoError(t, err)
	booker, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "booker", Email: "booker@example.com"})
	require.NoError(t, err)

	available := true
	itm, err := stack.Items.AddItem(ctx, owner.ID, application.CreateItemRequest{
		Name:        "drill",
		Description: "cordless drill",
		Available:   &available,
	})
	require.NoError(t, err)

	start := time.Now().Add(time.Hour).UTC()
	end := time.Now().Add(2 * time.Hour).UTC()
	created, err := stack.Bookings.AddBooking(ctx, booker.ID, application.CreateBookingRequest{
		Start:  apptime.Ptr(start),
		End:    apptime.Ptr(end),
		ItemID: itm.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	approved, err := stack.Bookings.DecideBooking(ctx, owner.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	// A second approval must fail even against a real database.
	_, err = stack.Bookings.DecideBooking(ctx, owner.ID, created.ID, true)
	require.Error(t, err)

	page, err := pageable.New(0, 15)
	require.NoError(t, err)

	byBooker, err := stack.Bookings.GetBookingsByBooker(ctx, booker.ID, bookingDomain.StateFuture, page)
	require.NoError(t, err)
	require.Len(t, byBooker, 1)
	assert.Equal(t, created.ID, byBooker[0].ID)

	byOwner, err := stack.Bookings.GetBookingsByOwnerItems(ctx, owner.ID, bookingDomain.StateAll, page)
	require.NoError(t, err)
	require.Len(t, byOwner, 1)

	require.Len(t, stack.Published.envelopes, 2)
	assert.Equal(t, events.BookingCreated, stack.Published.envelopes[0].Type)
	assert.Equal(t, events.BookingApproved, stack.Published.envelopes[1].Type)
}

// TestDuplicateEmailAgainstPostgres verifies the unique-email constraint is
// translated to a conflict by the real driver.
func TestDuplicateEmailAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupServices(t, infra.DB)
	ctx := context.Background()

	_, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "a", Email: "same@example.com"})
	require.NoError(t, err)

	_, err = stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "b", Email: "same@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}
