package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
)

func TestAddItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")

	available := true
	resp, err := env.items.AddItem(ctx, owner.ID, CreateItemRequest{
		Name:        "drill",
		Description: "a cordless drill",
		Available:   &available,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.True(t, resp.Available)
	assert.Nil(t, resp.RequestID)

	_, err = env.items.AddItem(ctx, 999, CreateItemRequest{
		Name:        "drill",
		Description: "a cordless drill",
		Available:   &available,
	})
	assertCode(t, err, http.StatusNotFound)

	// Validation failures.
	_, err = env.items.AddItem(ctx, owner.ID, CreateItemRequest{Description: "x", Available: &available})
	assertCode(t, err, http.StatusBadRequest)
	_, err = env.items.AddItem(ctx, owner.ID, CreateItemRequest{Name: "x", Description: "y"})
	assertCode(t, err, http.StatusBadRequest)
}

func TestAddItemForUnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", "owner@example.com")

	available := true
	missing := int64(999)
	_, err := env.items.AddItem(context.Background(), owner.ID, CreateItemRequest{
		Name:        "drill",
		Description: "a cordless drill",
		Available:   &available,
		RequestID:   &missing,
	})
	assertCode(t, err, http.StatusNotFound)
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")
	stranger := env.createUser(t, "stranger", "stranger@example.com")
	itm := env.createItem(t, owner.ID, "drill", true)

	name := "hammer drill"
	unavailable := false
	resp, err := env.items.UpdateItem(ctx, owner.ID, itm.ID, UpdateItemRequest{Name: &name, Available: &unavailable})
	require.NoError(t, err)
	assert.Equal(t, "hammer drill", resp.Name)
	assert.False(t, resp.Available)
	// Untouched field survives.
	assert.Equal(t, itm.Description, resp.Description)

	// Only the owner may edit.
	_, err = env.items.UpdateItem(ctx, stranger.ID, itm.ID, UpdateItemRequest{Name: &name})
	assertCode(t, err, http.StatusNotFound)

	_, err = env.items.UpdateItem(ctx, owner.ID, 999, UpdateItemRequest{Name: &name})
	assertCode(t, err, http.StatusNotFound)
}

func TestGetItemOwnerSeesClosestBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")
	booker := env.createUser(t, "booker", "booker@example.com")
	itm := env.createItem(t, owner.ID, "drill", true)

	last := env.seedBooking(t, itm.ID, booker.ID, testNow.Add(-2*time.Hour), testNow.Add(-time.Hour), bookingDomain.StatusApproved)
	next := env.seedBooking(t, itm.ID, booker.ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour), bookingDomain.StatusWaiting)
	// Rejected bookings never show up in the owner's view.
	env.seedBooking(t, itm.ID, booker.ID, testNow.Add(30*time.Minute), testNow.Add(45*time.Minute), bookingDomain.StatusRejected)

	resp, err := env.items.GetItem(ctx, owner.ID, itm.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.LastBooking)
	require.NotNil(t, resp.NextBooking)
	assert.Equal(t, last.ID(), resp.LastBooking.ID)
	assert.Equal(t, next.ID(), resp.NextBooking.ID)
	assert.Equal(t, booker.ID, resp.NextBooking.BookerID)

	// A non-owner sees the item without the booking view.
	resp, err = env.items.GetItem(ctx, booker.ID, itm.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.LastBooking)
	assert.Nil(t, resp.NextBooking)

	_, err = env.items.GetItem(ctx, owner.ID, 999)
	assertCode(t, err, http.StatusNotFound)
}

func TestGetOwnerItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")
	other := env.createUser(t, "other", "other@example.com")
	first := env.createItem(t, owner.ID, "drill", true)
	second := env.createItem(t, owner.ID, "saw", true)
	env.createItem(t, other.ID, "ladder", true)

	got, err := env.items.GetOwnerItems(ctx, owner.ID, firstPage(t))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	_, err = env.items.GetOwnerItems(ctx, 999, firstPage(t))
	assertCode(t, err, http.StatusNotFound)
}

func TestSearchItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")

	available := true
	unavailable := false
	_, err := env.items.AddItem(ctx, owner.ID, CreateItemRequest{
		Name: "Cordless Drill", Description: "compact power tool", Available: &available,
	})
	require.NoError(t, err)
	_, err = env.items.AddItem(ctx, owner.ID, CreateItemRequest{
		Name: "Hand Saw", Description: "classic DRILL-free tool", Available: &available,
	})
	require.NoError(t, err)
	_, err = env.items.AddItem(ctx, owner.ID, CreateItemRequest{
		Name: "Broken Drill", Description: "does not work", Available: &unavailable,
	})
	require.NoError(t, err)

	// Case-insensitive, matches name or description, skips unavailable items.
	got, err := env.items.SearchItems(ctx, "dRiLl", firstPage(t))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// A blank query yields nothing.
	got, err = env.items.SearchItems(ctx, "", firstPage(t))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")
	booker := env.createUser(t, "booker", "booker@example.com")
	itm := env.createItem(t, owner.ID, "drill", true)

	// No booking at all: not allowed to comment.
	_, err := env.items.AddComment(ctx, booker.ID, itm.ID, CreateCommentRequest{Text: "great"})
	assertCode(t, err, http.StatusBadRequest)

	// A booking still in progress does not qualify.
	env.seedBooking(t, itm.ID, booker.ID, testNow.Add(-time.Hour), testNow.Add(time.Hour), bookingDomain.StatusApproved)
	_, err = env.items.AddComment(ctx, booker.ID, itm.ID, CreateCommentRequest{Text: "great"})
	assertCode(t, err, http.StatusBadRequest)

	// A finished approved booking does.
	env.seedBooking(t, itm.ID, booker.ID, testNow.Add(-3*time.Hour), testNow.Add(-2*time.Hour), bookingDomain.StatusApproved)
	resp, err := env.items.AddComment(ctx, booker.ID, itm.ID, CreateCommentRequest{Text: "great drill"})
	require.NoError(t, err)
	assert.Equal(t, "great drill", resp.Text)
	assert.Equal(t, "booker", resp.AuthorName)

	detail, err := env.items.GetItem(ctx, booker.ID, itm.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "great drill", detail.Comments[0].Text)
}

func TestAddCommentRejectedBookingDoesNotQualify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", "owner@example.com")
	booker := env.createUser(t, "booker", "booker@example.com")
	itm := env.createItem(t, owner.ID, "drill", true)

	env.seedBooking(t, itm.ID, booker.ID, testNow.Add(-3*time.Hour), testNow.Add(-2*time.Hour), bookingDomain.StatusRejected)
	_, err := env.items.AddComment(ctx, booker.ID, itm.ID, CreateCommentRequest{Text: "never got it"})
	assertCode(t, err, http.StatusBadRequest)
}
