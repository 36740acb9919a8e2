package application

import (
	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	itemDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/item"
	requestDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/request"
	userDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/user"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apptime"
)

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest is the payload for a partial user update.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateItemRequest is the payload for listing an item.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// UpdateItemRequest is the payload for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemResponse is the wire shape of an item.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// BookingBrief is the compact booking view embedded in an owner's item.
type BookingBrief struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// CommentResponse is the wire shape of an item comment.
type CommentResponse struct {
	ID         int64                 `json:"id"`
	Text       string                `json:"text"`
	AuthorName string                `json:"authorName"`
	Created    apptime.LocalDateTime `json:"created"`
}

// ItemDetailResponse is an item with its comments, plus the closest bookings
// around now when the viewer owns the item.
type ItemDetailResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingBrief     `json:"lastBooking,omitempty"`
	NextBooking *BookingBrief     `json:"nextBooking,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

// CreateCommentRequest is the payload for posting a comment.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CreateBookingRequest is the payload for placing a booking.
type CreateBookingRequest struct {
	Start  *apptime.LocalDateTime `json:"start"`
	End    *apptime.LocalDateTime `json:"end"`
	ItemID int64                  `json:"itemId"`
}

// BookingResponse is the wire shape of a booking with its item and booker.
type BookingResponse struct {
	ID     int64                 `json:"id"`
	Start  apptime.LocalDateTime `json:"start"`
	End    apptime.LocalDateTime `json:"end"`
	Item   ItemResponse          `json:"item"`
	Booker UserResponse          `json:"booker"`
	Status string                `json:"status"`
}

// CreateRequestRequest is the payload for posting an item request.
type CreateRequestRequest struct {
	Description string `json:"description"`
}

// RequestResponse is the wire shape of an item request with the items offered
// in answer to it.
type RequestResponse struct {
	ID          int64                 `json:"id"`
	Description string                `json:"description"`
	Created     apptime.LocalDateTime `json:"created"`
	Items       []ItemResponse        `json:"items"`
}

func toUserResponse(u *userDomain.User) UserResponse {
	return UserResponse{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toItemResponse(i *itemDomain.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
	}
}

func toCommentResponse(c *itemDomain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    apptime.New(c.Created()),
	}
}

func toBookingBrief(b *bookingDomain.Booking) *BookingBrief {
	if b == nil {
		return nil
	}
	return &BookingBrief{ID: b.ID(), BookerID: b.BookerID()}
}

func toBookingResponse(b *bookingDomain.Booking, i *itemDomain.Item, booker *userDomain.User) BookingResponse {
	return BookingResponse{
		ID:     b.ID(),
		Start:  apptime.New(b.Start()),
		End:    apptime.New(b.End()),
		Item:   toItemResponse(i),
		Booker: toUserResponse(booker),
		Status: b.Status().String(),
	}
}

func toRequestResponse(r *requestDomain.ItemRequest, items []*itemDomain.Item) RequestResponse {
	itemResponses := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		itemResponses = append(itemResponses, toItemResponse(i))
	}
	return RequestResponse{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     apptime.New(r.Created()),
		Items:       itemResponses,
	}
}
