// Package request holds the item-request aggregate: a wish posted by a user
// for an item nobody offers yet.
package request

import (
	"time"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
)

// ItemRequest is a user's ask for an item to be shared.
type ItemRequest struct {
	id          int64
	description string
	requesterID int64
	created     time.Time
}

// NewItemRequest creates a new ItemRequest with validated fields.
func NewItemRequest(description string, requesterID int64, created time.Time) (*ItemRequest, error) {
	if description == "" {
		return nil, apperror.InvalidArgument("request description is required")
	}
	return &ItemRequest{
		description: description,
		requesterID: requesterID,
		created:     created,
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data.
func Reconstruct(id int64, description string, requesterID int64, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requesterID: requesterID,
		created:     created,
	}
}

func (r *ItemRequest) ID() int64          { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequesterID() int64 { return r.requesterID }
func (r *ItemRequest) Created() time.Time { return r.created }
