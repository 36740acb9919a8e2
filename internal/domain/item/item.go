package item

import "github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"

// Item is a thing an owner offers for lending.
type Item struct {
	id          int64
	name        string
	description string
	available   bool
	ownerID     int64
	requestID   *int64
}

// NewItem creates a new Item with validated fields.
func NewItem(name, description string, available *bool, ownerID int64, requestID *int64) (*Item, error) {
	if name == "" {
		return nil, apperror.InvalidArgument("item name is required")
	}
	if description == "" {
		return nil, apperror.InvalidArgument("item description is required")
	}
	if available == nil {
		return nil, apperror.InvalidArgument("item availability is required")
	}
	return &Item{
		name:        name,
		description: description,
		available:   *available,
		ownerID:     ownerID,
		requestID:   requestID,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data.
func Reconstruct(id int64, name, description string, available bool, ownerID int64, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) RequestID() *int64   { return i.requestID }

// IsOwnedBy reports whether the given user owns this item.
func (i *Item) IsOwnedBy(userID int64) bool { return i.ownerID == userID }

// Update applies a partial update: nil fields keep their current value.
func (i *Item) Update(name, description *string, available *bool) {
	if name != nil && *name != "" {
		i.name = *name
	}
	if description != nil && *description != "" {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
