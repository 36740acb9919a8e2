package request

import (
	"context"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// Repository is the persistence port for item requests.
type Repository interface {
	Save(ctx context.Context, r *ItemRequest) (*ItemRequest, error)
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)
	// FindByRequester returns the user's own requests, newest first.
	FindByRequester(ctx context.Context, requesterID int64) ([]*ItemRequest, error)
	// FindByOthers returns requests posted by everyone except the given user,
	// newest first.
	FindByOthers(ctx context.Context, userID int64, page pageable.OffsetPage) ([]*ItemRequest, error)
}
