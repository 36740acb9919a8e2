package item

import (
	"context"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// Repository is the persistence port for items and their comments.
type Repository interface {
	Save(ctx context.Context, i *Item) (*Item, error)
	FindByID(ctx context.Context, id int64) (*Item, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*Item, error)
	FindByOwner(ctx context.Context, ownerID int64, page pageable.OffsetPage) ([]*Item, error)
	// Search matches available items whose name or description contains the
	// text, case-insensitively. A blank query yields no results.
	Search(ctx context.Context, text string, page pageable.OffsetPage) ([]*Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)

	SaveComment(ctx context.Context, c *Comment) (*Comment, error)
	FindCommentsByItem(ctx context.Context, itemID int64) ([]*Comment, error)
	FindCommentsByItems(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
