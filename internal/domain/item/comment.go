package item

import (
	"time"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
)

// Comment is review text left on an item by a past booker.
type Comment struct {
	id         int64
	text       string
	itemID     int64
	authorID   int64
	authorName string
	created    time.Time
}

// NewComment creates a new Comment with validated fields.
func NewComment(text string, itemID, authorID int64, authorName string, created time.Time) (*Comment, error) {
	if text == "" {
		return nil, apperror.InvalidArgument("comment text is required")
	}
	return &Comment{
		text:       text,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		created:    created,
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id int64, text string, itemID, authorID int64, authorName string, created time.Time) *Comment {
	return &Comment{
		id:         id,
		text:       text,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		created:    created,
	}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) AuthorID() int64    { return c.authorID }
func (c *Comment) AuthorName() string { return c.authorName }
func (c *Comment) Created() time.Time { return c.created }
