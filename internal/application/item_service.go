package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	itemDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/item"
	requestDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/request"
	userDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/user"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// ItemService handles item listing, search and comments.
type ItemService struct {
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	requests requestDomain.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	requests requestDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		requests: requests,
		logger:   logger,
		now:      time.Now,
	}
}

// AddItem lists a new item for the owner, optionally in answer to a request.
func (s *ItemService) AddItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemResponse, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	itm, err := itemDomain.NewItem(req.Name, req.Description, req.Available, ownerID, req.RequestID)
	if err != nil {
		return nil, err
	}

	saved, err := s.items.Save(ctx, itm)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", saved.ID()),
		zap.Int64("owner_id", ownerID),
	)
	resp := toItemResponse(saved)
	return &resp, nil
}

// UpdateItem applies a partial update. Only the owner may edit; anyone else
// gets not-found.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID int64, req UpdateItemRequest) (*ItemResponse, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(userID) {
		return nil, apperror.NotFound("user %d does not own item %d", userID, itemID)
	}

	itm.Update(req.Name, req.Description, req.Available)
	saved, err := s.items.Save(ctx, itm)
	if err != nil {
		return nil, err
	}

	resp := toItemResponse(saved)
	return &resp, nil
}

// GetItem returns an item with its comments. The owner additionally sees the
// bookings closest to now on either side.
func (s *ItemService) GetItem(ctx context.Context, userID, itemID int64) (*ItemDetailResponse, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.items.FindCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := s.toItemDetail(itm, comments)
	if itm.IsOwnedBy(userID) {
		if err := s.attachClosestBookings(ctx, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// GetOwnerItems returns the owner's items with comments and closest bookings.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID int64, page pageable.OffsetPage) ([]ItemDetailResponse, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	list, err := s.items.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(list))
	for _, itm := range list {
		itemIDs = append(itemIDs, itm.ID())
	}
	comments, err := s.items.FindCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]*itemDomain.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], c)
	}

	responses := make([]ItemDetailResponse, 0, len(list))
	for _, itm := range list {
		resp := s.toItemDetail(itm, commentsByItem[itm.ID()])
		if err := s.attachClosestBookings(ctx, resp); err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// SearchItems matches available items by name or description.
func (s *ItemService) SearchItems(ctx context.Context, text string, page pageable.OffsetPage) ([]ItemResponse, error) {
	list, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(list))
	for _, itm := range list {
		responses = append(responses, toItemResponse(itm))
	}
	return responses, nil
}

// AddComment posts review text on an item. Only a booker whose approved
// booking of the item already ended may comment.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID int64, req CreateCommentRequest) (*CommentResponse, error) {
	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	finished, err := s.bookings.FindFinishedApprovedByItemAndBooker(ctx, itm.ID(), userID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, apperror.InvalidArgument("user %d has no finished booking of item %d", userID, itemID)
	}

	c, err := itemDomain.NewComment(req.Text, itm.ID(), userID, author.Name(), now)
	if err != nil {
		return nil, err
	}
	saved, err := s.items.SaveComment(ctx, c)
	if err != nil {
		return nil, err
	}

	resp := toCommentResponse(saved)
	return &resp, nil
}

func (s *ItemService) toItemDetail(itm *itemDomain.Item, comments []*itemDomain.Comment) *ItemDetailResponse {
	commentResponses := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		commentResponses = append(commentResponses, toCommentResponse(c))
	}
	return &ItemDetailResponse{
		ID:          itm.ID(),
		Name:        itm.Name(),
		Description: itm.Description(),
		Available:   itm.Available(),
		RequestID:   itm.RequestID(),
		Comments:    commentResponses,
	}
}

func (s *ItemService) attachClosestBookings(ctx context.Context, resp *ItemDetailResponse) error {
	now := s.now()
	last, err := s.bookings.FindLastForItem(ctx, resp.ID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.FindNextForItem(ctx, resp.ID, now)
	if err != nil {
		return err
	}
	resp.LastBooking = toBookingBrief(last)
	resp.NextBooking = toBookingBrief(next)
	return nil
}
