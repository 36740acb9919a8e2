package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	itemDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/item"
	requestDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/request"
	userDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/user"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
)

// RequestService handles item requests: wishes for items nobody offers yet.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// AddRequest posts a new item request for the user.
func (s *RequestService) AddRequest(ctx context.Context, userID int64, req CreateRequestRequest) (*RequestResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(req.Description, userID, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.requests.Save(ctx, r)
	if err != nil {
		return nil, err
	}

	resp := toRequestResponse(saved, nil)
	return &resp, nil
}

// GetOwnRequests returns the user's requests, newest first, with the items
// offered in answer to each.
func (s *RequestService) GetOwnRequests(ctx context.Context, userID int64) ([]RequestResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.requests.FindByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toRequestResponses(ctx, list)
}

// GetOtherRequests returns everyone else's requests, newest first.
func (s *RequestService) GetOtherRequests(ctx context.Context, userID int64, page pageable.OffsetPage) ([]RequestResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.requests.FindByOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.toRequestResponses(ctx, list)
}

// GetRequest returns a single request with its offered items. Any registered
// user may look.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*RequestResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByRequestIDs(ctx, []int64{r.ID()})
	if err != nil {
		return nil, err
	}

	resp := toRequestResponse(r, items)
	return &resp, nil
}

func (s *RequestService) toRequestResponses(ctx context.Context, list []*requestDomain.ItemRequest) ([]RequestResponse, error) {
	requestIDs := make([]int64, 0, len(list))
	for _, r := range list {
		requestIDs = append(requestIDs, r.ID())
	}

	items, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]*itemDomain.Item)
	for _, itm := range items {
		if itm.RequestID() != nil {
			itemsByRequest[*itm.RequestID()] = append(itemsByRequest[*itm.RequestID()], itm)
		}
	}

	responses := make([]RequestResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, toRequestResponse(r, itemsByRequest[r.ID()]))
	}
	return responses, nil
}
