package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shareit-marketplace/shareit-backend/internal/application"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/response"
)

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.AddItem)
		items.PATCH("/:itemId", h.UpdateItem)
		items.GET("/:itemId", h.GetItem)
		items.GET("", h.GetOwnerItems)
		items.GET("/search", h.SearchItems)
		items.POST("/:itemId/comment", h.AddComment)
	}
}

// AddItem handles POST /items.
func (h *ItemHandler) AddItem(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /items/:itemId.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetItem handles GET /items/:itemId.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// GetOwnerItems handles GET /items?from=&size=.
func (h *ItemHandler) GetOwnerItems(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := parsePage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.GetOwnerItems(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// SearchItems handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.SearchItems(c.Request.Context(), c.Query("text"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// AddComment handles POST /items/:itemId/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, err := sharerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}
