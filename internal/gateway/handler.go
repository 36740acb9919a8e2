package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apptime"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/pageable"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/response"
)

const sharerHeader = "X-Sharer-User-Id"

// Handler validates requests at the edge and forwards them to the server
// tier. Validation failures never reach the server.
type Handler struct {
	client *Client
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a gateway Handler over the given client.
func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger, now: time.Now}
}

// RegisterRoutes registers the full forwarded surface on the router group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.createUser)
		users.PATCH("/:userId", h.updateUser)
		users.GET("/:userId", h.forward)
		users.GET("", h.forward)
		users.DELETE("/:userId", h.forward)
	}

	items := r.Group("/items")
	{
		items.POST("", h.createItem)
		items.PATCH("/:itemId", h.requireSharer)
		items.GET("/:itemId", h.requireSharer)
		items.GET("", h.requireSharerPaged)
		items.GET("/search", h.searchItems)
		items.POST("/:itemId/comment", h.addComment)
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.addBooking)
		bookings.PATCH("/:bookingId", h.decideBooking)
		bookings.GET("/:bookingId", h.requireSharer)
		bookings.GET("", h.listBookings)
		bookings.GET("/owner", h.listBookings)
	}

	requests := r.Group("/requests")
	{
		requests.POST("", h.addRequest)
		requests.GET("", h.requireSharer)
		requests.GET("/all", h.requireSharerPaged)
		requests.GET("/:requestId", h.requireSharer)
	}
}

type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) createUser(c *gin.Context) {
	body, payload, err := readBody[userPayload](c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payload.Name == "" {
		response.Error(c, apperror.InvalidArgument("user name is required"))
		return
	}
	if !strings.Contains(payload.Email, "@") {
		response.Error(c, apperror.InvalidArgument("a valid email is required"))
		return
	}
	h.relay(c, body)
}

func (h *Handler) updateUser(c *gin.Context) {
	body, payload, err := readBody[userPayload](c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payload.Email != "" && !strings.Contains(payload.Email, "@") {
		response.Error(c, apperror.InvalidArgument("a valid email is required"))
		return
	}
	h.relay(c, body)
}

type itemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

func (h *Handler) createItem(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	body, payload, err := readBody[itemPayload](c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payload.Name == "" || payload.Description == "" || payload.Available == nil {
		response.Error(c, apperror.InvalidArgument("item name, description and availability are required"))
		return
	}
	h.relay(c, body)
}

type commentPayload struct {
	Text string `json:"text"`
}

func (h *Handler) addComment(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	body, payload, err := readBody[commentPayload](c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payload.Text == "" {
		response.Error(c, apperror.InvalidArgument("comment text is required"))
		return
	}
	h.relay(c, body)
}

type bookingPayload struct {
	Start  *apptime.LocalDateTime `json:"start"`
	End    *apptime.LocalDateTime `json:"end"`
	ItemID int64                  `json:"itemId"`
}

func (h *Handler) addBooking(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	body, payload, err := readBody[bookingPayload](c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payload.ItemID <= 0 {
		response.Error(c, apperror.InvalidArgument("itemId is required"))
		return
	}
	if payload.Start == nil || payload.End == nil {
		response.Error(c, apperror.InvalidArgument("booking start and end are required"))
		return
	}
	if !payload.Start.Time.Before(payload.End.Time) {
		response.Error(c, apperror.InvalidArgument("booking start must be before end"))
		return
	}
	if payload.Start.Time.Before(h.now()) {
		response.Error(c, apperror.InvalidArgument("booking start must not be in the past"))
		return
	}
	h.relay(c, body)
}

func (h *Handler) decideBooking(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		response.Error(c, apperror.InvalidArgument("approved must be true or false"))
		return
	}
	h.relay(c, nil)
}

func (h *Handler) listBookings(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	if raw := c.Query("state"); raw != "" {
		if _, err := bookingDomain.ParseState(raw); err != nil {
			response.Error(c, err)
			return
		}
	}
	if err := validatePaging(c); err != nil {
		response.Error(c, err)
		return
	}
	h.relay(c, nil)
}

type requestPayload struct {
	Description string `json:"description"`
}

func (h *Handler) addRequest(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	body, payload, err := readBody[requestPayload](c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payload.Description == "" {
		response.Error(c, apperror.InvalidArgument("request description is required"))
		return
	}
	h.relay(c, body)
}

func (h *Handler) searchItems(c *gin.Context) {
	if err := validatePaging(c); err != nil {
		response.Error(c, err)
		return
	}
	h.relay(c, nil)
}

// requireSharer forwards a bodyless request that needs the sharer header.
func (h *Handler) requireSharer(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	h.relay(c, nil)
}

// requireSharerPaged additionally validates from/size.
func (h *Handler) requireSharerPaged(c *gin.Context) {
	if _, err := requireSharerID(c); err != nil {
		response.Error(c, err)
		return
	}
	if err := validatePaging(c); err != nil {
		response.Error(c, err)
		return
	}
	h.relay(c, nil)
}

// forward relays without any validation at all.
func (h *Handler) forward(c *gin.Context) {
	h.relay(c, nil)
}

func (h *Handler) relay(c *gin.Context, body []byte) {
	result, err := h.client.Forward(
		c.Request.Context(),
		c.Request.Method,
		c.Request.URL.Path,
		c.Request.URL.Query(),
		c.GetHeader(sharerHeader),
		body,
	)
	if err != nil {
		h.logger.Error("failed to reach server tier",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "server tier unavailable"})
		return
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(result.Status, contentType, result.Body)
}

func requireSharerID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(sharerHeader)
	if raw == "" {
		return 0, apperror.InvalidArgument("%s header is required", sharerHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.InvalidArgument("%s header must be an integer", sharerHeader)
	}
	return id, nil
}

func validatePaging(c *gin.Context) error {
	from := 0
	if raw := c.Query("from"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperror.InvalidArgument("from must be an integer")
		}
		from = parsed
	}
	size := 15
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperror.InvalidArgument("size must be an integer")
		}
		size = parsed
	}
	_, err := pageable.New(from, size)
	return err
}

// readBody buffers the raw body so it can be forwarded byte-for-byte after
// validation.
func readBody[T any](c *gin.Context) ([]byte, T, error) {
	var payload T
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, payload, apperror.InvalidArgument("failed to read request body")
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, payload, apperror.InvalidArgument("invalid request body: %v", err)
	}
	return body, payload, nil
}
