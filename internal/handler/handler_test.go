package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shareit-marketplace/shareit-backend/internal/application"
	"github.com/shareit-marketplace/shareit-backend/internal/repository"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemModel{},
		&repository.RequestModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	log := zap.NewNop()
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	userService := application.NewUserService(userRepo, log)
	itemService := application.NewItemService(itemRepo, userRepo, bookingRepo, requestRepo, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, nil, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewUserHandler(userService).RegisterRoutes(&router.RouterGroup)
	NewItemHandler(itemService).RegisterRoutes(&router.RouterGroup)
	NewRequestHandler(requestService).RegisterRoutes(&router.RouterGroup)
	NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(SharerHeader, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createUserHTTP(t *testing.T, router *gin.Engine, name, email string) int64 {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/users", "",
		fmt.Sprintf(`{"name":%q,"email":%q}`, name, email))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func createItemHTTP(t *testing.T, router *gin.Engine, ownerID int64, name string) int64 {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/items", fmt.Sprint(ownerID),
		fmt.Sprintf(`{"name":%q,"description":"desc","available":true}`, name))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestMissingSharerHeader(t *testing.T) {
	router := setupRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/items", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "X-Sharer-User-Id")

	rec = doRequest(t, router, http.MethodGet, "/bookings", "not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserEndpoints(t *testing.T) {
	router := setupRouter(t)

	id := createUserHTTP(t, router, "alex", "alex@example.com")

	rec := doRequest(t, router, http.MethodPost, "/users", "", `{"name":"dup","email":"alex@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/users/%d", id), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alex@example.com")

	rec = doRequest(t, router, http.MethodGet, "/users/999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp["error"], "not found")

	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", id), "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBookingLifecycleHTTP(t *testing.T) {
	router := setupRouter(t)
	ownerID := createUserHTTP(t, router, "owner", "owner@example.com")
	bookerID := createUserHTTP(t, router, "booker", "booker@example.com")
	itemID := createItemHTTP(t, router, ownerID, "drill")

	start := time.Now().Add(time.Hour).UTC().Format("2006-01-02T15:04:05")
	end := time.Now().Add(2 * time.Hour).UTC().Format("2006-01-02T15:04:05")
	rec := doRequest(t, router, http.MethodPost, "/bookings", fmt.Sprint(bookerID),
		fmt.Sprintf(`{"itemId":%d,"start":%q,"end":%q}`, itemID, start, end))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Item   struct {
			ID int64 `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "WAITING", created.Status)
	assert.Equal(t, itemID, created.Item.ID)

	// The owner approves.
	rec = doRequest(t, router, http.MethodPatch,
		fmt.Sprintf("/bookings/%d?approved=true", created.ID), fmt.Sprint(ownerID), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"APPROVED"`)

	// Both participants can read it back.
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/bookings/%d", created.ID), fmt.Sprint(bookerID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The booker's list shows it under ALL by default.
	rec = doRequest(t, router, http.MethodGet, "/bookings", fmt.Sprint(bookerID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// So does the owner-side family.
	rec = doRequest(t, router, http.MethodGet, "/bookings/owner?state=ALL", fmt.Sprint(ownerID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestBookingListRejectsUnknownState(t *testing.T) {
	router := setupRouter(t)
	userID := createUserHTTP(t, router, "alex", "alex@example.com")

	rec := doRequest(t, router, http.MethodGet, "/bookings?state=SOMETHING", fmt.Sprint(userID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Unknown state: SOMETHING", errResp["error"])
}

func TestBookingDecideRejectsBadApprovedFlag(t *testing.T) {
	router := setupRouter(t)
	userID := createUserHTTP(t, router, "alex", "alex@example.com")

	rec := doRequest(t, router, http.MethodPatch, "/bookings/1?approved=maybe", fmt.Sprint(userID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/bookings/1", fmt.Sprint(userID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaginationValidationHTTP(t *testing.T) {
	router := setupRouter(t)
	userID := createUserHTTP(t, router, "alex", "alex@example.com")

	rec := doRequest(t, router, http.MethodGet, "/bookings?from=-1", fmt.Sprint(userID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/bookings?size=0", fmt.Sprint(userID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/bookings?from=abc", fmt.Sprint(userID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemSearchHTTP(t *testing.T) {
	router := setupRouter(t)
	ownerID := createUserHTTP(t, router, "owner", "owner@example.com")
	createItemHTTP(t, router, ownerID, "Cordless Drill")

	rec := doRequest(t, router, http.MethodGet, "/items/search?text=drill", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cordless Drill")

	rec = doRequest(t, router, http.MethodGet, "/items/search?text=", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}
