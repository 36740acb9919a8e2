package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bookingDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/booking"
	itemDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/item"
	userDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/user"
	"github.com/shareit-marketplace/shareit-backend/internal/events"
	"github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"
	"github.com/shareit-marketplace/shareit-backend/internal/repository"
)

// testNow is the fixed clock all service tests run against.
var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

type capturingPublisher struct {
	envelopes []events.Envelope
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, env events.Envelope) error {
	p.envelopes = append(p.envelopes, env)
	return nil
}

type testEnv struct {
	db        *gorm.DB
	users     *UserService
	items     *ItemService
	requests  *RequestService
	bookings  *BookingService
	publisher *capturingPublisher

	userRepo    userDomain.Repository
	itemRepo    itemDomain.Repository
	bookingRepo bookingDomain.Repository
}

func newTestEnv(t *testing.T) *testEnv {
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
	publisher := &capturingPublisher{}

	userSvc := NewUserService(userRepo, log)
	itemSvc := NewItemService(itemRepo, userRepo, bookingRepo, requestRepo, log)
	itemSvc.now = func() time.Time { return testNow }
	requestSvc := NewRequestService(requestRepo, itemRepo, userRepo, log)
	requestSvc.now = func() time.Time { return testNow }
	bookingSvc := NewBookingService(bookingRepo, itemRepo, userRepo, publisher, log)
	bookingSvc.now = func() time.Time { return testNow }

	return &testEnv{
		db:          db,
		users:       userSvc,
		items:       itemSvc,
		requests:    requestSvc,
		bookings:    bookingSvc,
		publisher:   publisher,
		userRepo:    userRepo,
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string) UserResponse {
	t.Helper()
	resp, err := e.users.CreateUser(context.Background(), CreateUserRequest{Name: name, Email: email})
	require.NoError(t, err)
	return *resp
}

func (e *testEnv) createItem(t *testing.T, ownerID int64, name string, available bool) ItemResponse {
	t.Helper()
	resp, err := e.items.AddItem(context.Background(), ownerID, CreateItemRequest{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	})
	require.NoError(t, err)
	return *resp
}

// seedBooking inserts a booking directly, bypassing the service so tests can
// plant past or already-decided bookings.
func (e *testEnv) seedBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	t.Helper()
	saved, err := e.bookingRepo.Save(context.Background(), bookingDomain.Reconstruct(0, start, end, itemID, bookerID, status))
	require.NoError(t, err)
	return saved
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
