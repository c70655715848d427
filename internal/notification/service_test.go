// File: internal/notification/service_test.go
package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a testify mock of the Repository interface.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, n *Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, page, pageSize)
	return args.Get(0).([]Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) MarkRead(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, userID, at)
	return args.Error(0)
}

func (m *MockRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, userID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID, notificationType string) (bool, error) {
	args := m.Called(ctx, bookingID, notificationType)
	return args.Bool(0), args.Error(1)
}

func TestNotifyPersistsNotification(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	bookingID := uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(n *Notification) bool {
		return n.UserID == userID &&
			n.Type == TypeCheckInReminder &&
			n.BookingID != nil && *n.BookingID == bookingID
	})).Return(nil).Once()

	n, err := svc.Notify(ctx, CreateParams{
		UserID:    userID,
		Type:      TypeCheckInReminder,
		Title:     "Check-in tomorrow",
		BookingID: &bookingID,
	})
	require.NoError(t, err)
	assert.Equal(t, TypeCheckInReminder, n.Type)
	repo.AssertExpectations(t)
}

func TestNotifyPropagatesRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := svc.Notify(ctx, CreateParams{UserID: uuid.New(), Type: TypePaymentSuccess, Title: "t"})
	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}

func TestMarkAllReadReturnsUpdatedCount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	repo.On("MarkAllRead", ctx, userID, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	updated, err := svc.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
	repo.AssertExpectations(t)
}

func TestExistsForBookingDelegates(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()
	bookingID := uuid.New()

	repo.On("ExistsForBooking", ctx, bookingID, TypeCheckInReminder).Return(true, nil).Once()

	exists, err := svc.ExistsForBooking(ctx, bookingID, TypeCheckInReminder)
	require.NoError(t, err)
	assert.True(t, exists)
	repo.AssertExpectations(t)
}
