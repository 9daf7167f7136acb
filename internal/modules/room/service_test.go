package room

import (
	"context"
	"errors"
	"testing"

	"hotel/internal/domain"
	"hotel/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 10
	}
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so the service cannot mutate the fixture
	r := *args.Get(0).(*domain.Room)
	return &r, args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, status *domain.RoomStatus) ([]domain.Room, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateDetails(ctx context.Context, r *domain.Room, expected domain.RoomStatus) error {
	return m.Called(ctx, r, expected).Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockBookingCounter struct {
	mock.Mock
}

func (m *MockBookingCounter) CountActiveForRoom(ctx context.Context, roomID int64) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingCounter) CountForRoom(ctx context.Context, roomID int64) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string { return &s }

func baseRoom(status domain.RoomStatus) *domain.Room {
	return &domain.Room{
		ID:            1,
		RoomNumber:    "101",
		RoomType:      domain.RoomDouble,
		PricePerNight: 100,
		Status:        status,
		Floor:         1,
		Capacity:      2,
	}
}

func TestCreate_StartsAvailable(t *testing.T) {
	repo := &MockRoomRepository{}
	svc := NewService(repo, &MockBookingCounter{}, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Status == domain.RoomAvailable && r.RoomType == domain.RoomSuite && r.PricePerNight == 250.5
	})).Return(nil)

	r, err := svc.Create(ctx, CreateRoomRequest{
		RoomNumber:    " 301 ",
		RoomType:      "Suite",
		PricePerNight: 250.499,
		Floor:         3,
		Capacity:      4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), r.ID)
	assert.Equal(t, "301", r.RoomNumber)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&MockRoomRepository{}, &MockBookingCounter{}, nil)

	_, err := svc.Create(context.Background(), CreateRoomRequest{RoomNumber: "1", RoomType: "penthouse", PricePerNight: 10, Capacity: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo := &MockRoomRepository{}
	svc := NewService(repo, &MockBookingCounter{}, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(ctx, CreateRoomRequest{RoomNumber: "101", RoomType: "single", PricePerNight: 10, Capacity: 1})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)
}

func TestUpdate_StatusRules(t *testing.T) {
	cases := []struct {
		name    string
		current domain.RoomStatus
		next    string
		wantErr error
	}{
		{"available to maintenance", domain.RoomAvailable, "maintenance", nil},
		{"maintenance to available", domain.RoomMaintenance, "available", nil},
		{"available to booked", domain.RoomAvailable, "booked", ErrStatusManagedByBookings},
		{"available to occupied", domain.RoomAvailable, "occupied", ErrStatusManagedByBookings},
		{"booked to available", domain.RoomBooked, "available", ErrStatusManagedByBookings},
		{"occupied to maintenance", domain.RoomOccupied, "maintenance", ErrStatusManagedByBookings},
		{"unknown status", domain.RoomAvailable, "flooded", ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockRoomRepository{}
			svc := NewService(repo, &MockBookingCounter{}, nil)
			ctx := context.Background()

			repo.On("GetByID", ctx, int64(1)).Return(baseRoom(tc.current), nil)
			repo.On("UpdateDetails", ctx, mock.Anything, tc.current).Return(nil)

			r, err := svc.Update(ctx, 1, UpdateRoomRequest{Status: strPtr(tc.next)})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				repo.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.RoomStatus(tc.next), r.Status)
		})
	}
}

func TestUpdate_BookedRoomDetailsKeepStatus(t *testing.T) {
	repo := &MockRoomRepository{}
	svc := NewService(repo, &MockBookingCounter{}, nil)
	ctx := context.Background()
	price := 180.0

	repo.On("GetByID", ctx, int64(1)).Return(baseRoom(domain.RoomBooked), nil)
	repo.On("UpdateDetails", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Status == domain.RoomBooked && r.PricePerNight == 180
	}), domain.RoomBooked).Return(nil)

	r, err := svc.Update(ctx, 1, UpdateRoomRequest{PricePerNight: &price, Status: strPtr("booked")})
	require.NoError(t, err)
	assert.Equal(t, 180.0, r.PricePerNight)
	repo.AssertExpectations(t)
}

func TestUpdate_ConcurrentStatusChange(t *testing.T) {
	repo := &MockRoomRepository{}
	svc := NewService(repo, &MockBookingCounter{}, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(baseRoom(domain.RoomAvailable), nil)
	repo.On("UpdateDetails", ctx, mock.Anything, domain.RoomAvailable).Return(repository.ErrStatusConflict)

	_, err := svc.Update(ctx, 1, UpdateRoomRequest{Status: strPtr("maintenance")})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestDelete_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("active booking", func(t *testing.T) {
		repo, counter := &MockRoomRepository{}, &MockBookingCounter{}
		repo.On("GetByID", ctx, int64(1)).Return(baseRoom(domain.RoomBooked), nil)
		counter.On("CountActiveForRoom", ctx, int64(1)).Return(int64(1), nil)

		err := NewService(repo, counter, nil).Delete(ctx, 1)
		assert.ErrorIs(t, err, ErrRoomInUse)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("history", func(t *testing.T) {
		repo, counter := &MockRoomRepository{}, &MockBookingCounter{}
		repo.On("GetByID", ctx, int64(1)).Return(baseRoom(domain.RoomAvailable), nil)
		counter.On("CountActiveForRoom", ctx, int64(1)).Return(int64(0), nil)
		counter.On("CountForRoom", ctx, int64(1)).Return(int64(3), nil)

		err := NewService(repo, counter, nil).Delete(ctx, 1)
		assert.ErrorIs(t, err, ErrRoomHasHistory)
	})

	t.Run("unused", func(t *testing.T) {
		repo, counter := &MockRoomRepository{}, &MockBookingCounter{}
		repo.On("GetByID", ctx, int64(1)).Return(baseRoom(domain.RoomAvailable), nil)
		repo.On("Delete", ctx, int64(1)).Return(nil)
		counter.On("CountActiveForRoom", ctx, int64(1)).Return(int64(0), nil)
		counter.On("CountForRoom", ctx, int64(1)).Return(int64(0), nil)

		require.NoError(t, NewService(repo, counter, nil).Delete(ctx, 1))
		repo.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		repo := &MockRoomRepository{}
		repo.On("GetByID", ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		err := NewService(repo, &MockBookingCounter{}, nil).Delete(ctx, 9)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestList_StatusFilter(t *testing.T) {
	repo := &MockRoomRepository{}
	svc := NewService(repo, &MockBookingCounter{}, nil)
	ctx := context.Background()

	repo.On("List", ctx, mock.MatchedBy(func(s *domain.RoomStatus) bool {
		return s != nil && *s == domain.RoomMaintenance
	})).Return([]domain.Room{*baseRoom(domain.RoomMaintenance)}, nil)

	rooms, err := svc.List(ctx, "maintenance")
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = svc.List(ctx, "haunted")
	assert.ErrorIs(t, err, ErrValidation)

	repo.On("List", ctx, (*domain.RoomStatus)(nil)).Return(nil, errors.New("db down"))
	_, err = svc.List(ctx, "")
	assert.Error(t, err)
}
