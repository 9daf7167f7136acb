package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Connect(fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func seedRoomAndGuest(t *testing.T, db *gorm.DB) (*domain.Room, *domain.Guest) {
	t.Helper()
	ctx := context.Background()

	room := &domain.Room{
		RoomNumber:    "101",
		RoomType:      domain.RoomDouble,
		PricePerNight: 120,
		Status:        domain.RoomAvailable,
		Floor:         1,
		Capacity:      2,
	}
	require.NoError(t, repository.NewRoomRepository(db).Create(ctx, room))

	guest := &domain.Guest{Name: "Ada Lovelace", Phone: "555-0101", Email: "ada@example.com"}
	require.NoError(t, repository.NewGuestRepository(db).Create(ctx, guest))

	return room, guest
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRoomRepository_CompareAndSetStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	room, _ := seedRoomAndGuest(t, db)
	repo := repository.NewRoomRepository(db)

	require.NoError(t, repo.CompareAndSetStatus(ctx, room.ID, domain.RoomAvailable, domain.RoomBooked))

	err := repo.CompareAndSetStatus(ctx, room.ID, domain.RoomAvailable, domain.RoomBooked)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	got, err := repo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomBooked, got.Status)
}

func TestRoomRepository_UniqueRoomNumber(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedRoomAndGuest(t, db)

	dup := &domain.Room{RoomNumber: "101", RoomType: domain.RoomSingle, PricePerNight: 80, Status: domain.RoomAvailable, Capacity: 1}
	err := repository.NewRoomRepository(db).Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestRoomRepository_ListByStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewRoomRepository(db)

	for _, r := range []domain.Room{
		{RoomNumber: "202", RoomType: domain.RoomSuite, PricePerNight: 300, Status: domain.RoomMaintenance, Floor: 2, Capacity: 4},
		{RoomNumber: "201", RoomType: domain.RoomSingle, PricePerNight: 90, Status: domain.RoomAvailable, Floor: 2, Capacity: 1},
	} {
		r := r
		require.NoError(t, repo.Create(ctx, &r))
	}

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "201", all[0].RoomNumber)

	available := domain.RoomAvailable
	onlyAvailable, err := repo.List(ctx, &available)
	require.NoError(t, err)
	require.Len(t, onlyAvailable, 1)
	assert.Equal(t, "201", onlyAvailable[0].RoomNumber)
}

func TestBookingRepository_UpdateStatusStampsTimes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	room, guest := seedRoomAndGuest(t, db)
	repo := repository.NewBookingRepository(db)

	b := &domain.Booking{
		RoomID:       room.ID,
		GuestID:      guest.ID,
		CheckInDate:  date(2024, 3, 1),
		CheckOutDate: date(2024, 3, 3),
		Status:       domain.BookingConfirmed,
		TotalAmount:  240,
	}
	require.NoError(t, repo.Create(ctx, b))
	require.NotZero(t, b.ID)

	at := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCheckedIn, at))

	err := repo.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCancelled, at)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	got, err := repo.GetByIDForUpdate(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, got.Status)
	require.NotNil(t, got.CheckedInAt)
	assert.True(t, got.CheckedInAt.Equal(at))
	assert.Nil(t, got.CheckedOutAt)
	assert.Equal(t, date(2024, 3, 1), got.CheckInDate)
	assert.Equal(t, 2, got.Nights())
}

func TestBookingRepository_ListAndCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	room, guest := seedRoomAndGuest(t, db)
	repo := repository.NewBookingRepository(db)

	today := date(2024, 5, 10)
	fixtures := []domain.Booking{
		{RoomID: room.ID, GuestID: guest.ID, CheckInDate: today, CheckOutDate: today.AddDate(0, 0, 2), Status: domain.BookingConfirmed, TotalAmount: 240},
		{RoomID: room.ID, GuestID: guest.ID, CheckInDate: today.AddDate(0, 0, -2), CheckOutDate: today, Status: domain.BookingCheckedIn, TotalAmount: 240},
		{RoomID: room.ID, GuestID: guest.ID, CheckInDate: today, CheckOutDate: today.AddDate(0, 0, 1), Status: domain.BookingCancelled, TotalAmount: 120},
	}
	for i := range fixtures {
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
	}

	list, total, err := repo.List(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 3)
	for i, got := range list {
		want := fixtures[len(fixtures)-1-i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.TotalAmount, got.TotalAmount)
		assert.Equal(t, want.CheckInDate, got.CheckInDate)
	}
	require.NotNil(t, list[0].Room)
	assert.Equal(t, "101", list[0].Room.RoomNumber)
	require.NotNil(t, list[0].Guest)
	assert.Equal(t, "Ada Lovelace", list[0].Guest.Name)

	confirmed, total, err := repo.List(ctx, repository.BookingFilter{Status: domain.BookingConfirmed, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, confirmed, 1)
	assert.Equal(t, fixtures[0].ID, confirmed[0].ID)

	page, total, err := repo.List(ctx, repository.BookingFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	arrivals, err := repo.CountArrivals(ctx, today.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), arrivals)

	departures, err := repo.CountDepartures(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), departures)

	forRoom, err := repo.CountActiveForRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), forRoom)

	forGuest, err := repo.CountForGuest(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), forGuest)
}

func TestGuestRepository_ListSearch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewGuestRepository(db)

	require.NoError(t, repo.Create(ctx, &domain.Guest{Name: "Grace Hopper", Phone: "555-0001", Email: "grace@navy.mil"}))
	require.NoError(t, repo.Create(ctx, &domain.Guest{Name: "Alan Turing", Phone: "555-0002"}))

	got, err := repo.List(ctx, "grace")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grace Hopper", got[0].Name)

	got, err = repo.List(ctx, "555-0002")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alan Turing", got[0].Name)

	got, err = repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	room, guest := seedRoomAndGuest(t, db)
	uow := repository.NewUnitOfWork(db)

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rooms().CompareAndSetStatus(ctx, room.ID, domain.RoomAvailable, domain.RoomBooked))
	require.NoError(t, tx.Bookings().Create(ctx, &domain.Booking{
		RoomID: room.ID, GuestID: guest.ID,
		CheckInDate: date(2024, 1, 1), CheckOutDate: date(2024, 1, 2),
		Status: domain.BookingConfirmed, TotalAmount: 120,
	}))
	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Rollback())

	got, err := repository.NewRoomRepository(db).GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, got.Status)

	n, err := repository.NewBookingRepository(db).CountForRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUnitOfWork_CommitThenRollbackIsNoop(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	room, _ := seedRoomAndGuest(t, db)
	uow := repository.NewUnitOfWork(db)

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rooms().SetStatus(ctx, room.ID, domain.RoomMaintenance))
	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())
	assert.Error(t, tx.Commit())

	got, err := repository.NewRoomRepository(db).GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, got.Status)
}
