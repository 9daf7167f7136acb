package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/modules/room"
	"hotel/internal/modules/user"
	"hotel/internal/pkg/logger"
	"hotel/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultUsers = []user.CreateUserRequest{
	{Username: "admin", Password: "admin123", Role: "admin"},
	{Username: "staff", Password: "staff123", Role: "staff"},
}

var sampleRooms = []room.CreateRoomRequest{
	{RoomNumber: "101", RoomType: "single", PricePerNight: 80, Floor: 1, Capacity: 1, Amenities: "WiFi, TV"},
	{RoomNumber: "102", RoomType: "single", PricePerNight: 80, Floor: 1, Capacity: 1, Amenities: "WiFi, TV"},
	{RoomNumber: "201", RoomType: "double", PricePerNight: 120, Floor: 2, Capacity: 2, Amenities: "WiFi, TV, Mini bar"},
	{RoomNumber: "202", RoomType: "double", PricePerNight: 120, Floor: 2, Capacity: 2, Amenities: "WiFi, TV, Mini bar"},
	{RoomNumber: "301", RoomType: "suite", PricePerNight: 250, Floor: 3, Capacity: 4, Amenities: "WiFi, TV, Mini bar, Jacuzzi"},
	{RoomNumber: "401", RoomType: "deluxe", PricePerNight: 400, Floor: 4, Capacity: 4, Amenities: "WiFi, TV, Mini bar, Balcony, Sea view"},
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.IsProdLike(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("database migrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, db, zl); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	zl.Info("seed completed")
}

// seed is safe to run repeatedly: users are matched by username and rooms
// are only added to an empty table.
func seed(ctx context.Context, db *gorm.DB, zl *zap.Logger) error {
	users := user.NewService(repository.NewUserRepository(db), zl)
	for _, u := range defaultUsers {
		created, err := users.EnsureUser(ctx, u)
		if err != nil {
			return err
		}
		if created {
			zl.Info("user created", zap.String("username", u.Username), zap.String("role", u.Role))
		} else {
			zl.Info("user exists, skipped", zap.String("username", u.Username))
		}
	}

	roomRepo := repository.NewRoomRepository(db)
	n, err := roomRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		zl.Info("rooms already present, skipped", zap.Int64("rooms", n))
		return nil
	}

	rooms := room.NewService(roomRepo, repository.NewBookingRepository(db), zl)
	for _, r := range sampleRooms {
		if _, err := rooms.Create(ctx, r); err != nil {
			return err
		}
	}
	zl.Info("sample rooms created", zap.Int("rooms", len(sampleRooms)))
	return nil
}
