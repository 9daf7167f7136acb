package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/modules/user"
	"hotel/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Connect(fmt.Sprintf("file:api_test_%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	users := user.NewService(repository.NewUserRepository(db), nil)
	_, err = users.EnsureUser(context.Background(), user.CreateUserRequest{Username: "admin", Password: "admin123", Role: "admin"})
	require.NoError(t, err)
	_, err = users.EnsureUser(context.Background(), user.CreateUserRequest{Username: "staff", Password: "staff123", Role: "staff"})
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:          "test",
		JWTSecret:       "test-secret",
		JWTAccessTTL:    time.Hour,
		LoginRatePerMin: 100,
	}
	a := newApp(cfg, zap.NewNop(), db, nil, nil)
	return &testServer{t: t, router: a.router()}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, code)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &out))
	return out.AccessToken
}

func decodeID(t *testing.T, data json.RawMessage, key string) int64 {
	t.Helper()
	var out map[string]struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotZero(t, out[key].ID)
	return out[key].ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", env.Error.Code)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestStaffCannotManageRoomsOrUsers(t *testing.T) {
	s := newTestServer(t)
	staff := s.login("staff", "staff123")

	code, _ := s.do(http.MethodPost, "/api/v1/rooms", staff, gin.H{"room_number": "101", "room_type": "single", "price_per_night": 80, "capacity": 1})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/v1/users", staff, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/v1/rooms", staff, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDeletedUserTokenIsRejected(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")

	code, env := s.do(http.MethodPost, "/api/v1/users", admin, gin.H{"username": "temp", "password": "temp123", "role": "admin"})
	require.Equal(t, http.StatusCreated, code)
	tempID := decodeID(t, env.Data, "user")
	temp := s.login("temp", "temp123")

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", tempID), admin, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/v1/users", temp, gin.H{"username": "ghost", "password": "ghost123", "role": "admin"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin123")
	staff := s.login("staff", "staff123")

	code, env := s.do(http.MethodPost, "/api/v1/rooms", admin, gin.H{"room_number": "201", "room_type": "double", "price_per_night": 150, "floor": 2, "capacity": 2})
	require.Equal(t, http.StatusCreated, code)
	roomID := decodeID(t, env.Data, "room")

	code, env = s.do(http.MethodPost, "/api/v1/guests", staff, gin.H{"name": "Ann Lee", "phone": "555-0100"})
	require.Equal(t, http.StatusCreated, code)
	guestID := decodeID(t, env.Data, "guest")

	code, env = s.do(http.MethodPost, "/api/v1/bookings", staff, gin.H{
		"room_id": roomID, "guest_id": guestID,
		"check_in_date": "2024-05-01", "check_out_date": "2024-05-03",
	})
	require.Equal(t, http.StatusCreated, code)
	bookingID := decodeID(t, env.Data, "booking")

	code, env = s.do(http.MethodPost, "/api/v1/bookings", staff, gin.H{
		"room_id": roomID, "guest_id": guestID,
		"check_in_date": "2024-05-05", "check_out_date": "2024-05-06",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ROOM_UNAVAILABLE", env.Error.Code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/check-in", bookingID), staff, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/payments", bookingID), staff, gin.H{
		"amount": 300, "payment_method": "card", "payment_status": "completed",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.do(http.MethodGet, "/api/v1/dashboard", staff, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		OccupiedRooms  int64 `json:"occupied_rooms"`
		ActiveBookings int64 `json:"active_bookings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.OccupiedRooms)
	assert.Equal(t, int64(1), stats.ActiveBookings)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/bookings/%d/check-out", bookingID), staff, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), staff, nil)
	require.Equal(t, http.StatusOK, code)
	var details struct {
		Booking struct {
			Status      string  `json:"status"`
			TotalAmount float64 `json:"total_amount"`
		} `json:"booking"`
		Summary struct {
			BalanceDue float64 `json:"balance_due"`
		} `json:"payment_summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, "checked_out", details.Booking.Status)
	assert.Equal(t, 300.0, details.Booking.TotalAmount)
	assert.Equal(t, 0.0, details.Summary.BalanceDue)

	code, env = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/guests/%d", guestID), staff, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "GUEST_HAS_BOOKINGS", env.Error.Code)
}
