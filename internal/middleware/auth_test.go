package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/internal/domain"
	"hotel/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

type stubUsers struct {
	users map[int64]*domain.User
	err   error
}

func (s stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func protectedRouter(t *testing.T, tokens TokenValidator, revoked RevocationChecker) *gin.Engine {
	t.Helper()
	return protectedRouterWithUsers(t, tokens, revoked, nil)
}

func protectedRouterWithUsers(t *testing.T, tokens TokenValidator, revoked RevocationChecker, users UserLookup) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(JWTAuth(tokens, revoked, users, nil))
	router.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"role":    role,
			"has_jti": ClaimsFrom(c) != nil && ClaimsFrom(c).ID != "",
		})
	})
	return router
}

func doGet(router http.Handler, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", 1*time.Hour)
	validToken, err := jwtService.GenerateToken(42, "staff")
	require.NoError(t, err)

	w := doGet(protectedRouter(t, jwtService, nil), "Bearer "+validToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "staff")
	assert.Contains(t, w.Body.String(), `"has_jti":true`)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	w := doGet(protectedRouter(t, jwt.New("wrong-secret", time.Hour), nil), "Bearer invalid-jwt-here")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_NoToken(t *testing.T) {
	w := doGet(protectedRouter(t, jwt.New("secret", time.Hour), nil), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	w := doGet(protectedRouter(t, jwt.New("secret", time.Hour), nil), "Basic dGVzdA==")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken(1, "admin")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	revoked := stubRevocations{revoked: map[string]bool{claims.ID: true}}
	w := doGet(protectedRouter(t, jwtService, revoked), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuth_RevocationStoreDown(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken(1, "admin")
	require.NoError(t, err)

	w := doGet(protectedRouter(t, jwtService, stubRevocations{err: errors.New("redis down")}), "Bearer "+token)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAVAILABLE")
}

func TestJWTAuth_DeletedUser(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken(9, "admin")
	require.NoError(t, err)

	w := doGet(protectedRouterWithUsers(t, jwtService, nil, stubUsers{}), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "USER_NOT_FOUND")
}

func TestJWTAuth_RoleFromStoredUser(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken(9, "admin")
	require.NoError(t, err)

	users := stubUsers{users: map[int64]*domain.User{9: {ID: 9, Username: "night", Role: domain.RoleStaff}}}
	w := doGet(protectedRouterWithUsers(t, jwtService, nil, users), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestJWTAuth_UserLookupFails(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, err := jwtService.GenerateToken(9, "admin")
	require.NoError(t, err)

	w := doGet(protectedRouterWithUsers(t, jwtService, nil, stubUsers{err: errors.New("db down")}), "Bearer "+token)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAVAILABLE")
}
