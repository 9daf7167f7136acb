package auth

import (
	"errors"
	"net/http"

	"hotel/internal/middleware"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts login. Extra handlers, such as a rate limiter,
// run before the login handler.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, loginGuards ...gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", append(loginGuards, h.Login)...)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.GetMe)
	}
}

// Login exchanges staff credentials for an access token.
// @Summary		Log in
// @Description	Checks username and password and returns a signed JWT access token.
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		request	body	LoginRequest	true	"Username and password"
// @Success		200	{object}	LoginResponse
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Invalid credentials"
// @Failure		429	{object}	map[string]interface{} "Too many attempts"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		User:        toPublic(res.User),
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.service.tokens.TTL().Seconds()),
	})
}

// Logout revokes the current access token.
// @Summary		Log out
// @Tags		Auth
// @Security	BearerAuth
// @Produce		json
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "LOGOUT_FAILED", "Failed to revoke session")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetMe returns the authenticated user.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Produce		json
// @Success		200	{object}	UserPublic
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
		return
	}

	user, err := h.service.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User no longer exists")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user)})
}
