package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/pkg/jwt"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// UserLookup loads the account a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth requires a valid bearer token and stores user_id, role and the
// parsed claims in the gin context. When users is set the account is
// reloaded on every request: deleted accounts are rejected and the role
// comes from the stored row. revoked and users may be nil.
func JWTAuth(tokens TokenValidator, revoked RevocationChecker, users UserLookup, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Error("token revocation check failed", zap.Error(err), zap.String("request_id", RequestIDFrom(c)))
				response.Abort(c, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "Unable to verify session")
				return
			}
			if isRevoked {
				response.Abort(c, http.StatusUnauthorized, "TOKEN_REVOKED", "Session has been logged out")
				return
			}
		}

		role := claims.Role
		if users != nil {
			u, err := users.GetByID(c.Request.Context(), claims.UserID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Abort(c, http.StatusUnauthorized, "USER_NOT_FOUND", "Account no longer exists")
				return
			}
			if err != nil {
				log.Error("user lookup failed", zap.Error(err), zap.String("request_id", RequestIDFrom(c)))
				response.Abort(c, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "Unable to verify session")
				return
			}
			role = string(u.Role)
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, role)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by JWTAuth, or nil.
func ClaimsFrom(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
