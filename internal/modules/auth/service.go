package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication
type Service struct {
	users   UserReader
	tokens  TokenIssuer
	revoker TokenRevoker
	log     *zap.Logger
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

// NewService wires the auth service. revoker may be nil, in which case
// logout only acknowledges the request.
func NewService(users UserReader, tokens TokenIssuer, revoker TokenRevoker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, tokens: tokens, revoker: revoker, log: log}
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Info("login rejected", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{User: user, AccessToken: token}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *Service) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return ErrUnauthorized
	}
	if s.revoker == nil || claims.ID == "" {
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.ID, claims.Expiry()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
