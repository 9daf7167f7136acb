package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/pkg/validator"
	"hotel/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type Service struct {
	users UserRepository
	log   *zap.Logger
}

func NewService(users UserRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, log: log}
}

// HashPassword returns the bcrypt hash stored for a user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	u := &domain.User{
		Username: strings.TrimSpace(req.Username),
		Role:     domain.UserRole(strings.TrimSpace(req.Role)),
	}
	if err := validator.Check(u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.users.GetByUsername(ctx, u.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.Info("user created", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// EnsureUser creates the user unless the username already exists.
func (s *Service) EnsureUser(ctx context.Context, req CreateUserRequest) (bool, error) {
	_, err := s.Create(ctx, req)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUsernameTaken):
		return false, nil
	default:
		return false, err
	}
}

func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.log.Info("user deleted", zap.Int64("user_id", id), zap.Int64("deleted_by", actorID))
	return nil
}
