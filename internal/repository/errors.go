package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrStatusConflict is returned by compare-and-set updates when the row
// no longer holds the expected status.
var ErrStatusConflict = errors.New("status changed concurrently")

const pgUniqueViolation = "23505"

// IsUniqueViolation detects duplicate-key errors from postgres and sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
