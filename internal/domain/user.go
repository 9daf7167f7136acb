package domain

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,min=3,max=80"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" validate:"required,oneof=admin staff"`
	CreatedAt    time.Time `json:"created_at"`
}
