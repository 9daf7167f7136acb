package auth

import "hotel/internal/domain"

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"admin"`
	Password string `json:"password" form:"password" binding:"required" example:"admin123"`
}

type UserPublic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	User        UserPublic `json:"user"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Role: string(u.Role)}
}
