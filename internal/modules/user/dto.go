package user

type CreateUserRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=80"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"required"`
}
