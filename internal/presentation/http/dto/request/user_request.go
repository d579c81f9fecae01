package request

// CreateUserRequest represents an administrative user creation request
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=255"`
	LastName  string `json:"last_name" binding:"required,min=2,max=255"`
	Username  string `json:"username" binding:"required,min=2,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	RoleIDs   []uint `json:"role_ids" binding:"required,min=1"`
}

// UpdateUserRolesRequest represents a role assignment request
type UpdateUserRolesRequest struct {
	RoleIDs []uint `json:"role_ids" binding:"required"`
}
