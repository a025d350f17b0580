package dto

// CreateUserRequest is the payload for POST /users
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,max=100"`
}

// UpdateUserRequest is the payload for PATCH /users/:userId. Omitted fields
// are left unchanged.
type UpdateUserRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=100"`
	Avatar *string `json:"avatar" binding:"omitempty,max=255"`
}
