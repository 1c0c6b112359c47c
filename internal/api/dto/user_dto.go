package dto

import "github.com/itops/helpdesk-service/internal/domain"

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public view of a credential-store user.
type UserResponse struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     domain.UserRole `json:"role"`
	IsActive bool            `json:"is_active"`
}

// NewUserResponse maps a domain user, omitting the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// VerifyResponse confirms a valid session.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  UserResponse `json:"user"`
}
