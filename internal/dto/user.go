package dto

import "github.com/SscSPs/livro_caixa/internal/core/domain"

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID        string `json:"userID"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	AuthProvider  string `json:"authProvider"`
	EmailVerified bool   `json:"emailVerified"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Email:         user.Email,
		Name:          user.Name,
		AuthProvider:  string(user.AuthProvider),
		EmailVerified: user.EmailVerified,
	}
}
