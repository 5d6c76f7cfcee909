package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	// Role is restricted to customer/seller; admins are seeded.
	Role string `json:"role" validate:"required,oneof=customer seller"`
	// StoreName is required when registering a seller.
	StoreName string `json:"store_name,omitempty"`
}

type RegisterResponse struct {
	UserId uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string    `json:"token"`
	UserId   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	FullName string    `json:"full_name"`
}
