package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Email           string `form:"email"`
	FullName        string `form:"name"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm-password"`
}

type LoginRequest struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type UserResponse struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}
