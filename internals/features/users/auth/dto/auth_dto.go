package dto

import (
	userModel "campusevents_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=50"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
	UserFullName string `json:"user_full_name" validate:"required,max=100"`
	CollegeID    string `json:"college_id" validate:"required,uuid"`
}

type LoginRequest struct {
	// username or email, either works
	Identifier   string `json:"identifier" validate:"required"`
	UserPassword string `json:"user_password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// CreateAdminRequest: an existing admin provisions a new admin account.
type CreateAdminRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=50"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
	UserFullName string `json:"user_full_name" validate:"required,max=100"`
	CollegeID    string `json:"college_id" validate:"required,uuid"`
}

type AuthResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         *userModel.UserModel `json:"user"`
}
