package domain

import (
	"fmt"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "success get current user"
	MessageSuccessLogout   = "logout successful"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to get current user"
	MessageFailedLogout   = "failed to logout"

	ErrUserNotFound           = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailAlreadyRegistered = fmt.Errorf("email already registered: %w", ErrBadRequest)
	ErrInvalidCredentials     = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrUserBanned             = fmt.Errorf("user is banned: %w", ErrForbidden)
)

type (
	RegisterRequest struct {
		Email       string `json:"email" form:"email" validate:"required,email,max=255"`
		DisplayName string `json:"display_name" form:"display_name" validate:"required,max=100"`
		Password    string `json:"password" form:"password" validate:"required,min=6,has_digit"`
	}

	LoginRequest struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	AuthResponse struct {
		Token       string   `json:"token,omitempty"`
		UserID      string   `json:"user_id"`
		Email       string   `json:"email"`
		DisplayName string   `json:"display_name"`
		IsAdmin     bool     `json:"is_admin"`
		Roles       []string `json:"roles"`
	}

	UserSummary struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		IsBanned    bool   `json:"is_banned"`
	}
)
