package models

import "github.com/golang-jwt/jwt/v5"

// SignupRequest carries the self-service registration payload.
type SignupRequest struct {
	Name            string   `json:"name" validate:"required,min=3,max=40"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	PasswordConfirm string   `json:"passwordConfirm" validate:"required,eqfield=Password"`
	College         string   `json:"college" validate:"required"`
	Role            UserRole `json:"role" validate:"omitempty,oneof=student college_admin super_admin"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the issued token alongside the account. The same
// token also travels as an http-only cookie; clients may use either.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// JWTClaims is the bearer token payload.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
