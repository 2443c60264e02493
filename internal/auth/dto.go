package auth

import (
	"github.com/anupamtiwari/homecraft-backend/internal/users"
)

// EmailExistsRequest is the check-email payload.
type EmailExistsRequest struct {
	Email string `json:"email"`
}

// EmailExistsResponse reports whether a customer account exists for the
// address.
type EmailExistsResponse struct {
	Exists bool `json:"exists"`
}

// SendOTPRequest asks for a login code to be mailed.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest exchanges a mailed code for a session.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// AdminLoginRequest carries the back-office credentials.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse contains the tokens and user produced by a successful OTP
// verification.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// AdminLoginResponse mirrors LoginResponse for the back office.
type AdminLoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Admin        *users.AdminDTO `json:"admin"`
}

// RefreshRequest rotates a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
