package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked    = errors.New("refresh token has been revoked")
	ErrUserNotFound           = errors.New("user not found")
	ErrGoogleNotRegistered    = errors.New("google account is not registered as an administrator")
	ErrGoogleEmailNotVerified = errors.New("google email is not verified")
	ErrInvalidOAuthState      = errors.New("invalid oauth state")
)
