package auth

import "context"

// RefreshTokenRepository persists refresh tokens by their SHA-256 hash.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports the owner of token and whether it is revoked or expired.
	// An unknown token returns ErrInvalidToken.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
