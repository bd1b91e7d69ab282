package auth

import "context"

type AuthService interface {
	// Register creates the initial account for a platform user.
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)

	// Login authenticates with email and password.
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken exchanges a valid, non-revoked refresh token for a new
	// access token.
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Logout revokes the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
