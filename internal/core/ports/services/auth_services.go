package services

import (
	"context"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenPair is what a client receives after signing in.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// IssueTokens signs an access token and stores a fresh refresh token for user.
	IssueTokens(ctx context.Context, user *domain.User) (*TokenPair, error)

	// RefreshTokens validates a refresh token and rotates both tokens.
	RefreshTokens(ctx context.Context, refreshToken string) (*domain.User, *TokenPair, error)

	// RevokeTokens drops the stored refresh token of the user.
	RevokeTokens(ctx context.Context, userID string) error
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
