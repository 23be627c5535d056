package services

import (
	"context"
	"time"
)

// ClientCredentialProvider verifies API client credentials.
type ClientCredentialProvider interface {
	// Authenticate returns apperrors.ErrUnauthorized when the credentials do not match.
	Authenticate(ctx context.Context, clientID, clientSecret string) error
}

// AuthSvc issues bearer tokens to authenticated API clients.
type AuthSvc interface {
	IssueToken(ctx context.Context, clientID, clientSecret string) (token string, expiresAt time.Time, err error)
}
