package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/utils"
)

// StaticClientProvider authenticates API clients against a fixed set of bcrypt hashed secrets.
type StaticClientProvider struct {
	secretHashes map[string]string
}

// NewStaticClientProvider builds a provider from clientID -> bcrypt hash pairs.
func NewStaticClientProvider(secretHashes map[string]string) *StaticClientProvider {
	copied := make(map[string]string, len(secretHashes))
	for id, hash := range secretHashes {
		copied[id] = hash
	}
	return &StaticClientProvider{secretHashes: copied}
}

var _ portssvc.ClientCredentialProvider = (*StaticClientProvider)(nil)

// Authenticate returns apperrors.ErrUnauthorized unless clientSecret matches the stored hash.
func (p *StaticClientProvider) Authenticate(ctx context.Context, clientID, clientSecret string) error {
	hash, ok := p.secretHashes[clientID]
	if !ok || !utils.CheckClientSecret(clientSecret, hash) {
		return apperrors.ErrUnauthorized
	}
	return nil
}

type authService struct {
	BaseService
	provider portssvc.ClientCredentialProvider
	secret   string
	expiry   time.Duration
	issuer   string
}

// NewAuthService creates a token issuer backed by provider.
func NewAuthService(provider portssvc.ClientCredentialProvider, jwtSecret string, expiry time.Duration, issuer string) portssvc.AuthSvc {
	return &authService{
		provider: provider,
		secret:   jwtSecret,
		expiry:   expiry,
		issuer:   issuer,
	}
}

// IssueToken verifies the client credentials and signs a bearer token for clientID.
func (s *authService) IssueToken(ctx context.Context, clientID, clientSecret string) (string, time.Time, error) {
	if err := s.provider.Authenticate(ctx, clientID, clientSecret); err != nil {
		s.LogWarn(ctx, "Rejected token request", slog.String("clientID", clientID))
		return "", time.Time{}, err
	}

	token, expiresAt, err := utils.GenerateJWT(clientID, s.secret, s.expiry, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("clientID", clientID))
		return "", time.Time{}, apperrors.NewAppError(500, "failed to issue token", err)
	}

	s.LogInfo(ctx, "Issued token", slog.String("clientID", clientID))
	return token, expiresAt, nil
}
