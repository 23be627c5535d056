package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	"github.com/SscSPs/dkk_exchange_service/internal/core/services"
	"github.com/SscSPs/dkk_exchange_service/internal/utils"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	provider *services.StaticClientProvider
	ctx      context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	hash, err := utils.HashClientSecret("s3cret")
	suite.Require().NoError(err)
	suite.provider = services.NewStaticClientProvider(map[string]string{"reporting": hash})
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) TestAuthenticate() {
	suite.NoError(suite.provider.Authenticate(suite.ctx, "reporting", "s3cret"))
	suite.ErrorIs(suite.provider.Authenticate(suite.ctx, "reporting", "wrong"), apperrors.ErrUnauthorized)
	suite.ErrorIs(suite.provider.Authenticate(suite.ctx, "unknown", "s3cret"), apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestIssueToken_Success() {
	svc := services.NewAuthService(suite.provider, testJWTSecret, time.Hour, "dkk-exchange-service")

	token, expiresAt, err := svc.IssueToken(suite.ctx, "reporting", "s3cret")

	suite.Require().NoError(err)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, testJWTSecret)
	suite.Require().NoError(err)
	suite.Equal("reporting", claims.Subject)
	suite.Equal("dkk-exchange-service", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestIssueToken_BadCredentials() {
	svc := services.NewAuthService(suite.provider, testJWTSecret, time.Hour, "issuer")

	token, _, err := svc.IssueToken(suite.ctx, "reporting", "nope")

	suite.Empty(token)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
