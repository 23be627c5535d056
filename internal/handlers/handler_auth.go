package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/dkk_exchange_service/internal/apperrors"
	portssvc "github.com/SscSPs/dkk_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/dkk_exchange_service/internal/dto"
	"github.com/SscSPs/dkk_exchange_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// tokenRateLimit caps token requests per IP.
const tokenRateLimit = "5-M"

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvc
}

func newAuthHandler(as portssvc.AuthSvc) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public token endpoint.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc) {
	h := newAuthHandler(authService)

	rate, _ := limiter.NewRateFromFormatted(tokenRateLimit)
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/token", limitMiddleware, h.issueToken)
	}
}

// issueToken godoc
// @Summary Issue an API token
// @Description Exchanges API client credentials for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.TokenRequest true "Client credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	token, expiresAt, err := h.authService.IssueToken(c.Request.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid client credentials"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}
