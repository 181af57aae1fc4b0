package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/SscSPs/livro_caixa/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles sign-up, sign-in and token rotation.
type authHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	drawer             portssvc.DrawerSvcFacade
	cookieName         string
	cookiePath         string
	secureCookie       bool
}

func newAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:        services.User,
		tokenService:       services.Token,
		googleOAuthService: services.GoogleOAuth,
		drawer:             services.Drawer,
		cookieName:         cfg.RefreshTokenCookieName,
		cookiePath:         cfg.RefreshTokenCookiePath,
		secureCookie:       cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the public authentication routes behind the IP rate limiter.
// Logout needs a valid access token, so it goes through authMW.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, ipLimiter *limiter.Limiter, authMW gin.HandlerFunc) {
	h := newAuthHandler(cfg, services)

	auth := r.Group("/api/v1/auth")
	{
		limited := auth.Group("", middleware.RateLimit(ipLimiter))
		limited.POST("/register", h.register)
		limited.POST("/login", h.login)
		limited.POST("/refresh", h.refresh)
		limited.POST("/google/exchange-code", h.exchangeCodeGoogle)

		auth.POST("/logout", authMW, h.logout)
	}
}

func (h *authHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, maxAge, h.cookiePath, "", h.secureCookie, true)
}

// respondWithTokens issues a token pair for user and writes the auth response.
func (h *authHandler) respondWithTokens(c *gin.Context, status int, user *domain.User) {
	pair, err := h.tokenService.IssueTokens(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err, "Falha ao gerar tokens")
		return
	}
	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	c.JSON(status, dto.AuthResponse{
		AccessToken:          pair.AccessToken,
		AccessTokenExpiresAt: pair.AccessTokenExpiresAt,
		RefreshToken:         pair.RefreshToken,
		User:                 dto.ToUserResponse(user),
	})
}

// register godoc
// @Summary Register new user
// @Description Creates an account with email and password and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Falha ao cadastrar usuário")
		return
	}
	h.respondWithTokens(c, http.StatusCreated, user)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token. The refresh token is also set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "Falha ao autenticar")
		return
	}
	h.respondWithTokens(c, http.StatusOK, user)
}

// refresh godoc
// @Summary Refresh tokens
// @Description Rotates the refresh token (cookie or body) and issues a new access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token when no cookie is sent"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	token, _ := c.Cookie(h.cookieName)
	if token == "" {
		var req dto.RefreshTokenRequest
		// An empty body is fine here; the missing token is reported below.
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token ausente"})
		return
	}

	user, pair, err := h.tokenService.RefreshTokens(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			h.setRefreshCookie(c, "", time.Time{})
		}
		handleServiceError(c, err, "Falha ao renovar sessão")
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:          pair.AccessToken,
		AccessTokenExpiresAt: pair.AccessTokenExpiresAt,
		RefreshToken:         pair.RefreshToken,
		User:                 dto.ToUserResponse(user),
	})
}

// logout godoc
// @Summary Logout
// @Description Revokes the stored refresh token and clears the cookie.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.tokenService.RevokeTokens(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err, "Falha ao encerrar sessão")
		return
	}
	h.drawer.Forget(c.Request.Context(), userID)
	h.setRefreshCookie(c, "", time.Time{})
	c.Status(http.StatusNoContent)
}

// exchangeCodeGoogle godoc
// @Summary Sign in with Google
// @Description Exchanges a Google authorization code, validates the ID token and signs the user in, creating the account on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse "Google unavailable"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Código de autorização é obrigatório")
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Falha ao comunicar com o Google")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Código de autorização inválido ou expirado")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Falha ao obter identidade do Google")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Token do Google inválido")
		c.JSON(appErr.Code, appErr)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token", slog.Any("claims", payload.Claims))
		appErr := apperrors.NewInternalServerError("Dados do usuário ausentes no token do Google")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, name, email, domain.ProviderGoogle, payload.Subject, emailVerified)
	if err != nil {
		handleServiceError(c, err, "Falha ao processar login com Google")
		return
	}
	logger.Info("User signed in with Google", slog.String("user_id", user.UserID))
	h.respondWithTokens(c, http.StatusOK, user)
}
