package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/core/domain"
	portssvc "github.com/SscSPs/livro_caixa/internal/core/ports/services"
	"github.com/SscSPs/livro_caixa/internal/dto"
	"github.com/SscSPs/livro_caixa/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func sampleUser() *domain.User {
	return &domain.User{UserID: testUserID, Email: "maria@example.com", Name: "Maria", AuthProvider: domain.ProviderLocal}
}

func samplePair() *portssvc.TokenPair {
	now := time.Now()
	return &portssvc.TokenPair{
		AccessToken:           "access-token",
		AccessTokenExpiresAt:  now.Add(time.Hour),
		RefreshToken:          "refresh-raw",
		RefreshTokenExpiresAt: now.Add(24 * time.Hour),
	}
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "rtid" {
			return c
		}
	}
	return nil
}

func (suite *HandlerTestSuite) TestRegister() {
	user := sampleUser()
	suite.mockUser.On("CreateUser", mock.Anything, dto.RegisterRequest{
		Email: "maria@example.com", Password: "segredo123", Name: "Maria",
	}).Return(user, nil).Once()
	suite.mockToken.On("IssueTokens", mock.Anything, user).Return(samplePair(), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/register",
		`{"email": "maria@example.com", "password": "segredo123", "name": "Maria"}`, false)

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("access-token", body["accessToken"])
	suite.Equal("maria@example.com", body["user"].(map[string]any)["email"])

	cookie := refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Equal("refresh-raw", cookie.Value)
	suite.Equal("/api/v1/auth", cookie.Path)
	suite.True(cookie.HttpOnly)
	suite.Greater(cookie.MaxAge, 0)
}

func (suite *HandlerTestSuite) TestRegister_Duplicate() {
	suite.mockUser.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: email já cadastrado", apperrors.ErrDuplicate)).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/register",
		`{"email": "maria@example.com", "password": "segredo123"}`, false)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("email já cadastrado", suite.decode(w)["error"])
}

func (suite *HandlerTestSuite) TestRegister_InvalidBody() {
	for _, body := range []string{
		`{"email": "not-an-email", "password": "segredo123"}`,
		`{"email": "maria@example.com", "password": "123"}`,
		`{"password": "segredo123"}`,
	} {
		w := suite.request(http.MethodPost, "/api/v1/auth/register", body, false)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockUser.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin() {
	user := sampleUser()
	suite.mockUser.On("AuthenticateUser", mock.Anything, "maria@example.com", "segredo123").Return(user, nil).Once()
	suite.mockToken.On("IssueTokens", mock.Anything, user).Return(samplePair(), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/login", `{"email": "maria@example.com", "password": "segredo123"}`, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("refresh-raw", suite.decode(w)["refreshToken"])
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUser.On("AuthenticateUser", mock.Anything, "maria@example.com", "errada").
		Return(nil, fmt.Errorf("%w: Email ou senha incorretos", apperrors.ErrUnauthorized)).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/login", `{"email": "maria@example.com", "password": "errada"}`, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Email ou senha incorretos", suite.decode(w)["error"])
	suite.Nil(refreshCookie(w))
}

func (suite *HandlerTestSuite) TestRefresh_FromCookie() {
	user := sampleUser()
	suite.mockToken.On("RefreshTokens", mock.Anything, "old-refresh").Return(user, samplePair(), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/refresh", nil, false, &http.Cookie{Name: "rtid", Value: "old-refresh"})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("access-token", suite.decode(w)["accessToken"])
	suite.Equal("refresh-raw", refreshCookie(w).Value)
}

func (suite *HandlerTestSuite) TestRefresh_FromBody() {
	suite.mockToken.On("RefreshTokens", mock.Anything, "body-refresh").Return(sampleUser(), samplePair(), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/refresh", `{"refreshToken": "body-refresh"}`, false)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestRefresh_Missing() {
	w := suite.request(http.MethodPost, "/api/v1/auth/refresh", nil, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockToken.AssertNotCalled(suite.T(), "RefreshTokens", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRefresh_ExpiredClearsCookie() {
	suite.mockToken.On("RefreshTokens", mock.Anything, "old-refresh").Return(nil, nil, apperrors.ErrRefreshTokenExpired).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/refresh", nil, false, &http.Cookie{Name: "rtid", Value: "old-refresh"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Sessão expirada", suite.decode(w)["error"])
	cookie := refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)
	suite.Less(cookie.MaxAge, 0)
}

func (suite *HandlerTestSuite) TestLogout() {
	suite.mockToken.On("RevokeTokens", mock.Anything, testUserID).Return(nil).Once()
	suite.mockDrawer.On("Forget", mock.Anything, testUserID).Return().Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/logout", nil, true)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Less(refreshCookie(w).MaxAge, 0)
	suite.mockDrawer.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGoogleExchangeCode() {
	token := (&oauth2.Token{AccessToken: "google-access"}).WithExtra(map[string]interface{}{"id_token": "google-id-token"})
	payload := &idtoken.Payload{
		Subject: "google-sub",
		Claims: map[string]interface{}{
			"email":          "maria@gmail.com",
			"name":           "Maria",
			"email_verified": true,
		},
	}
	user := &domain.User{UserID: testUserID, Email: "maria@gmail.com", Name: "Maria", AuthProvider: domain.ProviderGoogle}

	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "auth-code").Return(token, nil).Once()
	suite.mockGoogle.On("ValidateGoogleIDToken", mock.Anything, "google-id-token").Return(payload, nil).Once()
	suite.mockUser.On("CreateOAuthUser", mock.Anything, "Maria", "maria@gmail.com", domain.ProviderGoogle, "google-sub", true).Return(user, nil).Once()
	suite.mockToken.On("IssueTokens", mock.Anything, user).Return(samplePair(), nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code": "auth-code"}`, false)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("google", body["user"].(map[string]any)["authProvider"])
}

func (suite *HandlerTestSuite) TestGoogleExchangeCode_Failures() {
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "expired").Return(nil, errors.New("oauth2: \"invalid_grant\" \"Bad Request\"")).Once()
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "timeout").Return(nil, errors.New("context deadline exceeded")).Once()
	suite.mockGoogle.On("ExchangeCodeForToken", mock.Anything, "no-id").Return(&oauth2.Token{AccessToken: "x"}, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/auth/google/exchange-code", `{}`, false)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code": "expired"}`, false)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code": "timeout"}`, false)
	suite.Equal(http.StatusGatewayTimeout, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/auth/google/exchange-code", `{"code": "no-id"}`, false)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.AuthRateLimit = "2-M"

	userSvc := new(MockUserService)
	userSvc.On("AuthenticateUser", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Email ou senha incorretos", apperrors.ErrUnauthorized)).Twice()

	r := gin.New()
	require.NoError(t, handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{User: userSvc}, handlers.Options{}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email": "maria@example.com", "password": "x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
	userSvc.AssertExpectations(t)
}

func TestRegisterRoutes_InvalidRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = "often"

	err := handlers.RegisterRoutes(gin.New(), cfg, &portssvc.ServiceContainer{}, handlers.Options{})
	assert.Error(t, err)
}
