package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/livro_caixa/internal/apperrors"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorStatus pairs a sentinel with the status it maps to and the message used
// when the wrapped error carries no detail of its own.
type errorStatus struct {
	sentinel error
	status   int
	fallback string
}

// Order matters: ErrNoOpenDrawer and ErrDrawerAlreadyOpen wrap ErrConflict.
var errorStatuses = []errorStatus{
	{apperrors.ErrValidation, http.StatusBadRequest, "Dados inválidos"},
	{apperrors.ErrNotFound, http.StatusNotFound, "Registro não encontrado"},
	{apperrors.ErrDuplicate, http.StatusConflict, "Registro já existe"},
	{apperrors.ErrConflict, http.StatusConflict, "Operação não permitida no estado atual"},
	{apperrors.ErrRefreshTokenExpired, http.StatusUnauthorized, "Sessão expirada"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Não autorizado"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Acesso negado"},
}

// detailAfter returns the text following "<sentinel>: " in err, if any.
func detailAfter(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return ""
}

// handleServiceError writes the response for an error returned by a service.
// Unknown errors are logged and answered with 500 and fallback.
func handleServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		logger.Warn("Request failed", slog.Int("status", appErr.Code), slog.String("error", err.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	for _, es := range errorStatuses {
		if !errors.Is(err, es.sentinel) {
			continue
		}
		msg := detailAfter(err, es.sentinel)
		if msg == "" {
			msg = es.fallback
		}
		logger.Warn("Request failed", slog.Int("status", es.status), slog.String("error", err.Error()))
		c.JSON(es.status, ErrorResponse{Error: msg})
		return
	}

	logger.Error(fallback, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

// bindError answers a request whose body or query did not bind.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
}

// requireUserID returns the authenticated user or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
