package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPrefixes are infrastructure routes that never become PostHog events.
var untrackedPrefixes = []string{"/health", "/metrics", "/swagger"}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Nil-safe: an unconfigured wrapper reports not initialized
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		// Failed requests are visible in logs and metrics already
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by AuthMiddleware
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName, ok := routeEventName(c.FullPath())
		if !ok {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		// Closure, sale and withdrawal ids
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// routeEventName maps a gin route template to a PostHog event name, e.g.
// "/api/v1/closures/:closureID/reopen" -> "api_v1_closures_closureID_reopen".
// Unmatched routes (empty template) and infrastructure routes are not tracked.
func routeEventName(route string) (string, bool) {
	if route == "" {
		return "", false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(route, prefix) {
			return "", false
		}
	}
	name := strings.TrimPrefix(route, "/")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "/", "_")
	return name, name != ""
}
