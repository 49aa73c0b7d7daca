package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-planner/internal/model"
	"task-planner/pkg/log"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"

	maxUserIDLen = 64
	scopeKey     = "scope"
)

type scopeCtxKey struct{}

// Scope reads the caller from X-User-ID. A missing header maps to the default user.
func (mw Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := model.Scope{UserID: cleanUserID(c.GetHeader(HeaderUserID))}
		c.Set(scopeKey, sc)
		c.Request = c.Request.WithContext(SetScopeToContext(c.Request.Context(), sc))
		c.Next()
	}
}

// RequestID propagates X-Request-ID or assigns a new one, and exposes it to the logger.
func (mw Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// GetScope returns the scope set by the Scope middleware, or the default scope.
func GetScope(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return GetScopeFromContext(c.Request.Context())
}

func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, sc)
}

func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, _ := ctx.Value(scopeCtxKey{}).(model.Scope)
	return sc
}

func cleanUserID(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxUserIDLen {
		s = s[:maxUserIDLen]
	}
	return s
}
