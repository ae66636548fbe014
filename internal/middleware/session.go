package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/session"
	"hospital-portal/internal/upstream"
)

const resolverKey = "sessionResolver"

// ResolveSession builds a session resolver for the request's cookies and
// runs the auth check before any handler. The backend session may have
// expired since the last navigation, so this happens on every request.
func ResolveSession(api *upstream.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolver := session.NewResolver(api, c.Request.Cookies(), log)
		resolver.CheckAuth(c.Request.Context())
		c.Set(resolverKey, resolver)
		c.Next()
	}
}

// GetResolver returns the request's session resolver.
func GetResolver(c *gin.Context) (*session.Resolver, bool) {
	value, exists := c.Get(resolverKey)
	if !exists {
		return nil, false
	}
	resolver, ok := value.(*session.Resolver)
	return resolver, ok
}

// GetSession returns the resolved session, or the loading state if the
// resolver middleware has not run.
func GetSession(c *gin.Context) session.Session {
	resolver, ok := GetResolver(c)
	if !ok {
		return session.Session{Loading: true}
	}
	return resolver.Current()
}
