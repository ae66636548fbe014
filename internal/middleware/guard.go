package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-portal/internal/guard"
	"hospital-portal/internal/utils"
)

// Guard applies the route guard to a navigation target. It must run after
// ResolveSession.
func Guard(route guard.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := guard.Decide(GetSession(c), route)
		switch decision.Action {
		case guard.Redirect:
			utils.Redirect(c, decision.Target)
			c.Abort()
		case guard.Hold:
			// Session still resolving: answer with a neutral loading
			// state instead of a premature redirect.
			c.JSON(http.StatusOK, gin.H{"loading": true})
			c.Abort()
		default:
			c.Next()
		}
	}
}
