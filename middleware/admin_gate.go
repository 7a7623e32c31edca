// api/middleware/admin_gate.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fixhub-app/fixhub/api/auth"
	"github.com/fixhub-app/fixhub/api/util"
)

// AdminGate runs the admin access check once and memoizes the decision in the
// request context. Handlers further down the chain that call CheckAdmin again
// get the memoized decision back instead of a second session and role lookup.
func AdminGate(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.BearerToken(c)
		decision := authService.CheckAdmin(c.Request.Context(), token, util.Origin(c))

		c.Request = c.Request.WithContext(auth.WithDecision(c.Request.Context(), decision))

		if decision.Allowed {
			c.Next()
			return
		}

		// Browsers get the redirect the admin shell expects; API clients
		// get a status code they can branch on.
		if wantsHTML(c) {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}

		if decision.Redirect == auth.RedirectLogin {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": decision.Redirect})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "redirect": decision.Redirect})
		}
		c.Abort()
	}
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
