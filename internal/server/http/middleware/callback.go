package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MaGuangChen/xendit-opencart-module/internal/pkg/callback"
)

// CallbackTokenHeader is set by the gateway on notification deliveries.
const CallbackTokenHeader = "x-callback-token"

// CallbackToken rejects notification deliveries with a wrong callback token.
// A no-op when no token is configured.
func CallbackToken(verifier *callback.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifier.Verify(c.GetHeader(CallbackTokenHeader)) {
			c.String(http.StatusUnauthorized, "Invalid callback token")
			c.Abort()
			return
		}
		c.Next()
	}
}
