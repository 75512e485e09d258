package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/ivoicehq/ivoice-server/internal/auth"
	"github.com/ivoicehq/ivoice-server/pkg/errors"
	"github.com/ivoicehq/ivoice-server/pkg/response"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "access_token"

	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
)

// Auth enforces session authentication using the supplied JWT service. The
// credential is read from the access_token cookie; an Authorization bearer
// header is accepted as a fallback for non-browser clients.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := jwt.ValidateSessionToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)

		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authz := c.GetHeader("Authorization")
	if len(authz) >= 8 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}

	return ""
}
