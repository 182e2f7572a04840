package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"ledgerpro/internal/core/apperror"
	appctx "ledgerpro/internal/core/context"
	"ledgerpro/internal/domain/auth"
)

// Auth validates the bearer session token and puts the resolved user into
// the request context. Requests without a valid session are rejected.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		user, sess, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		uc := &appctx.UserContext{
			UserID:    user.ID,
			Email:     user.Email,
			SessionID: sess.ID,
		}
		ctx := appctx.WithUser(c.Request.Context(), uc)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", user.ID.String())
		c.Next()
	}
}

// extractToken reads the session token from the Authorization header or,
// as a fallback for file downloads, the session cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("session"); err == nil {
		return cookie
	}
	return ""
}

// RequireUser fetches the authenticated user context or aborts. Handlers
// call this instead of reaching into gin keys.
func RequireUser(c *gin.Context) (*appctx.UserContext, bool) {
	uc := appctx.GetUser(c.Request.Context())
	if uc == nil {
		_ = c.Error(apperror.NewUnauthorized("Authentication required."))
		c.Abort()
		return nil, false
	}
	return uc, true
}
