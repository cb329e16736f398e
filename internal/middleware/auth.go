package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/handler"
	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/service/auth"
)

// ContextSession is the gin context key under which the resolved session lives.
const ContextSession = "session"

type AuthMiddleware struct {
	authService *auth.Service
	cookieName  string
}

func NewAuthMiddleware(authService *auth.Service, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, cookieName: cookieName}
}

// Authenticate resolves the session cookie and stores the session in the
// context. The exact error strings matter: clients distinguish session
// expiry from other failures by message, not status code alone.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Authentication required"))
			c.Abort()
			return
		}

		sess, err := m.authService.Validate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Authentication required"))
			c.Abort()
			return
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

// RequireAdmin rejects non-admin sessions. Runs after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil || sess.Role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelfDoctor enforces doctor self-scoping on /doctor/:id routes:
// a doctor may only reach their own id, admins may reach any. The check is
// a hard 403, never a silent filter.
func (m *AuthMiddleware) RequireSelfDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromContext(c)
		if sess == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Authentication required"))
			c.Abort()
			return
		}

		if sess.Role == model.RoleDoctor {
			id, err := uuid.Parse(c.Param("id"))
			if err != nil || id != sess.UserID {
				c.JSON(http.StatusForbidden, handler.NewErrorResponse("Access denied"))
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// SessionFromContext returns the session set by Authenticate, or nil.
func SessionFromContext(c *gin.Context) *model.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, ok := v.(*model.Session)
	if !ok {
		return nil
	}
	return sess
}
