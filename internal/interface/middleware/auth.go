package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	repo "microblog/internal/domain/repository"
	"microblog/internal/infrastructure/session"
	"microblog/pkg/helpers"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
	CtxUserKey     = "currentUser"
)

// Identify resolves the session cookie to a user and stores it in the
// Gin context. It never blocks the request: pages like the home feed
// render for anonymous visitors too.
func Identify(sessions session.Store, jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			c.Next()
			return
		}
		rec, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil || !rec.LoggedIn || rec.UserID != claims.UserID {
			c.Next()
			return
		}
		u, err := users.GetByID(rec.UserID)
		if err != nil {
			// Advisory gate: a stale session whose user is gone counts
			// as not logged in.
			c.Next()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUsernameKey, u.Username)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// Authenticated gates protected routes: unauthenticated requests are
// redirected to the login view.
func Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserIDKey) == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
