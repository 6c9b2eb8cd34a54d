package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"microblog/internal/domain/entity"
	"microblog/internal/interface/middleware"
)

// CurrentUser pulls the session-bound user out of the Gin context, or
// nil for anonymous visitors.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(middleware.CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

// baseView assembles the data every template expects: app constants
// plus the current user context.
func baseView(c *gin.Context, appName string, extra gin.H) gin.H {
	data := gin.H{
		"AppName":       appName,
		"CopyrightYear": time.Now().Year(),
		"PostType":      "Post",
		"LoggedIn":      c.GetString(middleware.CtxUserIDKey) != "",
		"UserID":        c.GetString(middleware.CtxUserIDKey),
	}
	if u := CurrentUser(c); u != nil {
		data["User"] = u
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
