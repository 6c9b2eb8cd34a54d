package modules

import (
	"github.com/gin-gonic/gin"

	handlers "microblog/internal/interface/http"
	"microblog/internal/interface/middleware"
)

// PostModule wires the feed and post mutation routes.
// Public: GET /, POST /like/:id, POST /emojis
// Protected: POST /posts, POST /delete/:id

type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.POST("/like/:id", m.Handler.Like)
	rg.POST("/emojis", m.Handler.EmojiBrowser)

	auth := rg.Group("/")
	auth.Use(middleware.Authenticated())
	{
		auth.POST("/posts", m.Handler.Create)
		auth.POST("/delete/:id", m.Handler.Delete)
	}
}
