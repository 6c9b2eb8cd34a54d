package modules

import (
	"github.com/gin-gonic/gin"

	handlers "microblog/internal/interface/http"
)

// AvatarModule serves the per-letter avatar images.

type AvatarModule struct {
	Handler *handlers.AvatarHandler
}

func NewAvatarModule(h *handlers.AvatarHandler) *AvatarModule {
	return &AvatarModule{Handler: h}
}

func (m *AvatarModule) Register(rg *gin.RouterGroup) {
	rg.GET("/avatar/:username", m.Handler.Serve)
}
