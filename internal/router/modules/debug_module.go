package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"microblog/internal/container"
	"microblog/internal/interface/middleware"
	"microblog/pkg/response"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		resp := response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
		c.JSON(resp.Status, resp)
	})

	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		// Public metrics endpoint (expvar), rate-limited per IP
		rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
}
