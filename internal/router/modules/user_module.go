package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"microblog/internal/container"
	handlers "microblog/internal/interface/http"
	"microblog/internal/interface/middleware"
)

// UserModule wires registration, login, and profile routes.
// Public: GET/POST /register, GET/POST /login, GET /logout, GET /error
// Protected: GET /profile

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Per-IP limits on the credential routes; no-ops without Redis.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/register", m.Handler.ShowRegister)
	rg.GET("/login", m.Handler.ShowLogin)
	rg.GET("/error", m.Handler.ShowError)
	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Authenticated())
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
