package router

import (
	"html/template"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"microblog/internal/application"
	"microblog/internal/container"
	handlers "microblog/internal/interface/http"
	"microblog/internal/interface/middleware"
	"microblog/internal/router/modules"
)

// InitModules wires services and handlers from the container singletons
// and registers every feature module
// This function should be called once during application startup
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userSvc := application.NewUserService(container.GetUsers(), container.GetSessions(), container.GetJWT(), container.GetAvatars(), logger)
	postSvc := application.NewPostService(container.GetPosts(), logger)
	emojiSvc := application.NewEmojiService(cfg.EmojiAPIURL, cfg.EmojiAPIKey, cfg.EmojiCacheTTL, container.GetRedis(), logger)

	userHandler := handlers.NewUserHandler(userSvc, postSvc, container.GetJWT(), logger, cfg.AppName, cfg.CookieDomain, cfg.CookieSecure)
	postHandler := handlers.NewPostHandler(postSvc, emojiSvc, logger, cfg.AppName)
	avatarHandler := handlers.NewAvatarHandler(container.GetAvatars(), logger)

	// Every route sees the session identity; protected routes add the
	// gate themselves.
	r.Use(middleware.Identify(container.GetSessions(), container.GetJWT(), container.GetUsers()))

	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewPostModule(postHandler))
	r.Add(modules.NewAvatarModule(avatarHandler))
	r.Add(modules.NewDebugModule())
}

// BuildEngine constructs the gin engine with global middleware, the
// template set, and all modules registered. Shared by main and tests.
func BuildEngine() *gin.Engine {
	cfg := container.GetConfig()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		r.Use(cors.New(corsCfg))
	}
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	r.SetFuncMap(template.FuncMap{
		"lower": strings.ToLower,
		"firstChar": func(s string) string {
			ch, _ := utf8.DecodeRuneInString(s)
			if ch == utf8.RuneError {
				return ""
			}
			return string(ch)
		},
		"isEven": func(n int) bool { return n%2 == 0 },
	})
	r.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))

	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()
	return r
}
