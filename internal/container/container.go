package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"microblog/config"
	"microblog/internal/domain/repository"
	"microblog/internal/infrastructure/session"
	"microblog/pkg/avatar"
	"microblog/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	sessions    session.Store
	users       repository.UserRepository
	posts       repository.PostRepository
	avatars     *avatar.Cache
)

func SetConfig(c *config.Config)             { cfg = c }
func GetConfig() *config.Config              { return cfg }
func SetLogger(l *logrus.Logger)             { logger = l }
func GetLogger() *logrus.Logger              { return logger }
func SetRedis(r *redis.Client)               { redisClient = r }
func GetRedis() *redis.Client                { return redisClient }
func SetJWT(m *helpers.JWTManager)           { jwtManager = m }
func GetJWT() *helpers.JWTManager            { return jwtManager }
func SetSessions(s session.Store)            { sessions = s }
func GetSessions() session.Store             { return sessions }
func SetUsers(r repository.UserRepository)   { users = r }
func GetUsers() repository.UserRepository    { return users }
func SetPosts(r repository.PostRepository)   { posts = r }
func GetPosts() repository.PostRepository    { return posts }
func SetAvatars(c *avatar.Cache)             { avatars = c }
func GetAvatars() *avatar.Cache              { return avatars }
