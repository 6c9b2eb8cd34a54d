package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"microblog/pkg/avatar"
)

type AvatarHandler struct {
	Cache  *avatar.Cache
	Logger *logrus.Logger
}

func NewAvatarHandler(cache *avatar.Cache, logger *logrus.Logger) *AvatarHandler {
	return &AvatarHandler{Cache: cache, Logger: logger}
}

// Serve returns the avatar for a username's first letter, rendering and
// caching it on a miss. Every username sharing the letter gets the
// same bytes.
func (h *AvatarHandler) Serve(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.String(http.StatusNotFound, "Avatar not found")
		return
	}
	letter := avatar.LetterFor(username)
	b, err := h.Cache.Load(letter)
	if err != nil {
		h.Logger.WithError(err).WithField("letter", string(letter)).Error("avatar load failed")
		c.String(http.StatusNotFound, "Avatar not found")
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
