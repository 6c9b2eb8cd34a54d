package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	postapp "microblog/internal/application"
)

type PostHandler struct {
	Svc    *postapp.PostService
	Emojis *postapp.EmojiService
	Logger *logrus.Logger
	App    string
}

func NewPostHandler(svc *postapp.PostService, emojis *postapp.EmojiService, logger *logrus.Logger, appName string) *PostHandler {
	return &PostHandler{Svc: svc, Emojis: emojis, Logger: logger, App: appName}
}

type postForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// Home renders the feed, most recent post first, for both anonymous
// and logged-in visitors.
func (h *PostHandler) Home(c *gin.Context) {
	posts := h.Svc.Feed()
	emojis, err := h.Emojis.List(c.Request.Context())
	if err != nil {
		emojis = []string{}
	}
	c.HTML(http.StatusOK, "home.html", baseView(c, h.App, gin.H{
		"Posts":  posts,
		"Emojis": emojis,
	}))
}

// Create adds a post authored by the session's current user.
// Title and content are free text and stay unvalidated.
func (h *PostHandler) Create(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	var form postForm
	_ = c.ShouldBind(&form)
	if _, err := h.Svc.Create(form.Title, form.Content, u); err != nil {
		h.Logger.WithError(err).Error("create post failed")
		c.Redirect(http.StatusFound, "/error")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Like increments the like counter. Unknown ids get a plain 404.
func (h *PostHandler) Like(c *gin.Context) {
	if err := h.Svc.Like(c.Param("id")); err != nil {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Delete removes the post when the session user owns it. A non-owner
// attempt is silently skipped and redirects home either way.
func (h *PostHandler) Delete(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.Svc.Delete(c.Param("id"), u.Username)
	c.Redirect(http.StatusFound, "/")
}

// EmojiBrowser renders the emoji catalog page.
func (h *PostHandler) EmojiBrowser(c *gin.Context) {
	emojis, err := h.Emojis.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Error making request")
		return
	}
	c.HTML(http.StatusOK, "emojis.html", baseView(c, h.App, gin.H{"Emojis": emojis}))
}
