package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "microblog/internal/application"
	"microblog/internal/domain/entity"
	"microblog/pkg/helpers"
	"microblog/pkg/validation"
)

type UserHandler struct {
	Svc     *userapp.UserService
	Posts   *userapp.PostService
	JWT     *helpers.JWTManager
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	App     string
}

func NewUserHandler(svc *userapp.UserService, posts *userapp.PostService, jwt *helpers.JWTManager, logger *logrus.Logger, appName, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{
		Svc:     svc,
		Posts:   posts,
		JWT:     jwt,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
		Logger:  logger,
		App:     appName,
	}
}

type credentialsForm struct {
	Username string `form:"username" binding:"username"`
}

// ShowRegister renders the combined login/register page, with the
// registration error carried in the query string.
func (h *UserHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "loginRegister.html", baseView(c, h.App, gin.H{"RegError": c.Query("error")}))
}

// ShowLogin renders the same page with the login error slot instead.
func (h *UserHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "loginRegister.html", baseView(c, h.App, gin.H{"LoginError": c.Query("error")}))
}

// ShowError renders the generic error page.
func (h *UserHandler) ShowError(c *gin.Context) {
	c.HTML(http.StatusOK, "error.html", baseView(c, h.App, nil))
}

// Register creates an account from the submitted username and logs the
// new user in. Duplicates bounce back to the form with an error.
func (h *UserHandler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Warn("register binding failed")
		c.Redirect(http.StatusFound, "/register?error=Invalid+username")
		return
	}
	h.Logger.WithField("username", form.Username).Info("registration attempt")

	u, err := h.Svc.Register(c.Request.Context(), form.Username)
	if err != nil {
		if errors.Is(err, userapp.ErrUsernameTaken) {
			c.Redirect(http.StatusFound, "/register?error=Username+already+exists")
			return
		}
		c.Redirect(http.StatusFound, "/error")
		return
	}
	h.bindSession(c, u)
}

// Login authenticates by username alone. An unknown username is sent
// to the registration error path; login never creates an account.
func (h *UserHandler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Warn("login binding failed")
		c.Redirect(http.StatusFound, "/login?error=Invalid+username")
		return
	}
	h.Logger.WithField("username", form.Username).Info("login attempt")

	u, err := h.Svc.Login(c.Request.Context(), form.Username)
	if err != nil {
		c.Redirect(http.StatusFound, "/register?error=Username+already+exists")
		return
	}
	h.bindSession(c, u)
}

// Logout tears down the server-side session and clears the cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
		if claims, err := h.JWT.ParseSessionToken(token); err == nil {
			_ = h.Svc.EndSession(c.Request.Context(), claims.SessionID)
		}
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

// Profile lists the current user's own posts.
func (h *UserHandler) Profile(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	userPosts := h.Posts.ByAuthor(u.Username)
	c.HTML(http.StatusOK, "profile.html", baseView(c, h.App, gin.H{"UserPosts": userPosts}))
}

func (h *UserHandler) bindSession(c *gin.Context, u *entity.User) {
	token, exp, err := h.Svc.StartSession(c.Request.Context(), u)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("start session failed")
		c.Redirect(http.StatusFound, "/error")
		return
	}
	h.Cookies.SetSession(c, token, exp)
	c.Redirect(http.StatusFound, "/")
}
