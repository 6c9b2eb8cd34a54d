package router_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/config"
	"microblog/internal/container"
	"microblog/internal/domain/entity"
	"microblog/internal/infrastructure/memstore"
	"microblog/internal/infrastructure/session"
	"microblog/internal/router"
	"microblog/pkg/avatar"
	"microblog/pkg/helpers"
	"microblog/pkg/validation"
)

var testServer *httptest.Server

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := config.Load()
	cfg.AppName = "microblog-test"
	cfg.TemplatesDir = "../../web/templates"
	cfg.SessionBackend = "memory"
	cfg.SessionSecret = "testsecret"
	cfg.SessionTTL = time.Hour
	cfg.EmojiAPIKey = ""
	// Host-only cookie: the httptest server answers on 127.0.0.1, not
	// localhost, and the jar drops cookies with a mismatched domain.
	cfg.CookieDomain = ""

	dir, err := os.MkdirTemp("", "avatars")
	if err != nil {
		fmt.Fprintf(os.Stderr, "tempdir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)
	cfg.AvatarDir = dir

	gen, err := avatar.NewGenerator(cfg.AvatarSize, cfg.AvatarSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "avatar generator: %v\n", err)
		os.Exit(1)
	}
	avatars, err := avatar.NewCache(gen, cfg.AvatarDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "avatar cache: %v\n", err)
		os.Exit(1)
	}

	container.SetConfig(cfg)
	container.SetLogger(helpers.NewLogger(cfg.AppName, "test"))
	container.SetJWT(helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL))
	container.SetSessions(session.NewMemoryStore())
	container.SetAvatars(avatars)
	container.SetUsers(memstore.NewUserRepository())
	container.SetPosts(memstore.NewPostRepository())

	testServer = httptest.NewServer(router.BuildEngine())
	defer testServer.Close()

	os.Exit(m.Run())
}

// newBrowser returns a client with a cookie jar that follows redirects,
// like a real browser session.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// newDirectClient never follows redirects, so tests can assert on
// Location headers.
func newDirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	res, err := client.PostForm(testServer.URL+path, form)
	require.NoError(t, err)
	return res
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func register(t *testing.T, client *http.Client, username string) {
	t.Helper()
	res := postForm(t, client, "/register", url.Values{"username": {username}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	require.NotContains(t, body, "Username already exists")
}

func findPost(t *testing.T, title string) *entity.Post {
	t.Helper()
	for _, p := range container.GetPosts().List() {
		if p.Title == title {
			return p
		}
	}
	t.Fatalf("post %q not found", title)
	return nil
}

func TestEndToEndScenario(t *testing.T) {
	alice := newBrowser(t)
	register(t, alice, "alice")

	// Posting lands on the feed with the new entry on top.
	res := postForm(t, alice, "/posts", url.Values{"title": {"Hi"}, "content": {"World"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	assert.Contains(t, body, "Hi")
	assert.Contains(t, body, "World")
	assert.Contains(t, body, "alice")

	post := findPost(t, "Hi")
	assert.Equal(t, "alice", post.Username)
	assert.Equal(t, 0, post.Likes)

	// One like increments the counter exactly once.
	res = postForm(t, alice, "/like/"+post.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	readBody(t, res)
	assert.Equal(t, 1, findPost(t, "Hi").Likes)

	// A different logged-in user cannot delete alice's post.
	bob := newBrowser(t)
	register(t, bob, "bob")
	res = postForm(t, bob, "/delete/"+post.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	readBody(t, res)
	assert.Equal(t, "alice", findPost(t, "Hi").Username, "post must survive a non-owner delete")

	// The owner can.
	res = postForm(t, alice, "/delete/"+post.ID, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	body = readBody(t, res)
	assert.NotContains(t, body, "World")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	first := newBrowser(t)
	register(t, first, "carol")

	second := newBrowser(t)
	res := postForm(t, second, "/register", url.Values{"username": {"carol"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	assert.Contains(t, body, "Username already exists")
}

func TestLoginUnknownUsernameRedirectsToRegisterError(t *testing.T) {
	client := newDirectClient()
	res, err := client.PostForm(testServer.URL+"/login", url.Values{"username": {"ghost"}})
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/register?error=Username+already+exists", res.Header.Get("Location"))
}

func TestLoginExistingUsername(t *testing.T) {
	register(t, newBrowser(t), "dave")

	client := newBrowser(t)
	res := postForm(t, client, "/login", url.Values{"username": {"dave"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	assert.Contains(t, body, "Logout")
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	client := newDirectClient()

	res, err := client.Get(testServer.URL + "/profile")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	res, err = client.PostForm(testServer.URL+"/posts", url.Values{"title": {"x"}, "content": {"y"}})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
}

func TestProfileListsOwnPostsOnly(t *testing.T) {
	erin := newBrowser(t)
	register(t, erin, "erin")
	readBody(t, postForm(t, erin, "/posts", url.Values{"title": {"erins-post"}, "content": {"mine"}}))

	frank := newBrowser(t)
	register(t, frank, "frank")
	readBody(t, postForm(t, frank, "/posts", url.Values{"title": {"franks-post"}, "content": {"his"}}))

	res, err := erin.Get(testServer.URL + "/profile")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	assert.Contains(t, body, "erins-post")
	assert.NotContains(t, body, "franks-post")
}

func TestLogoutEndsSession(t *testing.T) {
	client := newBrowser(t)
	register(t, client, "grace")

	// Keep the pre-logout cookie around: logout must kill the
	// server-side session, not just the browser cookie.
	cookies := client.Jar.Cookies(mustParseURL(t, testServer.URL))
	require.NotEmpty(t, cookies)

	res, err := client.Get(testServer.URL + "/logout")
	require.NoError(t, err)
	readBody(t, res)

	direct := newDirectClient()
	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/profile", nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res, err = direct.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
}

func TestLikeUnknownPostReturns404(t *testing.T) {
	res, err := http.Post(testServer.URL+"/like/does-not-exist", "application/x-www-form-urlencoded", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Post not found", readBody(t, res))
}

func TestAvatarServedAndDeterministic(t *testing.T) {
	register(t, newBrowser(t), "henry")

	first, err := http.Get(testServer.URL + "/avatar/henry")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "image/png", first.Header.Get("Content-Type"))
	b1 := readBody(t, first)

	second, err := http.Get(testServer.URL + "/avatar/henry")
	require.NoError(t, err)
	b2 := readBody(t, second)
	assert.Equal(t, b1, b2)

	// Same first letter, same image.
	shared, err := http.Get(testServer.URL + "/avatar/hannah")
	require.NoError(t, err)
	b3 := readBody(t, shared)
	assert.Equal(t, b1, b3)
}

func TestHealthz(t *testing.T) {
	res, err := http.Get(testServer.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	body := readBody(t, res)
	assert.Contains(t, body, `"success":true`)
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
