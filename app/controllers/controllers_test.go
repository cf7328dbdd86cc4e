package controllers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"feedback-board/app/controllers"
	"feedback-board/app/models"
	"feedback-board/app/repo"
	"feedback-board/app/services"
	"feedback-board/app/session"
	"feedback-board/app/view"
	"feedback-board/router"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	srv      *httptest.Server
	users    *repo.UserRepository
	feedback *repo.FeedbackRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Feedback{}))

	log := zerolog.Nop()
	userRepo := repo.NewUserRepository(gdb)
	feedbackRepo := repo.NewFeedbackRepository(gdb)
	authSvc := services.NewAuthService(userRepo)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, userRepo)

	sessions := session.NewManager(session.NewMemoryStore(), session.Config{
		CookieName: "feedback_session",
		Secret:     "test-secret",
		TTL:        time.Hour,
		Logger:     log,
	})

	views, err := view.New("", log)
	require.NoError(t, err)

	handler := router.New(
		controllers.NewAuthController(authSvc, sessions, views, log),
		controllers.NewUserController(userRepo, feedbackSvc, sessions, views, log),
		controllers.NewFeedbackController(feedbackSvc, sessions, views, log),
		sessions,
		log,
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, users: userRepo, feedback: feedbackRepo}
}

// client returns an http client with its own cookie jar that does not follow
// redirects, so each hop can be asserted.
func (f *fixture) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (f *fixture) postForm(t *testing.T, c *http.Client, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.Post(f.srv.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *fixture) get(t *testing.T, c *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := c.Get(f.srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func registerForm(username, email string) url.Values {
	return url.Values{
		"username":   {username},
		"password":   {"rightpw"},
		"email":      {email},
		"first_name": {"Test"},
		"last_name":  {"User"},
	}
}

// register signs up a user and leaves the client logged in as them.
func (f *fixture) register(t *testing.T, c *http.Client, username, email string) {
	t.Helper()
	resp := f.postForm(t, c, "/register", registerForm(username, email))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/users/"+username, resp.Header.Get("Location"))
}

func (f *fixture) addFeedback(t *testing.T, c *http.Client, username, title, content string) uint {
	t.Helper()
	resp := f.postForm(t, c, "/users/"+username+"/feedback/add", url.Values{
		"title": {title}, "content": {content},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	items, err := f.feedback.ListByOwner(context.Background(), username)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	return items[len(items)-1].ID
}

func TestHomeRedirectsToRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp := f.get(t, f.client(t), "/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register", resp.Header.Get("Location"))
}

func TestRegisterLogsInAndShowsProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)
	f.register(t, c, "alice", "alice@example.com")

	resp := f.get(t, c, "/users/alice")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Test User")
	assert.Contains(t, page, "alice@example.com")
}

func TestRegisterDuplicateReshowsForm(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register(t, f.client(t), "alice", "alice@example.com")

	c := f.client(t)
	resp := f.postForm(t, c, "/register", registerForm("alice", "other@example.com"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Username taken.")

	resp = f.postForm(t, c, "/register", registerForm("bob", "alice@example.com"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "E-mail taken.")
}

func TestLoginFailures(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register(t, f.client(t), "alice", "alice@example.com")

	c := f.client(t)
	resp := f.postForm(t, c, "/login", url.Values{"username": {"alice"}, "password": {"wrongpw"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Incorrect password.")

	resp = f.postForm(t, c, "/login", url.Values{"username": {"ghost"}, "password": {"whatever"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Incorrect username.")
}

func TestLoginThenLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register(t, f.client(t), "alice", "alice@example.com")

	c := f.client(t)
	resp := f.postForm(t, c, "/login", url.Values{"username": {"alice"}, "password": {"rightpw"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/users/alice", resp.Header.Get("Location"))

	resp = f.get(t, c, "/logout")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// The session cookie is replaced once, not deleted and re-issued.
	var sessionCookies int
	for _, ck := range resp.Cookies() {
		if ck.Name == "feedback_session" {
			sessionCookies++
		}
	}
	assert.Equal(t, 1, sessionCookies)

	// The "Logged out." notice shows on the next page, and the session is
	// really gone.
	resp = f.get(t, c, "/register")
	assert.Contains(t, body(t, resp), "Logged out.")
	resp = f.get(t, c, "/users/alice")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestProfileRequiresLoginBeforeLookup(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)

	// Even a nonexistent user redirects to login: session presence is
	// checked first on profile routes.
	resp := f.get(t, c, "/users/ghost")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = f.get(t, c, "/login")
	assert.Contains(t, body(t, resp), "Please login to view page.")
}

func TestProfileOfOtherUserDenied(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register(t, f.client(t), "alice", "alice@example.com")

	c := f.client(t)
	f.register(t, c, "bob", "bob@example.com")

	// bob asking for alice's page lands back on bob's own profile.
	resp := f.get(t, c, "/users/alice")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/bob", resp.Header.Get("Location"))

	resp = f.get(t, c, "/users/bob")
	assert.Contains(t, body(t, resp), "Unauthorized action.")
}

func TestFeedbackCreateListedOnProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)
	f.register(t, c, "alice", "alice@example.com")

	f.addFeedback(t, c, "alice", "my title", "my content")

	resp := f.get(t, c, "/users/alice")
	assert.Contains(t, body(t, resp), "my title")
}

func TestFeedbackShowIsPublic(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)
	f.register(t, c, "alice", "alice@example.com")
	id := f.addFeedback(t, c, "alice", "public title", "public content")

	resp := f.get(t, f.client(t), "/feedback/"+strconv.Itoa(int(id)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "public title")
	assert.Contains(t, page, "public content")
}

func TestFeedbackMissingIs404BeforeLoginCheck(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)

	// Feedback routes resolve the record first: an unknown id is 404 even
	// for an anonymous caller, not a login redirect.
	for _, path := range []string{"/feedback/9999", "/feedback/9999/update"} {
		resp := f.get(t, c, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
	resp := f.postForm(t, c, "/feedback/9999/delete", url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeedbackUpdateByOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)
	f.register(t, c, "alice", "alice@example.com")
	id := f.addFeedback(t, c, "alice", "old title", "old content")
	path := "/feedback/" + strconv.Itoa(int(id))

	resp := f.get(t, c, path+"/update")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "old title")

	resp = f.postForm(t, c, path+"/update", url.Values{
		"title": {"new title"}, "content": {"new content"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/alice", resp.Header.Get("Location"))

	fb, err := f.feedback.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "new title", fb.Title)
}

func TestFeedbackUpdateByOtherUserDenied(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	alice := f.client(t)
	f.register(t, alice, "alice", "alice@example.com")
	id := f.addFeedback(t, alice, "alice", "alice title", "alice content")

	bob := f.client(t)
	f.register(t, bob, "bob", "bob@example.com")

	resp := f.postForm(t, bob, "/feedback/"+strconv.Itoa(int(id))+"/update", url.Values{
		"title": {"hacked"}, "content": {"hacked"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/bob", resp.Header.Get("Location"))

	fb, err := f.feedback.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice title", fb.Title)
}

func TestFeedbackDeleteByOwner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)
	f.register(t, c, "alice", "alice@example.com")
	id := f.addFeedback(t, c, "alice", "doomed", "doomed")

	resp := f.postForm(t, c, "/feedback/"+strconv.Itoa(int(id))+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/alice", resp.Header.Get("Location"))

	_, err := f.feedback.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestDeleteAccountCascadesAndLogsOut(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.client(t)
	f.register(t, c, "alice", "alice@example.com")
	one := f.addFeedback(t, c, "alice", "one", "c")
	two := f.addFeedback(t, c, "alice", "two", "c")

	resp := f.postForm(t, c, "/users/alice/delete", url.Values{})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var sessionCookies int
	for _, ck := range resp.Cookies() {
		if ck.Name == "feedback_session" {
			sessionCookies++
		}
	}
	assert.Equal(t, 1, sessionCookies)

	_, err := f.users.FindByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	for _, id := range []uint{one, two} {
		_, err := f.feedback.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	}

	// The session died with the account.
	resp = f.get(t, c, "/users/alice")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAddFeedbackForOtherUserDenied(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register(t, f.client(t), "alice", "alice@example.com")

	bob := f.client(t)
	f.register(t, bob, "bob", "bob@example.com")

	resp := f.postForm(t, bob, "/users/alice/feedback/add", url.Values{
		"title": {"t"}, "content": {"c"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/bob", resp.Header.Get("Location"))

	items, err := f.feedback.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp := f.get(t, f.client(t), "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `"ok"`)
}
