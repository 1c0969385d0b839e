package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/cookie"
	"github.com/todoflow/backend/repository/memory"
)

const testPepper = "Lekker2345Pepper467543"

func newTestUseCase(t *testing.T, users []domain.User) *UseCase {
	t.Helper()
	return New(memory.NewUserDirectory(users), Config{
		Pepper:     testPepper,
		LoginDelay: 0,
	}, nil)
}

func testUser(username, password, salt string) domain.User {
	return domain.User{
		ID:           1,
		Username:     username,
		PasswordHash: Digest(password, testPepper, salt),
		Salt:         salt,
		Role:         "user",
		Email:        username + "@example.com",
	}
}

func newJar() *cookie.Jar {
	return cookie.New(&fasthttp.RequestCtx{})
}

func TestDigest_OrderMatters(t *testing.T) {
	t.Parallel()

	a := Digest("pw", "pepper", "salt")
	b := Digest("pw", "salt", "pepper")
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
}

func TestDigest_KnownAdminHash(t *testing.T) {
	t.Parallel()

	got := Digest("admin", testPepper, "a1b2c3d4e5f6g7h8")
	assert.Equal(t, "fd83aa511d991ba2ef615b3df48d67b2bbf3a755e0739d918cd943f4bec0c864", got)
}

func TestVerify_Success(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, []domain.User{testUser("alice", "s3cret", "salty")})

	user, err := uc.Verify(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "user", user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, []domain.User{testUser("alice", "s3cret", "salty")})

	_, err := uc.Verify(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestVerify_UnknownUser(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)

	_, err := uc.Verify(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	jar := newJar()

	_, err := uc.Login(context.Background(), jar, "", "pw", false)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Login(context.Background(), jar, "alice", "", false)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	assert.False(t, jar.Exists("todolist_session"))
}

func TestLogin_FailureWritesNoCookie(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, []domain.User{testUser("alice", "s3cret", "salty")})
	jar := newJar()

	_, err := uc.Login(context.Background(), jar, "alice", "wrong", false)
	require.Error(t, err)
	assert.False(t, jar.Exists("todolist_session"))
}

func TestLogin_SuccessCreatesSession(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, []domain.User{testUser("alice", "s3cret", "salty")})
	jar := newJar()

	session, err := uc.Login(context.Background(), jar, "alice", "s3cret", true)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.User.Username)
	assert.True(t, session.RememberMe)

	stored := uc.GetSession(jar)
	require.NotNil(t, stored)
	assert.Equal(t, session.User, stored.User)
}

func TestLogin_DelayHonorsContext(t *testing.T) {
	t.Parallel()

	uc := New(memory.NewUserDirectory(nil), Config{
		Pepper:     testPepper,
		LoginDelay: time.Minute,
	}, nil)
	jar := newJar()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := uc.Login(ctx, jar, "alice", "pw", false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCreateSession_ExpiryIndependentOfRememberMe(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	loginTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return loginTime }

	user := domain.PublicUser{Username: "alice", Role: "user", Email: "a@example.com"}

	short := uc.CreateSession(newJar(), user, false)
	long := uc.CreateSession(newJar(), user, true)

	want := loginTime.Add(24 * time.Hour).UnixMilli()
	assert.Equal(t, want, short.ExpiresAt)
	assert.Equal(t, want, long.ExpiresAt)
	assert.Equal(t, loginTime.UnixMilli(), short.LoginTime)
}

func TestCreateSession_CookieLifetimeFollowsRememberMe(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	user := domain.PublicUser{Username: "alice"}

	ctxSession := &fasthttp.RequestCtx{}
	uc.CreateSession(cookie.New(ctxSession), user, false)
	header := string(ctxSession.Response.Header.PeekCookie("todolist_session"))
	assert.NotContains(t, header, "expires=")

	ctxPersistent := &fasthttp.RequestCtx{}
	uc.CreateSession(cookie.New(ctxPersistent), user, true)
	header = string(ctxPersistent.Response.Header.PeekCookie("todolist_session"))
	assert.Contains(t, header, "expires=")
}

func TestGetSession_Roundtrip(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	jar := newJar()
	user := domain.PublicUser{Username: "alice", Role: "admin", Email: "a@example.com"}

	created := uc.CreateSession(jar, user, true)

	got := uc.GetSession(jar)
	require.NotNil(t, got)
	assert.Equal(t, created, *got)
}

func TestGetSession_Absent(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	assert.Nil(t, uc.GetSession(newJar()))
}

func TestGetSession_CorruptCookieCleared(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set(fasthttp.HeaderCookie, "todolist_session=not-json")
	jar := cookie.New(ctx)

	assert.Nil(t, uc.GetSession(jar))
	assert.False(t, jar.Exists("todolist_session"))
}

func TestIsLoggedIn_ExpiredSessionCleared(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	ctx := &fasthttp.RequestCtx{}
	jar := cookie.New(ctx)

	expired := domain.Session{
		User:      domain.PublicUser{Username: "alice"},
		LoginTime: time.Now().Add(-48 * time.Hour).UnixMilli(),
		ExpiresAt: time.Now().Add(-24 * time.Hour).UnixMilli(),
	}
	payload, err := json.Marshal(expired)
	require.NoError(t, err)
	jar.Set("todolist_session", string(payload), 0, cookie.Options{})

	assert.False(t, uc.IsLoggedIn(jar))
	assert.False(t, jar.Exists("todolist_session"))
}

func TestIsLoggedIn_LiveSession(t *testing.T) {
	t.Parallel()

	uc := newTestUseCase(t, nil)
	jar := newJar()
	uc.CreateSession(jar, domain.PublicUser{Username: "alice"}, false)

	assert.True(t, uc.IsLoggedIn(jar))
}
