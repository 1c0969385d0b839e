package middleware

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/repository/memory"
	"github.com/todoflow/backend/usecase/auth"
)

func newGuard(t *testing.T) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	t.Helper()
	uc := auth.New(memory.NewUserDirectory(nil), auth.Config{}, nil)
	return SessionGuard(uc, nil)
}

func requestCtx(path string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI(path)
	return ctx
}

func sessionCookie(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	session := domain.Session{
		User:      domain.PublicUser{Username: "alice", Role: "user", Email: "alice@example.com"},
		LoginTime: time.Now().UnixMilli(),
		ExpiresAt: expiresAt.UnixMilli(),
	}
	payload, err := json.Marshal(session)
	require.NoError(t, err)
	return "todolist_session=" + string(payload)
}

func TestSessionGuard_NoSessionRedirectsPages(t *testing.T) {
	t.Parallel()

	called := false
	handler := newGuard(t)(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := requestCtx("/")
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusFound, ctx.Response.StatusCode())
	// fasthttp rewrites redirect targets into absolute URIs.
	location := string(ctx.Response.Header.Peek(fasthttp.HeaderLocation))
	assert.True(t, strings.HasSuffix(location, "/login"), "location %q", location)
}

func TestSessionGuard_NoSessionRejectsAPIWith401(t *testing.T) {
	t.Parallel()

	called := false
	handler := newGuard(t)(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := requestCtx("/api/v1/tasks")
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"error"`)
}

func TestSessionGuard_LiveSessionPassesThroughWithIdentity(t *testing.T) {
	t.Parallel()

	var username, role, email string
	handler := newGuard(t)(func(ctx *fasthttp.RequestCtx) {
		username = string(ctx.Request.Header.Peek("X-Username"))
		role = string(ctx.Request.Header.Peek("X-User-Role"))
		email = string(ctx.Request.Header.Peek("X-User-Email"))
	})

	ctx := requestCtx("/")
	ctx.Request.Header.Set(fasthttp.HeaderCookie, sessionCookie(t, time.Now().Add(time.Hour)))
	handler(ctx)

	assert.Equal(t, "alice", username)
	assert.Equal(t, "user", role)
	assert.Equal(t, "alice@example.com", email)
}

func TestSessionGuard_ExpiredSessionClearedAndRedirected(t *testing.T) {
	t.Parallel()

	called := false
	handler := newGuard(t)(func(ctx *fasthttp.RequestCtx) { called = true })

	ctx := requestCtx("/")
	ctx.Request.Header.Set(fasthttp.HeaderCookie, sessionCookie(t, time.Now().Add(-time.Hour)))
	handler(ctx)

	assert.False(t, called)
	assert.Equal(t, fasthttp.StatusFound, ctx.Response.StatusCode())

	// The stale cookie is overwritten with an expired one.
	setCookie := string(ctx.Response.Header.PeekCookie("todolist_session"))
	assert.Contains(t, setCookie, "todolist_session=")
	assert.Contains(t, setCookie, "expires=")
}

func TestSessionGuard_CorruptCookieTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	handler := newGuard(t)(func(ctx *fasthttp.RequestCtx) {})

	ctx := requestCtx("/api/v1/tasks")
	ctx.Request.Header.Set(fasthttp.HeaderCookie, "todolist_session=garbage")
	handler(ctx)

	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
