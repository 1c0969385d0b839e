package middleware

import (
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoflow/backend/api/transport"
	"github.com/todoflow/backend/internal/cookie"
	"github.com/todoflow/backend/usecase/auth"
)

// SessionGuard wraps handlers that require a live session cookie. Visitors
// without one are redirected to the login page; API calls get a 401 envelope
// instead, since a redirect is useless to a fetch caller. Expired sessions
// are cleared before the visitor is turned away.
func SessionGuard(sessions *auth.UseCase, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			jar := cookie.New(ctx)
			now := time.Now()

			session := sessions.GetSession(jar)
			if session != nil && session.IsExpired(now) {
				logger.Info("session expired",
					zap.String("username", session.User.Username))
				sessions.ClearSession(jar)
				session = nil
			}

			path := string(ctx.Path())
			decision := auth.DecideNavigation(session, now, path, sessions.LoginPath())
			if !decision.Stay() {
				if strings.HasPrefix(path, "/api/") {
					transport.NewError("UNAUTHORIZED", "authentication required", nil).
						WriteTo(ctx, fasthttp.StatusUnauthorized)
					return
				}
				ctx.Redirect(decision.Target, fasthttp.StatusFound)
				return
			}

			if session != nil {
				ctx.Request.Header.Set("X-Username", session.User.Username)
				ctx.Request.Header.Set("X-User-Role", session.User.Role)
				ctx.Request.Header.Set("X-User-Email", session.User.Email)
			}

			next(ctx)
		}
	}
}
