package handler

import (
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoflow/backend/pkg/httpcontext"
)

// PagesHandler serves the two page entry points whose access the session
// guard arbitrates: the main app shell and the login page.
type PagesHandler struct {
	baseHandler
}

func NewPagesHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{baseHandler: newBaseHandler(adapter, logger)}
}

// App serves the protected main page. The guard has already verified the
// session and exposed the visitor's identity.
func (h *PagesHandler) App(ctx *fasthttp.RequestCtx) {
	username := string(ctx.Request.Header.Peek("X-Username"))
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(http.StatusOK)
	fmt.Fprintf(ctx, appShell, username)
}

// Login serves the login page; it is reachable without a session.
func (h *PagesHandler) Login(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("text/html; charset=utf-8")
	ctx.SetStatusCode(http.StatusOK)
	fmt.Fprint(ctx, loginShell)
}

const appShell = `<!DOCTYPE html>
<html>
<head><title>Todoflow</title></head>
<body>
<h1>Todoflow</h1>
<p>Signed in as %s.</p>
<p>The task UI talks to /api/v1/.</p>
</body>
</html>
`

const loginShell = `<!DOCTYPE html>
<html>
<head><title>Todoflow Login</title></head>
<body>
<h1>Login</h1>
<p>POST credentials to /api/v1/auth/login.</p>
</body>
</html>
`
