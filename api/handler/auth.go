package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoflow/backend/api/transport"
	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/internal/cookie"
	"github.com/todoflow/backend/pkg/httpcontext"
	authUC "github.com/todoflow/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Authenticate and issue a session cookie
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	jar := cookie.New(ctx)
	session, err := h.uc.Login(stdCtx, jar, req.Username, req.Password, req.RememberMe)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, transport.LoginResponse{
		Session:    session,
		RedirectTo: "/",
	})
}

// @Summary Destroy the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	jar := cookie.New(ctx)
	if session := h.uc.GetSession(jar); session != nil {
		duration := time.Since(time.UnixMilli(session.LoginTime))
		h.logger.Info("logout",
			zap.String("username", session.User.Username),
			zap.Duration("session_duration", duration),
		)
	}
	h.uc.ClearSession(jar)
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Describe the current session
// @Tags auth
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	jar := cookie.New(ctx)
	session := h.uc.GetSession(jar)
	if session == nil || session.IsExpired(time.Now()) {
		if session != nil {
			h.uc.ClearSession(jar)
		}
		h.respondError(ctx, domain.ErrSessionNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}
