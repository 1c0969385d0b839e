package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoflow/backend/api/transport"
	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/pkg/httpcontext"
	settingsUC "github.com/todoflow/backend/usecase/settings"
)

type SettingsHandler struct {
	baseHandler
	uc *settingsUC.UseCase
}

func NewSettingsHandler(uc *settingsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get theme preference
// @Tags settings
// @Router /api/v1/theme [get]
func (h *SettingsHandler) GetTheme(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	theme, err := h.uc.Theme(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"theme": theme})
}

// @Summary Set theme preference
// @Tags settings
// @Router /api/v1/theme [put]
func (h *SettingsHandler) SetTheme(ctx *fasthttp.RequestCtx) {
	var req transport.ThemeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetTheme(stdCtx, req.Theme); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"theme": req.Theme})
}
