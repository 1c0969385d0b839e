package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoflow/backend/api/transport"
	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/pkg/httpcontext"
	tagUC "github.com/todoflow/backend/usecase/tag"
)

type TagHandler struct {
	baseHandler
	uc *tagUC.UseCase
}

func NewTagHandler(uc *tagUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tags
// @Tags tags
// @Router /api/v1/tags [get]
func (h *TagHandler) GetTags(ctx *fasthttp.RequestCtx) {
	if h.username(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tags, err := h.uc.Tags(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tags)
}

// @Summary Create tag
// @Tags tags
// @Router /api/v1/tags [post]
func (h *TagHandler) CreateTag(ctx *fasthttp.RequestCtx) {
	if h.username(ctx) == "" {
		return
	}

	var req transport.TagRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTag(stdCtx, req.Name, req.Color)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Rename tag, rewriting every referencing task
// @Tags tags
// @Router /api/v1/tags/{name} [put]
func (h *TagHandler) RenameTag(ctx *fasthttp.RequestCtx) {
	if h.username(ctx) == "" {
		return
	}

	oldName, _ := ctx.UserValue("name").(string)

	var req transport.TagRenameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RenameTag(stdCtx, oldName, req.Name); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete tag, stripping it from every task
// @Tags tags
// @Router /api/v1/tags/{name} [delete]
func (h *TagHandler) DeleteTag(ctx *fasthttp.RequestCtx) {
	if h.username(ctx) == "" {
		return
	}

	name, _ := ctx.UserValue("name").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTag(stdCtx, name); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
