package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/todoflow/backend/api/transport"
	"github.com/todoflow/backend/domain"
	"github.com/todoflow/backend/pkg/httpcontext"
	listUC "github.com/todoflow/backend/usecase/list"
)

type ListHandler struct {
	baseHandler
	uc *listUC.UseCase
}

func NewListHandler(uc *listUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List lists
// @Tags lists
// @Router /api/v1/lists [get]
func (h *ListHandler) GetLists(ctx *fasthttp.RequestCtx) {
	if h.username(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	lists, err := h.uc.Lists(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, lists)
}

// @Summary Create list
// @Tags lists
// @Router /api/v1/lists [post]
func (h *ListHandler) CreateList(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.ListRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateList(stdCtx, req.Name, req.Color, username)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Delete list
// @Tags lists
// @Router /api/v1/lists/{id} [delete]
func (h *ListHandler) DeleteList(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteList(stdCtx, id, username); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Share list
// @Tags lists
// @Router /api/v1/lists/{id}/shares [post]
func (h *ListHandler) ShareList(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	var req transport.ShareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	list, err := h.uc.ShareList(stdCtx, id, username, req.Username, req.Permission)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, list)
}

// @Summary Revoke a share
// @Tags lists
// @Router /api/v1/lists/{id}/shares/{username} [delete]
func (h *ListHandler) UnshareList(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	grantee, _ := ctx.UserValue("username").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	list, err := h.uc.UnshareList(stdCtx, id, username, grantee)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, list)
}
