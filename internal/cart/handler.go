package cart

import (
	"encoding/json"
	"net/http"

	"smart-canteen/internal/server/reqctx"
	"smart-canteen/internal/server/respond"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	c, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	var req ReplaceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c, err := h.service.Replace(r.Context(), user.ID, req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusOK, "Cart updated successfully", c)
}

func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	var req AdjustItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c, err := h.service.Adjust(r.Context(), user.ID, req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusOK, "Cart updated successfully", c)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	if err := h.service.Clear(r.Context(), user.ID); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "Cart cleared successfully")
}
