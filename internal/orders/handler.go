package orders

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smart-canteen/internal/domain"
	"smart-canteen/internal/server/reqctx"
	"smart-canteen/internal/server/respond"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	order, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusCreated, "Order created successfully", order)
}

// List answers with the caller's visible orders, newest first, and an
// X-Orders-Version header holding the most recent updated_at in unix
// milliseconds so pollers can order their reads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	list, err := h.service.List(r.Context(), user)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	var version int64
	for _, o := range list {
		if ms := o.UpdatedAt.UnixMilli(); ms > version {
			version = ms
		}
	}
	w.Header().Set("X-Orders-Version", strconv.FormatInt(version, 10))

	if list == nil {
		list = []domain.Order{}
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusNotFound, "order not found")
		return
	}
	order, err := h.service.Get(r.Context(), user, id)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusNotFound, "order not found")
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	order, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusOK, "Order status updated successfully", order)
}
