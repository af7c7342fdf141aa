package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"smart-canteen/internal/domain"
	"smart-canteen/internal/server/respond"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

// decodeStrict rejects unknown fields so a typo like "pric" fails loudly as a
// 422 instead of silently leaving the stored value untouched.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var ve *domain.ValidationError
		if field, ok := unknownField(err); ok {
			ve = domain.NewValidationError()
			ve.Add(field, fmt.Sprintf("unknown field %q", field))
			return ve
		}
		return err
	}
	return nil
}

func unknownField(err error) (string, bool) {
	msg := err.Error()
	const prefix = `json: unknown field "`
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimSuffix(strings.TrimPrefix(msg, prefix), `"`), true
	}
	return "", false
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := decodeStrict(r, &req); err != nil {
		if _, ok := err.(*domain.ValidationError); ok {
			respond.Err(w, r, err)
			return
		}
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusCreated, "Menu item created successfully", item)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusNotFound, "menu item not found")
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusNotFound, "menu item not found")
		return
	}
	var req UpdateMenuItemRequest
	if err := decodeStrict(r, &req); err != nil {
		if _, ok := err.(*domain.ValidationError); ok {
			respond.Err(w, r, err)
			return
		}
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusOK, "Menu item updated successfully", item)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusNotFound, "menu item not found")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "Menu item deleted successfully")
}
