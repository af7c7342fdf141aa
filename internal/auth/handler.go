package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"smart-canteen/internal/server/reqctx"
	"smart-canteen/internal/server/respond"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusCreated, "Registered successfully", resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.MessageData(w, http.StatusOK, "Logged in successfully", resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := reqctx.User(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	me, err := h.service.Me(r.Context(), user.ID)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, me)
}

func bearerToken(r *http.Request) string {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) == 2 {
		return fields[1]
	}
	return ""
}
