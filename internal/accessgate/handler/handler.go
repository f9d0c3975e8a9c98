// Package handler exposes whitelist management and invite claiming over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inklusi/internal/accessgate/models"
	"inklusi/internal/accessgate/service"
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/platform/httputil"
	"inklusi/pkg/requestcontext"
)

type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

func New(service *service.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/whitelist", h.handleList)
	r.Post("/admin/whitelist", h.handleAdd)
	r.Delete("/admin/whitelist/{email}", h.handleRemove)
	r.Post("/admin/whitelist/claim", h.handleClaim)
}

type entryResponse struct {
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	AccessLevel string     `json:"access_level"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
}

func toEntryResponse(entry *models.WhitelistEntry) entryResponse {
	return entryResponse{
		Email:       entry.Email,
		Name:        entry.Name,
		AccessLevel: string(entry.AccessLevel),
		Active:      entry.Active,
		CreatedAt:   entry.CreatedAt,
		ActivatedAt: entry.ActivatedAt,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.service.ListEntries(ctx, requestcontext.CallerEmail(ctx))
	if err != nil {
		h.logError(ctx, "list whitelist failed", err)
		httputil.WriteError(w, err)
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryResponse(entry))
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": out})
}

type addRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccessLevel string `json:"access_level"`
}

type addResponse struct {
	Entry entryResponse `json:"entry"`
	// Invite is returned exactly once; only its hash is stored.
	Invite string `json:"invite"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body addRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	level, err := models.ParseAccessLevel(body.AccessLevel)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entry, invite, err := h.service.AddEntry(ctx, requestcontext.CallerEmail(ctx), body.Email, body.Name, level)
	if err != nil {
		h.logError(ctx, "add whitelist entry failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, addResponse{Entry: toEntryResponse(entry), Invite: invite})
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.RemoveEntry(ctx, requestcontext.CallerEmail(ctx), chi.URLParam(r, "email")); err != nil {
		h.logError(ctx, "remove whitelist entry failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type claimRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body claimRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.ClaimInvite(ctx, body.Email, body.Secret); err != nil {
		h.logError(ctx, "claim invite failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
