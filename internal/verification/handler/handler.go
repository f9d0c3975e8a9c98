// Package handler exposes the verification workflow over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inklusi/internal/verification/models"
	"inklusi/internal/verification/service"
	"inklusi/pkg/domain"
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

// Register mounts the institution-facing submit route and the admin review
// routes. The router is expected to already carry identity middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verification/requests", h.handleSubmit)
	r.Get("/admin/verification/queue", h.handleQueue)
	r.Post("/admin/verification/requests/{requestID}/resolve", h.handleResolve)
	r.Get("/admin/verification/targets/{targetType}/{targetID}/history", h.handleHistory)
}

type submitRequest struct {
	TargetType  string `json:"target_type"`
	TargetID    string `json:"target_id"`
	DocumentURL string `json:"document_url"`
}

type requestResponse struct {
	ID          string     `json:"id"`
	TargetType  string     `json:"target_type"`
	TargetID    string     `json:"target_id"`
	DocumentURL string     `json:"document_url"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
}

func toResponse(req *models.VerificationRequest) requestResponse {
	resp := requestResponse{
		ID:          req.ID.String(),
		TargetType:  string(req.TargetType),
		TargetID:    req.TargetID.String(),
		DocumentURL: req.DocumentURL,
		Status:      string(req.Status),
		AdminNotes:  req.AdminNotes,
		CreatedAt:   req.CreatedAt,
		ResolvedAt:  req.ResolvedAt,
	}
	if req.ResolvedBy != nil {
		resp.ResolvedBy = req.ResolvedBy.String()
	}
	return resp
}

func toResponses(reqs []*models.VerificationRequest) []requestResponse {
	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toResponse(req))
	}
	return out
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body submitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	targetType, err := models.ParseTargetType(body.TargetType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	targetID, err := domain.ParseInstitutionID(body.TargetID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid target id"))
		return
	}

	req, err := h.service.Submit(ctx, targetType, targetID, body.DocumentURL)
	if err != nil {
		h.logError(ctx, "submit verification request failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(req))
}

func (h *Handler) handleQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queue, err := h.service.ListQueue(ctx, requestcontext.CallerEmail(ctx), models.TargetType(r.URL.Query().Get("target_type")))
	if err != nil {
		h.logError(ctx, "read verification queue failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"requests": toResponses(queue)})
}

type resolveRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID, err := domain.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request id"))
		return
	}
	var body resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	decision, err := models.ParseDecision(body.Decision)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resolved, err := h.service.Resolve(ctx, requestcontext.CallerEmail(ctx), requestID, decision, body.Notes)
	if err != nil {
		h.logError(ctx, "resolve verification request failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(resolved))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	targetType, err := models.ParseTargetType(chi.URLParam(r, "targetType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	targetID, err := domain.ParseInstitutionID(chi.URLParam(r, "targetID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid target id"))
		return
	}

	history, err := h.service.History(ctx, requestcontext.CallerEmail(ctx), targetType, targetID)
	if err != nil {
		h.logError(ctx, "read verification history failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"requests": toResponses(history)})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
