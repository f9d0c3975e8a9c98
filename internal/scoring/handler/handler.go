// Package handler exposes rating submission and scorecard reads over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inklusi/internal/scoring/models"
	"inklusi/internal/scoring/service"
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

func (h *Handler) Register(r chi.Router) {
	r.Post("/companies/{companyID}/ratings", h.handleSubmitRating)
	r.Get("/companies/{companyID}/scorecard", h.handleGetScorecard)
	r.Post("/cluster-scores/validate", h.handleValidateClusterScore)
}

type submitRatingRequest struct {
	TalentID      string `json:"talent_id"`
	JobID         string `json:"job_id"`
	Accessibility int    `json:"accessibility"`
	Culture       int    `json:"culture"`
	Management    int    `json:"management"`
	Onboarding    int    `json:"onboarding"`
	Comment       string `json:"comment"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID, err := domain.ParseCompanyID(chi.URLParam(r, "companyID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid company id"))
		return
	}
	var body submitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	talentID, err := domain.ParseTalentID(body.TalentID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid talent id"))
		return
	}
	jobID, err := domain.ParseJobID(body.JobID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid job id"))
		return
	}

	scores := models.DimensionScores{
		Accessibility: body.Accessibility,
		Culture:       body.Culture,
		Management:    body.Management,
		Onboarding:    body.Onboarding,
	}
	rating, err := h.service.SubmitRating(ctx, companyID, talentID, jobID, scores, body.Comment)
	if err != nil {
		h.logError(ctx, "submit rating failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ratingResponse{
		ID:        rating.ID.String(),
		CompanyID: rating.CompanyID.String(),
		CreatedAt: rating.CreatedAt,
	})
}

func (h *Handler) handleGetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID, err := domain.ParseCompanyID(chi.URLParam(r, "companyID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid company id"))
		return
	}

	card, err := h.service.GetScorecard(ctx, companyID)
	if err != nil {
		h.logError(ctx, "get scorecard failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, card)
}

type validateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) handleValidateClusterScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var score models.ClusterScore
	if err := json.NewDecoder(r.Body).Decode(&score); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.ValidateClusterScore(ctx, score); err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			httputil.WriteJSON(w, http.StatusOK, validateResponse{Valid: false, Reason: dErrors.MessageOf(err)})
			return
		}
		h.logError(ctx, "validate cluster score failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, validateResponse{Valid: true})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
