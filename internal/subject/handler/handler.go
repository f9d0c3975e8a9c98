// Package handler exposes jurisdiction-scoped subject listings and the
// region directory over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inklusi/internal/jurisdiction"
	"inklusi/internal/region"
	"inklusi/internal/subject"
	dErrors "inklusi/pkg/domain-errors"
	"inklusi/pkg/domain"
	"inklusi/pkg/platform/httputil"
	"inklusi/pkg/requestcontext"
)

type Handler struct {
	resolver  *jurisdiction.Resolver
	directory subject.Directory
	catalog   *region.Catalog
	logger    *slog.Logger
}

func New(resolver *jurisdiction.Resolver, directory subject.Directory, catalog *region.Catalog, logger *slog.Logger) *Handler {
	return &Handler{resolver: resolver, directory: directory, catalog: catalog, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/authority/talents", h.handleListTalents)
	r.Get("/authority/companies", h.handleListCompanies)
	r.Get("/regions", h.handleListProvinces)
	r.Get("/regions/{provinceCode}/cities", h.handleListCities)
}

// scopeFromQuery reconstructs the authority's declared jurisdiction. The
// upstream identity layer vouches for the values; the resolver still rejects
// structurally inconsistent combinations.
func (h *Handler) scopeFromQuery(r *http.Request) (jurisdiction.Scope, error) {
	code, err := domain.ParseRegionCode(r.URL.Query().Get("region_code"))
	if err != nil {
		return jurisdiction.Scope{}, err
	}
	return h.resolver.ResolveScope(jurisdiction.Authority{
		ScopeKind:  jurisdiction.ScopeKind(r.URL.Query().Get("scope")),
		RegionCode: code,
	})
}

type talentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RegionCode string `json:"region_code,omitempty"`
}

type companyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RegionCode string `json:"region_code,omitempty"`
	Verified   bool   `json:"verified"`
}

func (h *Handler) handleListTalents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope, err := h.scopeFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	talents, err := h.directory.ListTalents(ctx, scope)
	if err != nil {
		h.logError(ctx, "list talents failed", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "could not list talents"))
		return
	}

	out := make([]talentResponse, 0, len(talents))
	for _, t := range talents {
		out = append(out, talentResponse{ID: t.ID.String(), Name: t.Name, RegionCode: t.RegionCode.String()})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"talents": out})
}

func (h *Handler) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope, err := h.scopeFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	companies, err := h.directory.ListCompanies(ctx, scope)
	if err != nil {
		h.logError(ctx, "list companies failed", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "could not list companies"))
		return
	}

	out := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, companyResponse{ID: c.ID.String(), Name: c.Name, RegionCode: c.RegionCode.String(), Verified: c.Verified})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"companies": out})
}

type regionResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func toRegionResponses(regions []region.Region) []regionResponse {
	out := make([]regionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, regionResponse{Code: r.Code.String(), Name: r.Name, Kind: string(r.Kind)})
	}
	return out
}

func (h *Handler) handleListProvinces(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"regions": toRegionResponses(h.catalog.Provinces())})
}

func (h *Handler) handleListCities(w http.ResponseWriter, r *http.Request) {
	code, err := domain.ParseRegionCode(chi.URLParam(r, "provinceCode"))
	if err != nil || !code.IsProvince() || !h.catalog.Contains(code) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown province code"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"regions": toRegionResponses(h.catalog.CitiesOf(code))})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
