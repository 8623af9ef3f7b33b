package network

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/AMOUAN/projet-electro/internal"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	"github.com/AMOUAN/projet-electro/internal/transport"
	"github.com/AMOUAN/projet-electro/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// companyScope picks the tenant filter: a SUPER_ADMIN may ask for any
// company (or all of them); everyone else is pinned to their own.
func companyScope(r *http.Request) string {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok || p == nil {
		return ""
	}
	if p.HasRole(roleDatamodel.SuperAdmin) {
		return r.URL.Query().Get("company_id")
	}
	return p.CompanyID
}

func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func (h *Handler) HealthStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.HealthStats(companyScope(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GatewayHealthList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.GatewayHealthList()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Gateways(w http.ResponseWriter, r *http.Request) {
	gateways, err := h.Service.Gateways()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, gateways)
}

func (h *Handler) GatewayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GatewayStats(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) Frames(w http.ResponseWriter, r *http.Request) {
	frames, err := h.Service.Frames(companyScope(r), limitParam(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, frames)
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.DashboardStats(companyScope(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Service.RecentActivity(companyScope(r), limitParam(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, activity)
}
