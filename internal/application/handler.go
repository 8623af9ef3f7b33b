package application

import (
	"log/slog"
	"net/http"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if p, ok := internal.PrincipalFromContext(r.Context()); ok && p != nil && !p.HasRole(roleDatamodel.SuperAdmin) {
		companyID = p.CompanyID
	}

	apps, err := h.Service.List(companyID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, detail)
}
