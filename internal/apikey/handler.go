package apikey

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/AMOUAN/projet-electro/internal"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	"github.com/AMOUAN/projet-electro/internal/transport"
	"github.com/AMOUAN/projet-electro/pkg/logger"
)

const apiKeyHeader = "X-API-Key"

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

// Middleware admits machine callers presenting an X-API-Key header, the
// credential a telemetry collector holds. Requests without the header
// fall through to the wrapped authenticator. Keys are issued by
// SUPER_ADMINs and grant an unscoped read of the telemetry surface, so
// the principal carries that role.
func (h *Handler) Middleware(fallback func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		bearer := fallback(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(apiKeyHeader)
			if key == "" {
				bearer.ServeHTTP(w, r)
				return
			}

			k, err := h.Service.Authenticate(key)
			if err != nil {
				h.Logger.Warn("api key rejected", "error", err)
				h.HandleServiceError(w, err)
				return
			}

			principal := &internal.Principal{
				ID:       k.ID,
				Username: k.Name,
				Role:     roleDatamodel.SuperAdmin,
			}
			ctx := internal.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAPIKeyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Service.List(r.URL.Query().Get("user_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, keys)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	k, err := h.Service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, k)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "api key deleted"})
}
