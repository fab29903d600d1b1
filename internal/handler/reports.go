package handler

import (
	"net/http"
	"time"

	"github.com/finchat/finchat/internal/models"
	"github.com/finchat/finchat/internal/store"
)

// ReportHandler handles the dashboard and report aggregations.
type ReportHandler struct {
	repo *store.Repository
}

func NewReportHandler(repo *store.Repository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// Dashboard handles GET /api/dashboard/{usuario_id}?instituicao=&categorias=
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	usuarioID, ok := pathID(r, "usuario_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "usuario_id inválido")
		return
	}

	q := r.URL.Query()
	resp, err := h.repo.Dashboard(r.Context(), usuarioID, q.Get("instituicao"), q["categorias"])
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "erro ao montar o dashboard")
		return
	}
	models.WriteJSON(w, http.StatusOK, resp)
}

// Relatorio handles GET /api/relatorio/{usuario_id}?instituicao=&date_from=&date_to=
func (h *ReportHandler) Relatorio(w http.ResponseWriter, r *http.Request) {
	usuarioID, ok := pathID(r, "usuario_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "usuario_id inválido")
		return
	}

	q := r.URL.Query()
	dateFrom, ok := parseDateParam(q.Get("date_from"))
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "date_from inválido")
		return
	}
	dateTo, ok := parseDateParam(q.Get("date_to"))
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "date_to inválido")
		return
	}

	resp, err := h.repo.Relatorio(r.Context(), usuarioID, q.Get("instituicao"), dateFrom, dateTo)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "erro ao montar o relatório")
		return
	}
	models.WriteJSON(w, http.StatusOK, resp)
}

// parseDateParam accepts an ISO timestamp or a bare date; empty means unset.
func parseDateParam(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}
