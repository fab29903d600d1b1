package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finchat/finchat/internal/models"
	"github.com/finchat/finchat/internal/store"
)

// SaidaHandler handles expense record CRUD.
type SaidaHandler struct {
	repo *store.Repository
}

func NewSaidaHandler(repo *store.Repository) *SaidaHandler {
	return &SaidaHandler{repo: repo}
}

// Create handles POST /api/saida
func (h *SaidaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaidaCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}

	saida, err := h.repo.CreateSaida(r.Context(), req)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "erro ao criar saída")
		return
	}
	models.WriteJSON(w, http.StatusOK, saida)
}

// Get handles GET /api/saida/{saida_id}
func (h *SaidaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "saida_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	saida, err := h.repo.GetSaida(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "Saída não encontrada")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao buscar saída")
		return
	}
	models.WriteJSON(w, http.StatusOK, saida)
}

// Update handles PUT /api/saida/{saida_id}
func (h *SaidaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "saida_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req models.SaidaCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}

	saida, err := h.repo.UpdateSaida(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "Saída não encontrada")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao atualizar saída")
		return
	}
	models.WriteJSON(w, http.StatusOK, saida)
}

// Delete handles DELETE /api/saida/{saida_id}
func (h *SaidaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "saida_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := h.repo.DeleteSaida(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "Saída não encontrada")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao excluir saída")
		return
	}
	models.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Saída excluída com sucesso"})
}

// List handles GET /api/saidas/{usuario_id}
func (h *SaidaHandler) List(w http.ResponseWriter, r *http.Request) {
	usuarioID, ok := pathID(r, "usuario_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "usuario_id inválido")
		return
	}

	saidas, err := h.repo.ListSaidas(r.Context(), usuarioID)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "erro ao listar saídas")
		return
	}
	models.WriteJSON(w, http.StatusOK, saidas)
}
