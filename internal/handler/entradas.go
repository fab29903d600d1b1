package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finchat/finchat/internal/models"
	"github.com/finchat/finchat/internal/store"
)

// EntradaHandler handles income record CRUD.
type EntradaHandler struct {
	repo *store.Repository
}

func NewEntradaHandler(repo *store.Repository) *EntradaHandler {
	return &EntradaHandler{repo: repo}
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil && id > 0
}

// Create handles POST /api/entrada
func (h *EntradaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EntradaCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}

	entrada, err := h.repo.CreateEntrada(r.Context(), req)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "erro ao criar entrada")
		return
	}
	models.WriteJSON(w, http.StatusOK, entrada)
}

// Get handles GET /api/entrada/{entrada_id}
func (h *EntradaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "entrada_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	entrada, err := h.repo.GetEntrada(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "Entrada não encontrada")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao buscar entrada")
		return
	}
	models.WriteJSON(w, http.StatusOK, entrada)
}

// Update handles PUT /api/entrada/{entrada_id}
func (h *EntradaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "entrada_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}
	var req models.EntradaCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}

	entrada, err := h.repo.UpdateEntrada(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "Entrada não encontrada")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao atualizar entrada")
		return
	}
	models.WriteJSON(w, http.StatusOK, entrada)
}

// Delete handles DELETE /api/entrada/{entrada_id}
func (h *EntradaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "entrada_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := h.repo.DeleteEntrada(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "Entrada não encontrada")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao excluir entrada")
		return
	}
	models.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "Entrada excluída com sucesso"})
}

// List handles GET /api/entradas/{usuario_id}
func (h *EntradaHandler) List(w http.ResponseWriter, r *http.Request) {
	usuarioID, ok := pathID(r, "usuario_id")
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "usuario_id inválido")
		return
	}

	entradas, err := h.repo.ListEntradas(r.Context(), usuarioID)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "erro ao listar entradas")
		return
	}
	models.WriteJSON(w, http.StatusOK, entradas)
}
