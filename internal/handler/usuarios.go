package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finchat/finchat/internal/models"
	"github.com/finchat/finchat/internal/store"
)

// UsuarioHandler handles registration and login.
type UsuarioHandler struct {
	repo *store.Repository
}

func NewUsuarioHandler(repo *store.Repository) *UsuarioHandler {
	return &UsuarioHandler{repo: repo}
}

// Cadastro handles POST /api/cadastro
func (h *UsuarioHandler) Cadastro(w http.ResponseWriter, r *http.Request) {
	var req models.UsuarioCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Nome) == "" || strings.TrimSpace(req.Email) == "" || req.Senha == "" {
		models.WriteError(w, http.StatusBadRequest, "nome, email e senha são obrigatórios")
		return
	}

	usuario, err := h.repo.CreateUsuario(r.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			models.WriteError(w, http.StatusBadRequest, "Email já cadastrado")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao criar usuário")
		return
	}
	models.WriteJSON(w, http.StatusOK, usuario)
}

// Login handles POST /api/login
func (h *UsuarioHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Login
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}

	usuario, err := h.repo.Authenticate(r.Context(), req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			models.WriteError(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "erro ao autenticar")
		return
	}
	models.WriteJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login bem-sucedido",
		Nome:    usuario.Nome,
		ID:      usuario.ID,
	})
}
