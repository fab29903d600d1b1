package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finchat/finchat/internal/chat"
	"github.com/finchat/finchat/internal/models"
	"github.com/finchat/finchat/internal/observability"
	"github.com/finchat/finchat/internal/store"
)

// Answerer resolves a user question to a chat reply.
type Answerer interface {
	Answer(ctx context.Context, usuarioID int, pergunta string) (string, error)
}

// ChatHandler handles POST /api/chat.
type ChatHandler struct {
	pipeline Answerer
}

func NewChatHandler(pipeline Answerer) *ChatHandler {
	return &ChatHandler{pipeline: pipeline}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "corpo da requisição inválido: "+err.Error())
		return
	}
	req.Normalize()

	if strings.TrimSpace(req.Pergunta) == "" {
		models.WriteError(w, http.StatusBadRequest, "pergunta é obrigatória")
		return
	}
	if req.UsuarioID <= 0 {
		models.WriteError(w, http.StatusBadRequest, "usuario_id é obrigatório")
		return
	}

	resposta, err := h.pipeline.Answer(r.Context(), req.UsuarioID, req.Pergunta)
	if err != nil {
		var terr *chat.TransportError
		var qerr *chat.QueryExecutionError
		switch {
		case errors.Is(err, store.ErrNotFound):
			observability.RecordChatOutcome("not_found")
			models.WriteError(w, http.StatusNotFound, "Utilizador não encontrado")
		case errors.As(err, &terr):
			observability.RecordChatOutcome("transport_error")
			models.WriteError(w, http.StatusInternalServerError, "Erro no modelo de chat: "+terr.Err.Error())
		case errors.As(err, &qerr):
			observability.RecordChatOutcome("query_error")
			models.WriteError(w, http.StatusInternalServerError,
				"Ocorreu um erro ao consultar os dados. Por favor, tente novamente ou reformule sua pergunta. (Detalhes técnicos: "+qerr.Detail+")")
		default:
			observability.RecordChatOutcome("internal_error")
			models.WriteError(w, http.StatusInternalServerError, "Erro interno ao processar o chat")
		}
		return
	}

	observability.RecordChatOutcome("answered")
	models.WriteJSON(w, http.StatusOK, models.ChatResponse{Resposta: resposta})
}
