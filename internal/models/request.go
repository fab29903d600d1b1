package models

import "time"

type UsuarioCreate struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type Login struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type EntradaCreate struct {
	UsuarioID   int       `json:"usuario_id"`
	Descricao   *string   `json:"descricao,omitempty"`
	Data        time.Time `json:"data"`
	Instituicao string    `json:"instituicao"`
	Valor       float64   `json:"valor"`
}

type SaidaCreate struct {
	UsuarioID    int       `json:"usuario_id"`
	Descricao    *string   `json:"descricao,omitempty"`
	Data         time.Time `json:"data"`
	Categoria    string    `json:"categoria"`
	Subcategoria *string   `json:"subcategoria,omitempty"`
	Instituicao  string    `json:"instituicao"`
	Valor        float64   `json:"valor"`
}

// ChatRequest for POST /api/chat. Clients send either the canonical
// field names (usuario_id, pergunta) or the frontend aliases
// (userId, question); Normalize folds both into the canonical shape.
type ChatRequest struct {
	UsuarioID int    `json:"usuario_id"`
	Pergunta  string `json:"pergunta"`

	Question string `json:"question,omitempty"`
	UserID   *int   `json:"userId,omitempty"`
}

// Normalize coerces alias fields into the canonical ones. It is the single
// pre-validation step; after it returns the alias fields are cleared.
func (r *ChatRequest) Normalize() {
	if r.Pergunta == "" && r.Question != "" {
		r.Pergunta = r.Question
	}
	if r.UsuarioID == 0 && r.UserID != nil {
		r.UsuarioID = *r.UserID
	}
	r.Question = ""
	r.UserID = nil
}
