package models

import "time"

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type UsuarioRead struct {
	ID    int    `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Nome    string `json:"nome"`
	ID      int    `json:"id"`
}

type EntradaRead struct {
	ID          int       `json:"id"`
	UsuarioID   int       `json:"usuario_id"`
	Descricao   *string   `json:"descricao"`
	Data        time.Time `json:"data"`
	Instituicao string    `json:"instituicao"`
	Valor       float64   `json:"valor"`
}

type SaidaRead struct {
	ID           int       `json:"id"`
	UsuarioID    int       `json:"usuario_id"`
	Descricao    *string   `json:"descricao"`
	Data         time.Time `json:"data"`
	Categoria    string    `json:"categoria"`
	Subcategoria *string   `json:"subcategoria"`
	Instituicao  string    `json:"instituicao"`
	Valor        float64   `json:"valor"`
}

type DashboardResponse struct {
	Saldo          float64       `json:"saldo"`
	TotalEntradas  float64       `json:"total_entradas"`
	TotalSaidas    float64       `json:"total_saidas"`
	RecentEntradas []EntradaRead `json:"recent_entradas"`
	RecentSaidas   []SaidaRead   `json:"recent_saidas"`
}

type CategoriaTotal struct {
	Categoria string  `json:"categoria"`
	Total     float64 `json:"total"`
}

type InstituicaoTotal struct {
	Instituicao string  `json:"instituicao"`
	Total       float64 `json:"total"`
}

type RelatorioResponse struct {
	PorCategoria          []CategoriaTotal   `json:"por_categoria"`
	EntradaPorInstituicao []InstituicaoTotal `json:"entrada_por_instituicao"`
	SaidaPorInstituicao   []InstituicaoTotal `json:"saida_por_instituicao"`
}

type ChatResponse struct {
	Resposta string `json:"resposta"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
