package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/finchat/finchat/internal/chat"
	"github.com/finchat/finchat/internal/handler"
	"github.com/finchat/finchat/internal/middleware"
	"github.com/finchat/finchat/internal/observability"
	"github.com/finchat/finchat/internal/store"
)

// setupRoutes returns (router, db, error) so the pool can be closed on
// shutdown.
func (s *Server) setupRoutes(ctx context.Context) (http.Handler, *sql.DB, error) {
	cfg := s.cfg

	// ─── Store ───────────────────────────────────────────────────────────────────
	db, err := store.Open(ctx, store.DBConfig{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: 5 * time.Minute,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	repo := store.NewRepository(db)

	// ─── Chat pipeline ───────────────────────────────────────────────────────────
	completer, err := chat.NewClient(cfg.ChatURL, cfg.ChatModel, cfg.ChatTimeout())
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("chat client: %w", err)
	}
	pipeline := chat.NewPipeline(repo, completer, db, chat.Options{
		SQLGenTemperature: cfg.SQLGenTemperature,
		SQLGenMaxTokens:   cfg.SQLGenMaxTokens,
		AnswerTemperature: cfg.AnswerTemperature,
	})

	log.Info().
		Str("chat_url", cfg.ChatURL).
		Str("chat_model", cfg.ChatModel).
		Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Msg("service configuration")

	// ─── Handlers ────────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(repo)
	usuarioH := handler.NewUsuarioHandler(repo)
	entradaH := handler.NewEntradaHandler(repo)
	saidaH := handler.NewSaidaHandler(repo)
	reportH := handler.NewReportHandler(repo)
	chatH := handler.NewChatHandler(pipeline)

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)
	r.Use(observability.MetricsMiddleware)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

		r.Route("/api", func(r chi.Router) {
			r.Post("/cadastro", usuarioH.Cadastro)
			r.Post("/login", usuarioH.Login)

			r.Post("/entrada", entradaH.Create)
			r.Get("/entrada/{entrada_id}", entradaH.Get)
			r.Put("/entrada/{entrada_id}", entradaH.Update)
			r.Delete("/entrada/{entrada_id}", entradaH.Delete)
			r.Get("/entradas/{usuario_id}", entradaH.List)

			r.Post("/saida", saidaH.Create)
			r.Get("/saida/{saida_id}", saidaH.Get)
			r.Put("/saida/{saida_id}", saidaH.Update)
			r.Delete("/saida/{saida_id}", saidaH.Delete)
			r.Get("/saidas/{usuario_id}", saidaH.List)

			r.Get("/dashboard/{usuario_id}", reportH.Dashboard)
			r.Get("/relatorio/{usuario_id}", reportH.Relatorio)

			r.Post("/chat", chatH.Chat)
		})
	})

	return r, db, nil
}
