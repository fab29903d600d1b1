package chat

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finchat/finchat/internal/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Requesters resolves the account a question is asked on behalf of.
type Requesters interface {
	GetUsuario(ctx context.Context, id int) (models.UsuarioRead, error)
}

// Completer produces one chat completion.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}

// Options tunes the two completion stages.
type Options struct {
	SQLGenTemperature float64
	SQLGenMaxTokens   int
	AnswerTemperature float64
}

// Pipeline runs the two-stage question-to-answer flow: generate SQL, gate it,
// execute it read-only, then ask the model to phrase the rows as an answer.
type Pipeline struct {
	requesters Requesters
	completer  Completer
	db         *sql.DB
	opts       Options
	now        func() time.Time
}

func NewPipeline(requesters Requesters, completer Completer, db *sql.DB, opts Options) *Pipeline {
	return &Pipeline{
		requesters: requesters,
		completer:  completer,
		db:         db,
		opts:       opts,
		now:        time.Now,
	}
}

// Answer resolves a user question to a chat reply. A nil error with a reply
// covers both real answers and polite refusals; a non-nil error is a hard
// failure the handler maps to a 5xx (or 404 for an unknown requester).
func (p *Pipeline) Answer(ctx context.Context, usuarioID int, pergunta string) (string, error) {
	if _, err := p.requesters.GetUsuario(ctx, usuarioID); err != nil {
		return "", err
	}

	questionHash := shortHash(pergunta)
	log.Info().
		Int("usuario_id", usuarioID).
		Str("question_hash", questionHash).
		Msg("chat question received")

	prompt := BuildSQLPrompt(usuarioID, pergunta, ComputeAnchors(p.now()))
	raw, err := p.completer.Complete(ctx,
		[]Message{{Role: "system", Content: prompt}},
		p.opts.SQLGenTemperature, p.opts.SQLGenMaxTokens)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			log.Warn().
				Int("usuario_id", usuarioID).
				Str("question_hash", questionHash).
				Str("detail", malformed.Detail).
				Msg("sql generation returned no usable completion")
			return msgNoQuery, nil
		}
		return "", err
	}

	query := ExtractSQL(raw)
	if refusal := ValidateSQL(query, usuarioID); refusal != nil {
		log.Warn().
			Int("usuario_id", usuarioID).
			Str("question_hash", questionHash).
			Str("sql_hash", shortHash(query)).
			Msg("generated query refused")
		return refusal.Message, nil
	}

	log.Info().
		Int("usuario_id", usuarioID).
		Str("question_hash", questionHash).
		Str("sql_hash", shortHash(query)).
		Msg("executing generated query")

	results, err := Execute(ctx, p.db, query)
	if err != nil {
		return "", err
	}

	resultsJSON, err := json.MarshalIndent(Normalize(results), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}

	answer, err := p.completer.Complete(ctx,
		[]Message{{Role: "system", Content: BuildAnswerPrompt(pergunta, string(resultsJSON))}},
		p.opts.AnswerTemperature, 0)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			log.Warn().
				Int("usuario_id", usuarioID).
				Str("question_hash", questionHash).
				Str("detail", malformed.Detail).
				Msg("answer stage returned no usable completion")
			return msgNoAnswer, nil
		}
		return "", err
	}

	return collapseWhitespace(answer), nil
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// shortHash keeps identifying text out of the logs while still letting
// entries for the same question be correlated.
func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}
