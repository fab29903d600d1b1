package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/finchat/finchat/internal/models"
)

type fakeRequesters struct {
	err   error
	calls int
}

func (f *fakeRequesters) GetUsuario(_ context.Context, id int) (models.UsuarioRead, error) {
	f.calls++
	if f.err != nil {
		return models.UsuarioRead{}, f.err
	}
	return models.UsuarioRead{ID: id, Nome: "Ana", Email: "ana@example.com"}, nil
}

type completion struct {
	content string
	err     error
}

type fakeCompleter struct {
	queue   []completion
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, messages []Message, _ float64, _ int) (string, error) {
	f.prompts = append(f.prompts, messages[0].Content)
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next.content, next.err
}

func testOptions() Options {
	return Options{SQLGenTemperature: 0.1, SQLGenMaxTokens: 500, AnswerTemperature: 0.5}
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 18, 14, 30, 45, 0, time.UTC)
}

func TestAnswerHappyPath(t *testing.T) {
	db, mock := newSQLMock(t)
	query := "SELECT descricao, categoria, valor, data FROM saidas WHERE usuario_id = 7 ORDER BY data DESC LIMIT 5"
	when := time.Date(2025, time.June, 17, 9, 0, 0, 0, time.UTC)

	cols := []*sqlmock.Column{
		sqlmock.NewColumn("descricao").OfType("TEXT", ""),
		sqlmock.NewColumn("categoria").OfType("TEXT", ""),
		sqlmock.NewColumn("valor").OfType("NUMERIC", ""),
		sqlmock.NewColumn("data").OfType("TIMESTAMP", time.Time{}),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(query).WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(cols...).
			AddRow("Mercado", "Alimentação", []byte("45.90"), when))
	mock.ExpectCommit()

	completer := &fakeCompleter{queue: []completion{
		{content: "```sql\n" + query + "\n```"},
		{content: "  Sua saída mais recente foi\n\n  Mercado, de R$ 45,90.  "},
	}}
	p := NewPipeline(&fakeRequesters{}, completer, db, testOptions())
	p.now = fixedNow

	answer, err := p.Answer(context.Background(), 7, "quais as saidas mais recentes?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "Sua saída mais recente foi Mercado, de R$ 45,90." {
		t.Errorf("answer = %q", answer)
	}

	if len(completer.prompts) != 2 {
		t.Fatalf("completions = %d, want 2", len(completer.prompts))
	}
	if !strings.Contains(completer.prompts[0], "WHERE usuario_id = 7") {
		t.Error("stage-1 prompt missing user scope")
	}
	if !strings.Contains(completer.prompts[1], `"valor": 45.9`) {
		t.Errorf("stage-2 prompt missing normalized rows:\n%s", completer.prompts[1])
	}
	if !strings.Contains(completer.prompts[1], when.Format(time.RFC3339)) {
		t.Error("stage-2 prompt missing normalized timestamp")
	}
	assertSQLMock(t, mock)
}

func TestAnswerSaldoEndToEnd(t *testing.T) {
	db, mock := newSQLMock(t)
	query := "SELECT\n" +
		"    (SELECT ROUND(SUM(valor), 2) FROM entradas WHERE usuario_id = 7) -\n" +
		"    (SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = 7) AS saldo,\n" +
		"    (SELECT ROUND(SUM(valor), 2) FROM entradas WHERE usuario_id = 7) AS total_entradas,\n" +
		"    (SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = 7) AS total_saidas;"

	cols := []*sqlmock.Column{
		sqlmock.NewColumn("saldo").OfType("NUMERIC", ""),
		sqlmock.NewColumn("total_entradas").OfType("NUMERIC", ""),
		sqlmock.NewColumn("total_saidas").OfType("NUMERIC", ""),
	}
	mock.ExpectBegin()
	mock.ExpectQuery(query).WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(cols...).
			AddRow([]byte("3799.50"), []byte("5000.00"), []byte("1200.50")))
	mock.ExpectCommit()

	// First completion emits the fenced query, the second phrases the answer.
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var content string
		if calls == 1 {
			content = "```sql\n" + query + "\n```"
		} else {
			content = "Seu saldo atual é de R$ 3.799,50."
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": content}}},
		})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "gemma3", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	p := NewPipeline(&fakeRequesters{}, client, db, testOptions())
	p.now = fixedNow

	answer, err := p.Answer(context.Background(), 7, "qual é o meu saldo?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "Seu saldo atual é de R$ 3.799,50." {
		t.Errorf("answer = %q", answer)
	}
	if calls != 2 {
		t.Errorf("completion calls = %d, want 2", calls)
	}
	assertSQLMock(t, mock)
}

func TestAnswerUnknownRequesterSkipsCompletion(t *testing.T) {
	db, mock := newSQLMock(t)
	notFound := errors.New("usuario not found")
	completer := &fakeCompleter{}
	p := NewPipeline(&fakeRequesters{err: notFound}, completer, db, testOptions())

	_, err := p.Answer(context.Background(), 99, "qual é o meu saldo?")
	if !errors.Is(err, notFound) {
		t.Fatalf("error = %v, want requester lookup failure", err)
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completions = %d, want 0", len(completer.prompts))
	}
	assertSQLMock(t, mock)
}

func TestAnswerTransportErrorIsFatal(t *testing.T) {
	db, mock := newSQLMock(t)
	completer := &fakeCompleter{queue: []completion{
		{err: &TransportError{Err: errors.New("connection refused")}},
	}}
	p := NewPipeline(&fakeRequesters{}, completer, db, testOptions())
	p.now = fixedNow

	_, err := p.Answer(context.Background(), 7, "qual é o meu saldo?")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	assertSQLMock(t, mock)
}

func TestAnswerMalformedGenerationBecomesRefusal(t *testing.T) {
	db, mock := newSQLMock(t)
	completer := &fakeCompleter{queue: []completion{
		{err: &MalformedError{Detail: "no choices"}},
	}}
	p := NewPipeline(&fakeRequesters{}, completer, db, testOptions())
	p.now = fixedNow

	answer, err := p.Answer(context.Background(), 7, "qual é o meu saldo?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != msgNoQuery {
		t.Errorf("answer = %q, want %q", answer, msgNoQuery)
	}
	assertSQLMock(t, mock)
}

func TestAnswerRefusesOutOfScopeQuery(t *testing.T) {
	db, mock := newSQLMock(t)
	completer := &fakeCompleter{queue: []completion{
		{content: "SELECT valor FROM saidas WHERE usuario_id = 8"},
	}}
	p := NewPipeline(&fakeRequesters{}, completer, db, testOptions())
	p.now = fixedNow

	answer, err := p.Answer(context.Background(), 7, "quanto gastei?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != msgUnsafe {
		t.Errorf("answer = %q, want %q", answer, msgUnsafe)
	}
	if len(completer.prompts) != 1 {
		t.Errorf("completions = %d, want 1", len(completer.prompts))
	}
	assertSQLMock(t, mock)
}

func TestAnswerQueryFailurePropagates(t *testing.T) {
	db, mock := newSQLMock(t)
	query := "SELECT nope FROM saidas WHERE usuario_id = 7"

	mock.ExpectBegin()
	mock.ExpectQuery(query).WillReturnError(errors.New(`column "nope" does not exist`))
	mock.ExpectRollback()

	completer := &fakeCompleter{queue: []completion{{content: query}}}
	p := NewPipeline(&fakeRequesters{}, completer, db, testOptions())
	p.now = fixedNow

	_, err := p.Answer(context.Background(), 7, "quanto gastei?")
	var qerr *QueryExecutionError
	if !errors.As(err, &qerr) {
		t.Fatalf("error = %v, want *QueryExecutionError", err)
	}
	assertSQLMock(t, mock)
}

func TestAnswerMalformedAnswerStageBecomesRefusal(t *testing.T) {
	db, mock := newSQLMock(t)
	query := "SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = 7"

	mock.ExpectBegin()
	mock.ExpectQuery(query).WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("round").OfType("NUMERIC", "")).
			AddRow([]byte("120.00")))
	mock.ExpectCommit()

	completer := &fakeCompleter{queue: []completion{
		{content: query},
		{err: &MalformedError{Detail: "choice has no message content"}},
	}}
	p := NewPipeline(&fakeRequesters{}, completer, db, testOptions())
	p.now = fixedNow

	answer, err := p.Answer(context.Background(), 7, "quanto gastei este mês?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != msgNoAnswer {
		t.Errorf("answer = %q, want %q", answer, msgNoAnswer)
	}
	assertSQLMock(t, mock)
}
