package chat

import (
	"fmt"
	"strings"
)

// Canned user-facing messages for the soft failure modes. The exact wording
// is part of the API contract with the mobile client.
const (
	msgNoQuery  = "Desculpe, não consegui entender sua solicitação para gerar uma consulta. Poderia reformular?"
	msgEmptySQL = "Não consegui gerar uma consulta SQL para sua pergunta. Por favor, tente ser mais específico."
	msgReadOnly = "Desculpe, só posso realizar consultas de leitura (SELECT). Não posso modificar ou deletar dados."
	msgUnsafe   = "Por segurança, a consulta gerada não pôde ser executada. Por favor, reformule sua pergunta."
	msgNoAnswer = "Desculpe, não consegui formular uma resposta clara com os dados obtidos."
)

// Refusal is the soft failure mode: the pipeline declines to run the
// generated query and the handler still answers 200 with Message as the
// chat reply.
type Refusal struct {
	Message string
}

func (r *Refusal) Error() string { return "refused: " + r.Message }

// ExtractSQL strips markdown code fencing from a model completion. The
// leading "```sql" marker and the trailing "```" are handled independently,
// so a half-fenced completion still comes out clean.
func ExtractSQL(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```sql") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```sql"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// ValidateSQL gates a generated query before execution. Returns nil when the
// query may run, otherwise the refusal to hand back to the user. The scope
// check is a literal substring match on "usuario_id = <id>" as the prompt
// instructs the model to write it.
func ValidateSQL(sql string, usuarioID int) *Refusal {
	if sql == "" {
		return &Refusal{Message: msgEmptySQL}
	}
	if !strings.HasPrefix(strings.ToLower(sql), "select") {
		return &Refusal{Message: msgReadOnly}
	}
	if !strings.Contains(sql, fmt.Sprintf("usuario_id = %d", usuarioID)) {
		return &Refusal{Message: msgUnsafe}
	}
	return nil
}
