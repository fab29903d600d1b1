package chat

import "fmt"

// BuildSQLPrompt assembles the stage-1 instruction block: schema, safety
// rules, literal date anchors, worked examples and the verbatim question.
// Pure function of its inputs.
func BuildSQLPrompt(usuarioID int, pergunta string, a Anchors) string {
	return fmt.Sprintf(`Você é um assistente financeiro que pode consultar um banco de dados SQL para responder a perguntas sobre finanças pessoais.
Aqui está o esquema do banco de dados:
%s
Você DEVE gerar SOMENTE a consulta SQL que responde à pergunta do usuário.
Não adicione explicações ou qualquer outro texto, APENAS o SQL.
A consulta SQL deve sempre incluir `+"`WHERE usuario_id = %d`"+` para filtrar os dados do usuário correto.
Use `+"`FROM saidas`"+` para perguntas sobre gastos e `+"`FROM entradas`"+` para perguntas sobre receitas.
Sempre arredonde os valores monetários para duas casas decimais no SELECT, usando `+"`ROUND(campo, 2)`"+`.
Para calcular totais, use `+"`SUM(valor)`"+`. Para médias, use `+"`AVG(valor)`"+`. Para contagens, use `+"`COUNT(*)`"+`.
Para filtros de data, utilize `+"`data BETWEEN 'YYYY-MM-DD HH:MM:SS' AND 'YYYY-MM-DD HH:MM:SS'`"+`.
Para as datas atuais:
- O início da semana é '%s'
- O fim da semana é '%s'
- O início do mês é '%s'
- O fim do mês é '%s'
- O início do ano é '%s'
- O fim do ano é '%s'
Use `+"`ORDER BY data DESC`"+` para listar os resultados mais recentes primeiro.
Use `+"`LIMIT X`"+` para limitar o número de resultados.

**Instruções Específicas:**
- Para calcular o saldo (total de entradas menos total de saídas), você DEVE usar subconsultas.
- A consulta para o saldo deve ter o seguinte formato:
  `+"```sql"+`
  SELECT
      (SELECT ROUND(SUM(valor), 2) FROM entradas WHERE usuario_id = <usuario_id>) -
      (SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = <usuario_id>) AS saldo,
      (SELECT ROUND(SUM(valor), 2) FROM entradas WHERE usuario_id = <usuario_id>) AS total_entradas,
      (SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = <usuario_id>) AS total_saidas;
  `+"```"+`
- Retorne o saldo, o total de entradas e o total de saídas na mesma consulta.

Exemplo de pergunta do usuário: 'qual é o meu saldo?'
Exemplo de SQL esperada:
SELECT
    (SELECT ROUND(SUM(valor), 2) FROM entradas WHERE usuario_id = %d) -
    (SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = %d) AS saldo,
    (SELECT ROUND(SUM(valor), 2) FROM entradas WHERE usuario_id = %d) AS total_entradas,
    (SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = %d) AS total_saidas;

Exemplo de pergunta do usuário: 'quais foram os gastos totais em alimentação este mês?'
Exemplo de SQL esperada:
SELECT ROUND(SUM(valor), 2) FROM saidas WHERE usuario_id = %d AND categoria = 'Alimentação' AND data BETWEEN '%s' AND '%s';

Exemplo de pergunta do usuário: 'liste todas as minhas entradas de salário do ano passado'
Exemplo de SQL esperada:
SELECT descricao, instituicao, valor, data FROM entradas WHERE usuario_id = %d AND descricao LIKE '%%Salário%%' AND EXTRACT(YEAR FROM data) = EXTRACT(YEAR FROM CURRENT_DATE) - 1 ORDER BY data DESC;

Exemplo de pergunta do usuário: 'quais as 5 saidas mais recentes?'
Exemplo de SQL esperada:
SELECT descricao, categoria, valor, data FROM saidas WHERE usuario_id = %d ORDER BY data DESC LIMIT 5;

Agora, gere a consulta SQL para a seguinte pergunta do usuário: '%s'`,
		schemaDescriptor,
		usuarioID,
		a.WeekStart.Format(anchorLayout),
		a.WeekEnd.Format(anchorLayout),
		a.MonthStart.Format(anchorLayout),
		a.MonthEnd.Format(anchorLayout),
		a.YearStart.Format(anchorLayout),
		a.YearEnd.Format(anchorLayout),
		usuarioID, usuarioID, usuarioID, usuarioID,
		usuarioID,
		a.MonthStart.Format(anchorLayout),
		a.MonthEnd.Format(anchorLayout),
		usuarioID,
		usuarioID,
		pergunta,
	)
}

// BuildAnswerPrompt assembles the stage-2 instruction block: normalized query
// results as indented JSON plus the original question. The schema descriptor
// is deliberately absent; the rows are self-describing in the context of the
// question. Pure function of its inputs.
func BuildAnswerPrompt(pergunta, resultsJSON string) string {
	return fmt.Sprintf(`Você é um assistente financeiro. Aqui estão os resultados da consulta SQL que você solicitou:
%s

A pergunta original do usuário foi: '%s'

Com base nesses resultados e na pergunta original, formule uma resposta amigável e clara para o usuário.
Se os resultados estiverem vazios ou forem nulos, informe que não encontrou dados para a solicitação.
Formate os valores monetários de forma adequada (ex: R$ 123,45).
Se a pergunta pedia um total ou média, forneça-o de forma concisa. Se pedia uma lista, apresente os itens de forma legível.`,
		resultsJSON, pergunta)
}
