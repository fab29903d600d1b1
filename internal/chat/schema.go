package chat

// schemaDescriptor is the static description of the finance schema handed to
// the model in the SQL-generation prompt. It is interpolated verbatim and
// never parsed by the pipeline.
const schemaDescriptor = `
Tabela: usuarios
    - id (INTEGER, chave primária)
    - nome (STRING)
    - email (STRING, único)
    - senha (STRING)

Tabela: entradas
    - id (INTEGER, chave primária)
    - usuario_id (INTEGER, chave estrangeira para usuarios.id)
    - descricao (TEXT)
    - data (DATETIME)
    - instituicao (STRING)
    - valor (DECIMAL)

Tabela: saidas
    - id (INTEGER, chave primária)
    - usuario_id (INTEGER, chave estrangeira para usuarios.id)
    - descricao (TEXT)
    - data (DATETIME)
    - categoria (STRING)
    - subcategoria (STRING)
    - instituicao (STRING)
    - valor (DECIMAL)

Relações:
    - usuarios.id se relaciona com entradas.usuario_id (um usuário tem muitas entradas)
    - usuarios.id se relaciona com saidas.usuario_id (um usuário tem muitas saídas)

O campo 'data' é sempre armazenado no formato DATETIME.
Os campos 'valor' são sempre numéricos decimais.
`
