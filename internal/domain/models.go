package domain

import (
	"time"

	"github.com/uptrace/bun"
)

// Usuario is an admin-managed user enrolled in zero or more certifications.
type Usuario struct {
	bun.BaseModel `bun:"table:users,alias:usuario"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	NomeCompleto string    `bun:"nome_completo,notnull" json:"nome_completo"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	DDI          string    `bun:"ddi,notnull" json:"ddi"`
	Whatsapp     string    `bun:"whatsapp,notnull" json:"whatsapp"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Certificacao is a named exam/credential category owning a set of questions.
type Certificacao struct {
	bun.BaseModel `bun:"table:certificacoes,alias:certificacao"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Nome      string    `bun:"nome,notnull" json:"nome"`
	Descricao *string   `bun:"descricao" json:"descricao"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Pergunta is a single exam item belonging to one certification.
type Pergunta struct {
	bun.BaseModel `bun:"table:perguntas,alias:pergunta"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	CertificacaoID int64     `bun:"certificacao_id,notnull" json:"certificacao_id"`
	Enunciado      string    `bun:"enunciado,notnull" json:"enunciado"`
	Explicacao     *string   `bun:"explicacao" json:"explicacao"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,notnull" json:"updated_at"`

	Certificacao *Certificacao `bun:"rel:belongs-to,join:certificacao_id=id" json:"certificacao,omitempty"`
	Respostas    []Resposta    `bun:"rel:has-many,join:id=pergunta_id" json:"respostas,omitempty"`
}

// PerguntaResumo is the list-view projection: question fields plus its
// certification and the number of answers it owns. Answer texts are not loaded.
type PerguntaResumo struct {
	bun.BaseModel `bun:"table:perguntas,alias:pergunta"`

	ID             int64     `bun:"id,pk" json:"id"`
	CertificacaoID int64     `bun:"certificacao_id" json:"certificacao_id"`
	Enunciado      string    `bun:"enunciado" json:"enunciado"`
	CreatedAt      time.Time `bun:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at" json:"updated_at"`

	Certificacao   *Certificacao `bun:"rel:belongs-to,join:certificacao_id=id" json:"certificacao"`
	TotalRespostas int           `bun:"total_respostas,scanonly" json:"total_respostas"`
}

// Resposta is one candidate answer to a question, flagged correct or not.
type Resposta struct {
	bun.BaseModel `bun:"table:respostas,alias:resposta"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	PerguntaID int64     `bun:"pergunta_id,notnull" json:"pergunta_id"`
	Texto      string    `bun:"texto,notnull" json:"texto"`
	Correta    bool      `bun:"correta,notnull" json:"correta"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// UsuarioCertificacao links a user to a certification (N-N join row).
type UsuarioCertificacao struct {
	bun.BaseModel `bun:"table:usuarios_certificacoes,alias:uc"`

	ID             int64 `bun:"id,pk,autoincrement" json:"id"`
	UsuarioID      int64 `bun:"usuario_id,notnull" json:"usuario_id"`
	CertificacaoID int64 `bun:"certificacao_id,notnull" json:"certificacao_id"`
}

// JsonlFile is an immutable export artifact: one JSON object per line, each
// line a question with its answers. Rows are only ever inserted.
type JsonlFile struct {
	bun.BaseModel `bun:"table:jsonl_files,alias:jsonl_file"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	CertificacaoID int64     `bun:"certificacao_id,notnull" json:"certificacao_id"`
	Content        string    `bun:"content,notnull" json:"content"`
	Filename       string    `bun:"filename,notnull" json:"filename"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Stats holds the aggregate row counts shown on the dashboard.
type Stats struct {
	Certificacoes int64 `json:"certificacoes"`
	Perguntas     int64 `json:"perguntas"`
	Usuarios      int64 `json:"usuarios"`
	JsonlFiles    int64 `json:"jsonl_files"`
}
