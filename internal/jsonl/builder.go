// Package jsonl builds the line-delimited export format consumed by the
// fine-tuning pipeline: one JSON object per question, answers embedded.
package jsonl

import (
	"encoding/json"
	"strings"

	"certbank-service/internal/domain"
)

// DefaultFilename matches the name the admin UI used for downloads.
const DefaultFilename = "perguntas.jsonl"

// Linha is the shape of one exported line.
type Linha struct {
	ID         int64             `json:"id"`
	Pergunta   string            `json:"pergunta"`
	Explicacao *string           `json:"explicacao"`
	Respostas  []domain.Resposta `json:"respostas"`
}

// Build serializes the questions to JSONL, one line per question with its
// full answer rows, joined by newlines without a trailing one.
func Build(perguntas []domain.Pergunta) (string, error) {
	lines := make([]string, 0, len(perguntas))
	for _, p := range perguntas {
		if p.Respostas == nil {
			p.Respostas = []domain.Resposta{}
		}
		line := Linha{
			ID:         p.ID,
			Pergunta:   p.Enunciado,
			Explicacao: p.Explicacao,
			Respostas:  p.Respostas,
		}
		raw, err := json.Marshal(line)
		if err != nil {
			return "", err
		}
		lines = append(lines, string(raw))
	}
	return strings.Join(lines, "\n"), nil
}
