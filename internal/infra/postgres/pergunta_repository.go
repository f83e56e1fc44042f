package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"certbank-service/internal/domain"
	"github.com/uptrace/bun"
)

// PerguntaRepository stores questions and their answer sets in Postgres.
// Question writes that touch answers run in a single transaction.
type PerguntaRepository struct {
	db *bun.DB
}

func NewPerguntaRepository(db *bun.DB) *PerguntaRepository {
	return &PerguntaRepository{db: db}
}

// ListResumo returns every question joined with its certification plus the
// answer count, the shape the admin list table renders.
func (r *PerguntaRepository) ListResumo(ctx context.Context) ([]domain.PerguntaResumo, error) {
	resumos := make([]domain.PerguntaResumo, 0)
	err := r.db.NewSelect().
		Model(&resumos).
		Relation("Certificacao").
		ColumnExpr("pergunta.id, pergunta.certificacao_id, pergunta.enunciado, pergunta.created_at, pergunta.updated_at").
		ColumnExpr("(SELECT count(*) FROM respostas AS r WHERE r.pergunta_id = pergunta.id)::int AS total_respostas").
		Order("pergunta.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list perguntas: %w", err)
	}
	return resumos, nil
}

func (r *PerguntaRepository) ListByCertificacao(ctx context.Context, certificacaoID int64) ([]domain.Pergunta, error) {
	perguntas := make([]domain.Pergunta, 0)
	err := r.db.NewSelect().
		Model(&perguntas).
		Relation("Respostas", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("resposta.id ASC")
		}).
		Where("pergunta.certificacao_id = ?", certificacaoID).
		Order("pergunta.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list perguntas by certificacao: %w", err)
	}
	return perguntas, nil
}

func (r *PerguntaRepository) Get(ctx context.Context, id int64) (domain.Pergunta, error) {
	var pergunta domain.Pergunta
	err := r.db.NewSelect().
		Model(&pergunta).
		Relation("Certificacao").
		Relation("Respostas", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("resposta.id ASC")
		}).
		Where("pergunta.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Pergunta{}, domain.ErrPerguntaNotFound
	}
	if err != nil {
		return domain.Pergunta{}, fmt.Errorf("get pergunta: %w", err)
	}
	return pergunta, nil
}

// Create inserts the question and its answers atomically.
func (r *PerguntaRepository) Create(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	now := time.Now()
	pergunta.CreatedAt = now
	pergunta.UpdatedAt = now
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(pergunta).Exec(ctx); err != nil {
			return err
		}
		return insertRespostas(ctx, tx, pergunta.ID, respostas, now)
	})
	if err != nil {
		return fmt.Errorf("create pergunta: %w", err)
	}
	return nil
}

// Update replaces the question fields and swaps the whole answer set:
// delete every existing answer, insert the new ones. Answer ids churn on
// purpose; see PerguntaService.Update.
func (r *PerguntaRepository) Update(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	now := time.Now()
	pergunta.UpdatedAt = now
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(pergunta).
			Column("certificacao_id", "enunciado", "explicacao", "updated_at").
			WherePK().
			Returning("*").
			Exec(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPerguntaNotFound
		}
		if err != nil {
			return err
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return domain.ErrPerguntaNotFound
		}

		if _, err := tx.NewDelete().
			Model((*domain.Resposta)(nil)).
			Where("pergunta_id = ?", pergunta.ID).
			Exec(ctx); err != nil {
			return err
		}
		return insertRespostas(ctx, tx, pergunta.ID, respostas, now)
	})
	if err != nil {
		if errors.Is(err, domain.ErrPerguntaNotFound) {
			return domain.ErrPerguntaNotFound
		}
		return fmt.Errorf("update pergunta: %w", err)
	}
	return nil
}

func insertRespostas(ctx context.Context, tx bun.Tx, perguntaID int64, respostas []domain.Resposta, now time.Time) error {
	if len(respostas) == 0 {
		return nil
	}
	for i := range respostas {
		respostas[i].PerguntaID = perguntaID
		respostas[i].CreatedAt = now
		respostas[i].UpdatedAt = now
	}
	_, err := tx.NewInsert().Model(&respostas).Exec(ctx)
	return err
}

// Delete removes the question; its answers follow via ON DELETE CASCADE.
func (r *PerguntaRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.Pergunta)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete pergunta: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrPerguntaNotFound
	}
	return nil
}
