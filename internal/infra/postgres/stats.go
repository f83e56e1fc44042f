package postgres

import (
	"context"
	"fmt"

	"certbank-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// StatsProvider answers the dashboard count queries over a raw pgx pool.
type StatsProvider struct {
	pool *pgxpool.Pool
}

func NewStatsProvider(pool *pgxpool.Pool) *StatsProvider {
	return &StatsProvider{pool: pool}
}

func (p *StatsProvider) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := p.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM certificacoes),
			(SELECT count(*) FROM perguntas),
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM jsonl_files)
	`).Scan(&stats.Certificacoes, &stats.Perguntas, &stats.Usuarios, &stats.JsonlFiles)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return stats, nil
}
