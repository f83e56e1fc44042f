package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
)

//go:embed 0001_create_core_tables.sql
var createCoreTablesSQL string

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createCoreTablesSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TABLE IF EXISTS usuarios_certificacoes;
				DROP TABLE IF EXISTS respostas;
				DROP TABLE IF EXISTS perguntas;
				DROP TABLE IF EXISTS certificacoes;
				DROP TABLE IF EXISTS users;
			`)
			return err
		},
	)
}
