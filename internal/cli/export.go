package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"certbank-service/internal/config"
	"certbank-service/internal/domain"
	"certbank-service/internal/infra/postgres"
	"certbank-service/internal/jsonl"
	"github.com/spf13/cobra"
)

// NewExportCmd builds a JSONL file for one certification from the database.
// The admin UI builds the same content in the browser before posting it; this
// command produces it server-side for scripted fine-tuning runs.
func NewExportCmd(configPath *string) *cobra.Command {
	var (
		certificacaoID int64
		output         string
		save           bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a JSONL export for a certification",
		RunE: func(cmd *cobra.Command, args []string) error {
			if certificacaoID == 0 {
				return fmt.Errorf("--certificacao is required")
			}
			return runExport(cmd.Context(), *configPath, certificacaoID, output, save)
		},
	}

	cmd.Flags().Int64Var(&certificacaoID, "certificacao", 0, "certification id to export")
	cmd.Flags().StringVar(&output, "output", jsonl.DefaultFilename, "file to write the JSONL to (empty to skip)")
	cmd.Flags().BoolVar(&save, "save", false, "also persist the export as a jsonl_files row")
	return cmd
}

func runExport(ctx context.Context, configPath string, certificacaoID int64, output string, save bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	db := postgres.Open(cfg.Postgres.URL)
	defer db.Close()

	certRepo := postgres.NewCertificacaoRepository(db)
	if _, err := certRepo.Get(ctx, certificacaoID); err != nil {
		return err
	}

	perguntas, err := postgres.NewPerguntaRepository(db).ListByCertificacao(ctx, certificacaoID)
	if err != nil {
		return err
	}
	content, err := jsonl.Build(perguntas)
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(content+"\n"), 0o644); err != nil {
			return err
		}
		log.Printf("wrote %d perguntas to %s", len(perguntas), output)
	}

	if save {
		filename := output
		if filename == "" {
			filename = jsonl.DefaultFilename
		}
		file := domain.JsonlFile{
			CertificacaoID: certificacaoID,
			Content:        content,
			Filename:       filename,
		}
		if err := postgres.NewJsonlRepository(db).Create(ctx, &file); err != nil {
			return err
		}
		log.Printf("saved jsonl_files row %d", file.ID)
	}
	return nil
}
