package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"certbank-service/internal/app"
	"certbank-service/internal/config"
	"certbank-service/internal/infra/memory"
	"certbank-service/internal/infra/postgres"
	redisinfra "certbank-service/internal/infra/redis"
	transport "certbank-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the question-bank admin server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	services, cleanup, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	router := transport.NewRouter(services, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting certbank service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildServices wires repositories and services from config. Without a
// Postgres URL everything runs on the in-memory store; without Redis the
// export cache is in-memory too.
func buildServices(ctx context.Context, cfg config.Config) (transport.Services, func(), error) {
	cacheTTL := config.TTLDuration(cfg.Exports.CacheTTL, 10*time.Minute)
	cleanup := func() {}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	if cfg.Postgres.URL == "" {
		log.Printf("postgres not configured, using in-memory store")
		store := memory.NewStore()
		jsonlRepo := memory.NewJsonlRepository(store)
		var cache app.ExportCache
		if redisClient != nil {
			cache = redisinfra.NewExportCache(redisClient, jsonlRepo, cacheTTL)
		} else {
			cache = memory.NewExportCache(jsonlRepo, cacheTTL)
		}
		return transport.Services{
			Certificacoes: app.NewCertificacaoService(memory.NewCertificacaoRepository(store)),
			Perguntas:     app.NewPerguntaService(memory.NewPerguntaRepository(store)),
			Usuarios:      app.NewUsuarioService(memory.NewUsuarioRepository(store), cfg.Users.UniqueLinks),
			Exports:       app.NewExportService(jsonlRepo, cache),
			Stats:         store,
		}, cleanup, nil
	}

	db := postgres.Open(cfg.Postgres.URL)

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		db.Close()
		return transport.Services{}, nil, err
	}
	cleanup = func() {
		pool.Close()
		db.Close()
	}

	jsonlRepo := postgres.NewJsonlRepository(db)
	var cache app.ExportCache
	if redisClient != nil {
		cache = redisinfra.NewExportCache(redisClient, jsonlRepo, cacheTTL)
	} else {
		cache = memory.NewExportCache(jsonlRepo, cacheTTL)
	}

	return transport.Services{
		Certificacoes: app.NewCertificacaoService(postgres.NewCertificacaoRepository(db)),
		Perguntas:     app.NewPerguntaService(postgres.NewPerguntaRepository(db)),
		Usuarios:      app.NewUsuarioService(postgres.NewUsuarioRepository(db), cfg.Users.UniqueLinks),
		Exports:       app.NewExportService(jsonlRepo, cache),
		Stats:         postgres.NewStatsProvider(pool),
	}, cleanup, nil
}
