package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/briefly-ai/briefly/internal/analyze"
	"github.com/briefly-ai/briefly/internal/backend"
	"github.com/briefly-ai/briefly/internal/config"
	"github.com/briefly-ai/briefly/internal/extract"
	"github.com/briefly-ai/briefly/internal/filestore"
	"github.com/briefly-ai/briefly/internal/handler"
	"github.com/briefly-ai/briefly/internal/job"
	"github.com/briefly-ai/briefly/internal/middleware"
	"github.com/briefly-ai/briefly/internal/model"
	"github.com/briefly-ai/briefly/internal/repo"
	"github.com/briefly-ai/briefly/internal/schedule"
	"github.com/briefly-ai/briefly/internal/service"
	"github.com/briefly-ai/briefly/internal/summarize"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "briefly",
		Short: "briefly summarization server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run briefly server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("backends", len(cfg.Backends)),
		zap.String("file_store", cfg.FileStore.Type),
	)

	provider, err := buildProvider(cfg.Backends)
	if err != nil {
		return err
	}

	driver := summarize.NewDriver(provider, summarize.DriverConfig{
		MaxDepth:            cfg.Pipeline.MaxDepth,
		CompressionTarget:   cfg.Pipeline.CompressionTarget,
		CompressionAttempts: cfg.Pipeline.CompressionAttempts,
		CallRetries:         cfg.Pipeline.CallRetries,
		MaxConcurrency:      cfg.Pipeline.MaxConcurrency,
		CallTimeoutSeconds:  cfg.Pipeline.CallTimeoutSeconds,
		Chunker: summarize.ChunkerConfig{
			ChunkSize: cfg.Pipeline.ChunkSize,
			Overlap:   cfg.Pipeline.ChunkOverlap,
		},
	})
	cache := expirable.NewLRU[string, model.SummaryResult](
		cfg.Pipeline.CacheSize,
		nil,
		time.Duration(cfg.Pipeline.CacheTTLMinutes)*time.Minute,
	)
	pipeline := summarize.NewPipeline(driver, cache)

	fetcher := extract.NewFetcher(extract.FetcherConfig{
		Timeout:      time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
		UserAgent:    cfg.Fetch.UserAgent,
	})

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	historyRepo := repo.NewHistoryRepo(db)
	svc := service.NewSummaryService(
		pipeline,
		fetcher,
		analyze.NewAnalyzer(),
		historyRepo,
		store,
		cfg.Pipeline.MaxInputChars,
	)

	deps := handler.RouterDeps{
		Summaries:       handler.NewSummaryHandler(svc, cfg.MaxUploadBytes),
		History:         handler.NewHistoryHandler(svc),
		Files:           handler.NewFileHandler(svc),
		SummarizeWindow: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewHistoryCleanupJob(svc, cfg.Retention.HistoryDays), "0 3 * * *"); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func buildProvider(configs []config.BackendConfig) (backend.Provider, error) {
	entries := make([]backend.ProviderEntry, 0, len(configs))
	for i, bc := range configs {
		provider, err := backend.NewProvider(bc.Provider, bc.Args)
		if err != nil {
			return nil, fmt.Errorf("init backend %d (%s): %w", i, bc.Provider, err)
		}
		entries = append(entries, backend.ProviderEntry{
			Name:     bc.Provider,
			Provider: provider,
			ModelID:  bc.ModelID,
		})
	}
	group := backend.NewGroupProvider(entries)
	if group == nil {
		return nil, fmt.Errorf("no backend provider configured")
	}
	return group, nil
}
