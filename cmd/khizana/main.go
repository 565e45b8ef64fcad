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
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/khizana-app/khizana/internal/config"
	"github.com/khizana-app/khizana/internal/db"
	"github.com/khizana-app/khizana/internal/event"
	"github.com/khizana-app/khizana/internal/filestore"
	"github.com/khizana-app/khizana/internal/handler"
	appJob "github.com/khizana-app/khizana/internal/job"
	"github.com/khizana-app/khizana/internal/middleware"
	"github.com/khizana-app/khizana/internal/ocr"
	"github.com/khizana-app/khizana/internal/pdf"
	"github.com/khizana-app/khizana/internal/repo"
	"github.com/khizana-app/khizana/internal/schedule"
	"github.com/khizana-app/khizana/internal/service"
	"github.com/khizana-app/khizana/internal/speech"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "khizana",
		Short: "khizana library backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run khizana server",
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

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	docRepo := repo.NewDocumentRepo(conn)
	pageRepo := repo.NewPageRepo(conn)
	jobRepo := repo.NewAcquisitionJobRepo(conn)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	bus := event.NewBus()
	documentService := service.NewDocumentService(docRepo, pageRepo, bus)

	recognizer := ocr.NewTesseractRecognizer(cfg.OCR.TessdataDir)
	engine := ocr.NewEngine(recognizer)

	geminiProvider, err := speech.NewProvider(speech.MethodGemini, cfg.Speech.Gemini)
	if err != nil {
		return fmt.Errorf("init gemini provider: %w", err)
	}
	whisperProvider, err := speech.NewProvider(speech.MethodWhisper, cfg.Speech.Whisper)
	if err != nil {
		return fmt.Errorf("init whisper provider: %w", err)
	}
	localProvider, err := speech.NewProvider(speech.MethodLocal, cfg.Speech.Local)
	if err != nil {
		return fmt.Errorf("init local provider: %w", err)
	}
	orchestrator := speech.NewOrchestrator(localProvider, geminiProvider, whisperProvider)

	acquisitionService := service.NewAcquisitionService(
		docRepo,
		pageRepo,
		jobRepo,
		pdf.Open,
		engine,
		orchestrator,
		service.NewStoreSourceLoader(store),
		bus,
		cfg.Acquisition.SamplePages,
		cfg.Acquisition.JobQueueSize,
	)

	deps := handler.RouterDeps{
		Documents:   handler.NewDocumentHandler(documentService),
		Acquisition: handler.NewAcquisitionHandler(acquisitionService),
		Jobs:        handler.NewJobHandler(jobRepo),
		Files:       handler.NewFileHandler(store, documentService),
	}

	engineWeb, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerWG := acquisitionService.StartWorker(ctx)

	scheduler := schedule.NewCronScheduler()
	cleanup := appJob.NewAcquisitionCleanupJob(jobRepo, time.Duration(cfg.Acquisition.JobRetentionHours)*time.Hour)
	if err := scheduler.AddJob(cleanup, cfg.Acquisition.CleanupSpec); err != nil {
		return err
	}
	scheduler.Start(ctx)

	go func() {
		if err := engineWeb.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	scheduler.Stop()
	workerWG.Wait()
	return nil
}
