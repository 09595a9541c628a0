// Command pilotchat serves the ATC utterance interpretation pipeline:
// it loads the airline callsign registry, wires the parser and readback
// renderer, and exposes them over HTTP together with the persisted
// command log and the optional ASR upload endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/airline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/api"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/config"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/parser"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/pipeline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/storage/sqlite"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/transcription"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pilotchat: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	// The registry loads once at startup and is shared read-only by
	// every concurrently processed utterance.
	registry, err := airline.LoadCSV(cfg.Registry.CSVPath, log)
	if err != nil {
		return fmt.Errorf("failed to load airline registry: %w", err)
	}

	var commandStorage *sqlite.CommandStorage
	var commandLog pipeline.CommandLog
	if cfg.Storage.Enabled {
		db, err := sqlite.Open(cfg.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open command database: %w", err)
		}
		defer db.Close()

		commandStorage, err = sqlite.NewCommandStorage(db, log)
		if err != nil {
			return err
		}
		commandLog = commandStorage
	}

	resolver := airline.NewResolver(registry, cfg.Registry.AcceptanceThreshold, log)
	cmdParser := parser.New(resolver, log)
	pl := pipeline.New(cmdParser, commandLog, log)

	var transcriber transcription.Transcriber
	if cfg.Transcription.Enabled {
		transcriber = transcription.NewOpenAIClient(cfg.Transcription, log)
	}

	router := api.NewRouter(pl, commandStorage, registry, transcriber, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			logger.String("addr", addr),
			logger.Int("operators", registry.Len()),
			logger.Bool("storage", cfg.Storage.Enabled),
			logger.Bool("transcription", cfg.Transcription.Enabled))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
