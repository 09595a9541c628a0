package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/airline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/config"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/pipeline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/storage/sqlite"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/transcription"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(
	pl *pipeline.Pipeline,
	storage *sqlite.CommandStorage,
	registry *airline.Registry,
	transcriber transcription.Transcriber,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		handler:    NewHandler(pl, storage, registry, transcriber, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Utterance interpretation
		router.Post("/utterances", r.handler.ProcessUtterance)
		router.Post("/transcribe", r.handler.TranscribeAudio)

		// Command log
		router.Get("/commands", r.handler.GetRecentCommands)
		router.Get("/commands/callsign/{callsign}", r.handler.GetCommandsByCallsign)

		// Callsign registry
		router.Get("/airlines", r.handler.GetAllAirlines)

		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Configuration
		router.Get("/config", r.handler.GetConfig)
	})

	return router
}
