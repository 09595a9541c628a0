package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/airline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/audio"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/config"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/parser"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/pipeline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/storage/sqlite"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/transcription"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

const defaultQueryLimit = 50

// Handler handles API requests.
type Handler struct {
	pipeline    *pipeline.Pipeline
	storage     *sqlite.CommandStorage // nil when persistence is disabled
	registry    *airline.Registry
	transcriber transcription.Transcriber // nil when transcription is disabled
	config      *config.Config
	logger      *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	pl *pipeline.Pipeline,
	storage *sqlite.CommandStorage,
	registry *airline.Registry,
	transcriber transcription.Transcriber,
	cfg *config.Config,
	log *logger.Logger,
) *Handler {
	return &Handler{
		pipeline:    pl,
		storage:     storage,
		registry:    registry,
		transcriber: transcriber,
		config:      cfg,
		logger:      log.Named("api-handler"),
	}
}

// ProcessUtterance interprets a transcribed utterance and returns the
// structured command with its pilot readback.
func (h *Handler) ProcessUtterance(w http.ResponseWriter, r *http.Request) {
	var req UtteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.pipeline.Process(req.Text)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyUtterance) {
			h.respondError(w, http.StatusBadRequest, "utterance text is empty")
			return
		}
		h.logger.Error("Failed to process utterance", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to process utterance")
		return
	}

	h.respondJSON(w, http.StatusOK, UtteranceResponse{
		Timestamp: time.Now().UTC(),
		Result:    result,
	})
}

// TranscribeAudio accepts a recorded WAV utterance, transcribes it via
// the ASR collaborator, and runs the interpretation pipeline on the
// transcript.
func (h *Handler) TranscribeAudio(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		h.respondError(w, http.StatusServiceUnavailable, "transcription is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.Server.MaxUploadBytes)
	file, header, err := r.FormFile("audio")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing audio file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to read audio upload")
		return
	}

	info, err := audio.ProbeWAV(bytes.NewReader(data))
	if err != nil {
		h.respondError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	h.logger.Debug("Received audio upload",
		logger.String("filename", header.Filename),
		logger.Int("sample_rate", info.SampleRate),
		logger.Int("channels", info.Channels),
		logger.Duration("duration", info.Duration))

	transcript, err := h.transcriber.Transcribe(r.Context(), bytes.NewReader(data), header.Filename)
	if err != nil {
		h.logger.Error("Transcription failed", logger.Error(err))
		h.respondError(w, http.StatusBadGateway, "transcription failed")
		return
	}

	result, err := h.pipeline.Process(transcript)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyUtterance) {
			h.respondError(w, http.StatusUnprocessableEntity, "transcription produced no text")
			return
		}
		h.logger.Error("Failed to process transcript", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to process transcript")
		return
	}

	h.respondJSON(w, http.StatusOK, TranscribeResponse{
		Timestamp:  time.Now().UTC(),
		Transcript: transcript,
		Result:     result,
	})
}

// GetRecentCommands returns the most recently interpreted commands.
func (h *Handler) GetRecentCommands(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		h.respondError(w, http.StatusServiceUnavailable, "command log is not configured")
		return
	}

	records, err := h.storage.GetRecentCommands(queryLimit(r))
	if err != nil {
		h.logger.Error("Failed to query commands", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to query commands")
		return
	}

	h.respondJSON(w, http.StatusOK, CommandsResponse{
		Timestamp: time.Now().UTC(),
		Count:     len(records),
		Commands:  records,
	})
}

// GetCommandsByCallsign returns interpreted commands for one operator
// callsign.
func (h *Handler) GetCommandsByCallsign(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		h.respondError(w, http.StatusServiceUnavailable, "command log is not configured")
		return
	}

	callsign := chi.URLParam(r, "callsign")
	records, err := h.storage.GetCommandsByCallsign(callsign, queryLimit(r))
	if err != nil {
		h.logger.Error("Failed to query commands by callsign", logger.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to query commands")
		return
	}

	h.respondJSON(w, http.StatusOK, CommandsResponse{
		Timestamp: time.Now().UTC(),
		Count:     len(records),
		Commands:  records,
	})
}

// GetAllAirlines returns the loaded callsign registry.
func (h *Handler) GetAllAirlines(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, AirlinesResponse{
		Timestamp: time.Now().UTC(),
		Count:     h.registry.Len(),
		Airlines:  h.registry.Entries(),
	})
}

// GetHealth returns the service health status.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"operators": h.registry.Len(),
	})
}

// GetConfig returns the non-secret configuration.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	// The API key never leaves the process.
	cfg := *h.config
	cfg.Transcription.OpenAIAPIKey = ""
	h.respondJSON(w, http.StatusOK, cfg)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, ErrorResponse{Error: msg})
}

func queryLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			return n
		}
	}
	return defaultQueryLimit
}
