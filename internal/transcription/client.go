package transcription

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

const defaultTimeoutSeconds = 30

// OpenAIClient transcribes recorded utterances via the OpenAI audio
// transcription API.
type OpenAIClient struct {
	client  openai.Client
	config  Config
	timeout time.Duration
	logger  *logger.Logger
}

// NewOpenAIClient creates a new transcription client.
func NewOpenAIClient(config Config, log *logger.Logger) *OpenAIClient {
	if config.OpenAIAPIKey == "" {
		log.Warn("OpenAI API key is empty - transcription will not work")
	}
	if config.Model == "" {
		config.Model = string(openai.AudioModelWhisper1)
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}

	return &OpenAIClient{
		client:  openai.NewClient(option.WithAPIKey(config.OpenAIAPIKey)),
		config:  config,
		timeout: timeout,
		logger:  log.Named("transcription"),
	}
}

// Transcribe sends one complete recorded utterance to the API and
// returns the transcript text.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if c.config.OpenAIAPIKey == "" {
		return "", fmt.Errorf("OpenAI API key is required for transcription")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.config.Model),
		File:  openai.File(audio, filename, "audio/wav"),
	}
	if c.config.Language != "" {
		params.Language = openai.String(c.config.Language)
	}
	if c.config.Prompt != "" {
		params.Prompt = openai.String(c.config.Prompt)
	}

	resp, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	c.logger.Info("Transcribed utterance",
		logger.String("file", filename),
		logger.String("text", text),
		logger.Duration("elapsed", time.Since(start)))

	return text, nil
}
