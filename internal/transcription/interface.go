package transcription

import (
	"context"
	"io"
)

// Transcriber converts recorded audio into an utterance transcript. The
// acoustic model is an opaque external collaborator; no interpretation
// logic lives behind this interface.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Ensure the OpenAI client implements the interface.
var _ Transcriber = (*OpenAIClient)(nil)
