package api

import (
	"time"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/airline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/pipeline"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/storage/sqlite"
)

// UtteranceRequest is the body of POST /utterances.
type UtteranceRequest struct {
	Text string `json:"text"`
}

// UtteranceResponse wraps a pipeline result with its processing time.
type UtteranceResponse struct {
	Timestamp time.Time `json:"timestamp"`
	*pipeline.Result
}

// TranscribeResponse is the result of transcribing and interpreting an
// uploaded recording.
type TranscribeResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	Transcript string    `json:"transcript"`
	*pipeline.Result
}

// CommandsResponse is the API response for command log queries.
type CommandsResponse struct {
	Timestamp time.Time               `json:"timestamp"`
	Count     int                     `json:"count"`
	Commands  []*sqlite.CommandRecord `json:"commands"`
}

// AirlinesResponse is the API response for the registry dump.
type AirlinesResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Count     int             `json:"count"`
	Airlines  []airline.Entry `json:"airlines"`
}

// ErrorResponse is the API error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
