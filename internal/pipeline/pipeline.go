// Package pipeline sequences the command interpretation stages for one
// utterance: parse, render, persist. It owns each ParsedCommand for the
// duration of its utterance and exposes the record to collaborators.
package pipeline

import (
	"fmt"
	"time"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/parser"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/readback"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

// CommandLog persists interpreted commands. Persistence failures never
// block the voice pipeline; they are logged and dropped.
type CommandLog interface {
	Append(cmd command.ParsedCommand, readbackText string) error
}

// Result is the outcome of processing one utterance.
type Result struct {
	Command     command.ParsedCommand `json:"command"`
	Readback    string                `json:"readback"`
	Diagnostics []parser.Diagnostic   `json:"diagnostics,omitempty"`
}

// Pipeline runs parse -> render for each utterance and hands the record
// to the command log.
type Pipeline struct {
	parser     *parser.Parser
	commandLog CommandLog // may be nil when persistence is disabled
	logger     *logger.Logger
}

// New creates a pipeline. commandLog may be nil to disable persistence.
func New(p *parser.Parser, commandLog CommandLog, log *logger.Logger) *Pipeline {
	return &Pipeline{
		parser:     p,
		commandLog: commandLog,
		logger:     log.Named("pipeline"),
	}
}

// Process interprets one transcribed utterance and returns the
// structured command with its rendered readback. The only error is the
// parser's empty-input failure; every other degradation (unresolved
// callsign, dropped clauses) is carried in the result itself.
func (p *Pipeline) Process(text string) (*Result, error) {
	start := time.Now()

	cmd, diags, err := p.parser.ParseWithTrace(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse utterance: %w", err)
	}

	spoken := readback.Render(cmd)

	if p.commandLog != nil {
		if err := p.commandLog.Append(cmd, spoken); err != nil {
			p.logger.Error("Failed to persist command", logger.Error(err))
		}
	}

	p.logger.Info("Processed utterance",
		logger.String("callsign", cmd.Identifier.Callsign),
		logger.String("flight_number", cmd.Identifier.FlightNumber),
		logger.Bool("matched", cmd.Identifier.Matched),
		logger.Float64("confidence", cmd.Identifier.Confidence),
		logger.Int("dropped_clauses", len(diags)),
		logger.Duration("elapsed", time.Since(start)))

	return &Result{
		Command:     cmd,
		Readback:    spoken,
		Diagnostics: diags,
	}, nil
}
