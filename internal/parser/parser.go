package parser

import (
	"strings"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

// Parser extracts structured commands from transcribed ATC utterances.
// Parsing is a pure function of the utterance text and the registry
// behind the resolver: no I/O, no shared mutable state, deterministic.
type Parser struct {
	resolver CallsignResolver
	matchers []clauseMatcher
	logger   *logger.Logger
}

// New creates a parser using the given callsign resolver.
func New(resolver CallsignResolver, log *logger.Logger) *Parser {
	return &Parser{
		resolver: resolver,
		matchers: defaultMatchers(),
		logger:   log.Named("command-parser"),
	}
}

// Parse interprets one utterance into a structured command. Malformed
// or partial input never fails: unrecognized clauses are simply absent
// from the result and an unresolvable callsign comes back with
// Matched=false. The only error is ErrEmptyUtterance for blank input.
func (p *Parser) Parse(text string) (command.ParsedCommand, error) {
	cmd, _, err := p.ParseWithTrace(text)
	return cmd, err
}

// ParseWithTrace is Parse plus the diagnostic trace of clauses that
// were recognized but dropped during validation.
func (p *Parser) ParseWithTrace(text string) (command.ParsedCommand, []Diagnostic, error) {
	if strings.TrimSpace(text) == "" {
		return command.ParsedCommand{}, nil, ErrEmptyUtterance
	}

	toks := Normalize(text)
	if len(toks) == 0 {
		return command.ParsedCommand{}, nil, ErrEmptyUtterance
	}

	cmd := command.ParsedCommand{
		Utterance: strings.TrimSpace(text),
	}

	// The callsign window runs from the start of the utterance to the
	// first instruction keyword. The resolver is called exactly once,
	// and instruction parsing proceeds whether or not it matched.
	cmd.Identifier = p.resolver.Resolve(toks[:callsignWindowEnd(toks)])

	var diags []Diagnostic
	for _, m := range p.matchers {
		diags = append(diags, m.match(toks, &cmd)...)
	}

	for _, d := range diags {
		p.logger.Debug("Dropped instruction clause",
			logger.String("category", d.Category),
			logger.String("reason", d.Reason))
	}

	return cmd, diags, nil
}

// callsignWindowEnd returns the index of the first instruction keyword,
// or len(toks) if the utterance contains none.
func callsignWindowEnd(toks []string) int {
	for i, tok := range toks {
		if instructionKeywords[tok] {
			return i
		}
	}
	return len(toks)
}
