package parser

import (
	"errors"
	"fmt"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
)

// ErrEmptyUtterance is returned for input that contains no usable text
// at all. It is the only hard failure the parser produces; every other
// malformed input degrades to a partially (or entirely) empty command.
var ErrEmptyUtterance = errors.New("empty utterance")

// Diagnostic records an instruction clause that was recognized by its
// trigger keyword but dropped because its argument was missing or out
// of range. Dropped clauses are not errors; the trace exists so that
// tests and debugging can observe the silent-degradation policy.
type Diagnostic struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Category, d.Reason)
}

// CallsignResolver resolves the callsign window of an utterance into a
// flight identifier. Resolution never fails; an unknown aircraft comes
// back with Matched=false.
type CallsignResolver interface {
	Resolve(tokens []string) command.FlightIdentifier
}
