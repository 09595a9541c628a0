// Package readback renders parsed ATC commands into canonical pilot
// readback phraseology for voice synthesis.
package readback

import (
	"strconv"
	"strings"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
)

// UnknownTraffic is the fallback identity used when the callsign could
// not be resolved. It keeps the failed resolution audible in the output
// instead of silently substituting a wrong identity.
const UnknownTraffic = "unknown traffic"

var digitWords = [10]string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "niner",
}

// Render produces the pilot readback for a parsed command. It is total
// and deterministic: every representable command renders to some
// string, and a command with no instructions renders to a callsign-only
// acknowledgment. Fields are emitted in fixed ICAO order: callsign,
// turn, vertical, speed, QNH, clearance.
func Render(cmd command.ParsedCommand) string {
	parts := []string{spokenIdentity(cmd.Identifier)}

	if t := cmd.Turn; t != nil {
		parts = append(parts, "turn "+string(t.Direction)+" heading "+spokenHeading(t.Heading))
	}
	if v := cmd.Vertical; v != nil {
		parts = append(parts, spokenVertical(*v))
	}
	if s := cmd.Speed; s != nil {
		parts = append(parts, spokenSpeed(*s))
	}
	if cmd.QNH != nil {
		parts = append(parts, "QNH "+spokenDigits(strconv.Itoa(*cmd.QNH)))
	}
	if c := cmd.Clearance; c != nil {
		parts = append(parts, spokenClearance(*c))
	}

	return strings.Join(parts, ", ")
}

// spokenIdentity speaks the operator callsign and flight number, or the
// fallback phrase when resolution failed.
func spokenIdentity(id command.FlightIdentifier) string {
	if !id.Matched {
		return UnknownTraffic
	}
	s := strings.ToLower(id.Callsign)
	if id.FlightNumber != "" {
		s += " " + spokenDigits(id.FlightNumber)
	}
	return s
}

func spokenVertical(v command.Vertical) string {
	var verb string
	switch v.Movement {
	case command.Climb:
		verb = "climbing"
	case command.Descend:
		verb = "descending"
	default:
		verb = "maintaining"
	}

	if v.Target.Kind == command.FlightLevel {
		return verb + " to flight level " + spokenDigits(strconv.Itoa(v.Target.Value))
	}
	return verb + " to " + spokenFeet(v.Target.Value) + " feet"
}

func spokenSpeed(s command.Speed) string {
	var verb string
	switch s.Movement {
	case command.ReduceSpeed:
		verb = "reducing"
	case command.IncreaseSpeed:
		verb = "increasing"
	default:
		verb = "maintaining"
	}
	return verb + " speed to " + spokenDigits(strconv.Itoa(s.Knots)) + " knots"
}

func spokenClearance(c command.Clearance) string {
	if c.Kind == command.ClearanceDirect {
		return "cleared direct " + strings.ToLower(c.Target)
	}
	return "cleared approach runway " + spokenRunway(c.Target)
}

// spokenDigits speaks a digit string one digit at a time, preserving
// leading zeros ("040" -> "zero four zero").
func spokenDigits(s string) string {
	words := make([]string, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			words = append(words, digitWords[r-'0'])
		}
	}
	return strings.Join(words, " ")
}

// spokenHeading speaks a heading as three digits with leading zeros, as
// headings are always transmitted.
func spokenHeading(h int) string {
	s := strconv.Itoa(h)
	for len(s) < 3 {
		s = "0" + s
	}
	return spokenDigits(s)
}

// spokenFeet speaks a feet altitude grouped in thousands and hundreds
// ("4000" -> "four thousand", "4500" -> "four thousand five hundred").
// The parser guarantees altitudes are round hundreds.
func spokenFeet(feet int) string {
	thousands := feet / 1000
	hundreds := (feet % 1000) / 100

	var parts []string
	if thousands > 0 {
		parts = append(parts, spokenDigits(strconv.Itoa(thousands))+" thousand")
	}
	if hundreds > 0 {
		parts = append(parts, digitWords[hundreds]+" hundred")
	}
	if len(parts) == 0 {
		return "zero"
	}
	return strings.Join(parts, " ")
}

// spokenRunway speaks a runway designator digit by digit with the side
// qualifier spelled out ("22L" -> "two two left").
func spokenRunway(designator string) string {
	var words []string
	for _, r := range strings.ToUpper(designator) {
		switch {
		case r >= '0' && r <= '9':
			words = append(words, digitWords[r-'0'])
		case r == 'L':
			words = append(words, "left")
		case r == 'R':
			words = append(words, "right")
		case r == 'C':
			words = append(words, "center")
		}
	}
	return strings.Join(words, " ")
}
