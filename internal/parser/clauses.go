package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
)

// clauseMatcher recognizes one instruction category in the token
// stream and, when its grammar is satisfied, fills the corresponding
// field of the command. Matchers are independent of each other and of
// clause order in the utterance; a recognized trigger whose argument
// fails validation yields a Diagnostic and leaves the field empty.
type clauseMatcher interface {
	category() string
	match(toks []string, cmd *command.ParsedCommand) []Diagnostic
}

// defaultMatchers returns the full matcher set in the fixed readback
// order. Matching itself is order-insensitive; the order here only
// determines trace ordering.
func defaultMatchers() []clauseMatcher {
	return []clauseMatcher{
		turnClause{},
		verticalClause{},
		speedClause{},
		qnhClause{},
		clearanceClause{},
	}
}

// instructionKeywords are the tokens that can open an instruction
// clause. The callsign window ends at the first of these.
var instructionKeywords = map[string]bool{
	"turn": true, "heading": true, "fly": true,
	"climb": true, "climbing": true,
	"descend": true, "descending": true, "descent": true, "decent": true, "decend": true,
	"maintain": true, "maintaining": true,
	"reduce": true, "reducing": true, "increase": true, "increasing": true, "speed": true,
	"qnh": true, "altimeter": true,
	"cleared": true, "expect": true, "contact": true,
}

///////////////////////////////////////////////////////////////////////
// turn / heading

type turnClause struct{}

func (turnClause) category() string { return "turn" }

func (c turnClause) match(toks []string, cmd *command.ParsedCommand) []Diagnostic {
	ti := findToken(toks, "turn")
	hi := findToken(toks, "heading")
	if ti < 0 && hi < 0 {
		return nil
	}

	var direction command.TurnDirection
	if ti >= 0 {
		for _, tok := range window(toks, ti+1, 2) {
			switch tok {
			case "left":
				direction = command.TurnLeft
			case "right":
				direction = command.TurnRight
			}
		}
	}
	if direction == "" {
		return c.drop("turn direction missing")
	}

	if hi < 0 {
		return c.drop("heading keyword missing")
	}
	raw, ok := firstNumber(toks, hi+1, 2)
	if !ok {
		return c.drop("heading value missing")
	}
	heading, _ := strconv.Atoi(raw)
	if len(raw) > 3 || heading < 0 || heading > 360 {
		return c.drop(fmt.Sprintf("heading %s outside 0-360", raw))
	}

	cmd.Turn = &command.Turn{Direction: direction, Heading: heading}
	return nil
}

func (c turnClause) drop(reason string) []Diagnostic {
	return []Diagnostic{{Category: c.category(), Reason: reason}}
}

///////////////////////////////////////////////////////////////////////
// vertical movement

type verticalClause struct{}

func (verticalClause) category() string { return "vertical" }

func (c verticalClause) match(toks []string, cmd *command.ParsedCommand) []Diagnostic {
	movement, mi := verticalMovement(toks)
	if movement == "" {
		return nil
	}

	target, diag := altitudeTarget(toks[mi+1:])
	if diag != "" {
		return []Diagnostic{{Category: c.category(), Reason: diag}}
	}
	if target == nil {
		if movement == command.Maintain {
			// "maintain" without an altitude belongs to the speed
			// matcher ("maintain 250 knots"), not to this one.
			return nil
		}
		return []Diagnostic{{Category: c.category(), Reason: "altitude target missing"}}
	}

	cmd.Vertical = &command.Vertical{Movement: movement, Target: *target}
	return nil
}

// verticalMovement finds the first vertical movement verb, tolerating
// the verb forms and misspellings the ASR produces for "descend".
func verticalMovement(toks []string) (command.VerticalMovement, int) {
	for i, tok := range toks {
		switch tok {
		case "climb", "climbing":
			return command.Climb, i
		case "descend", "descending", "descent", "decent", "decend":
			return command.Descend, i
		case "maintain", "maintaining":
			return command.Maintain, i
		}
	}
	return "", -1
}

// altitudeTarget parses the altitude following a movement verb. The
// flight-level vs feet distinction is preserved, never converted. A
// recognized but invalid altitude returns a non-empty drop reason.
func altitudeTarget(toks []string) (*command.Altitude, string) {
	// "flight level 280" or the ASR's compact "fl 280".
	for i, tok := range toks {
		var raw string
		var ok bool
		if tok == "flight" && i+1 < len(toks) && toks[i+1] == "level" {
			raw, ok = firstNumber(toks, i+2, 1)
		} else if tok == "fl" {
			raw, ok = firstNumber(toks, i+1, 1)
		} else {
			continue
		}
		if !ok {
			return nil, "flight level value missing"
		}
		fl, _ := strconv.Atoi(raw)
		if len(raw) < 2 || len(raw) > 3 {
			return nil, fmt.Sprintf("flight level %s is not a two or three digit value", raw)
		}
		return &command.Altitude{Kind: command.FlightLevel, Value: fl}, ""
	}

	// "<value> feet".
	for i, tok := range toks {
		if tok != "feet" && tok != "ft" {
			continue
		}
		if i == 0 || !isNumeric(toks[i-1]) {
			return nil, "feet value missing"
		}
		feet, _ := strconv.Atoi(toks[i-1])
		if feet < 100 || feet > 45000 || feet%100 != 0 {
			return nil, fmt.Sprintf("altitude %d feet out of range", feet)
		}
		return &command.Altitude{Kind: command.FeetAltitude, Value: feet}, ""
	}

	return nil, ""
}

///////////////////////////////////////////////////////////////////////
// speed

type speedClause struct{}

func (speedClause) category() string { return "speed" }

func (c speedClause) match(toks []string, cmd *command.ParsedCommand) []Diagnostic {
	si := findToken(toks, "speed")
	ki := findToken(toks, "knots", "kts", "knot")

	var movement command.SpeedMovement
	switch {
	case findToken(toks, "reduce", "reducing") >= 0:
		movement = command.ReduceSpeed
	case findToken(toks, "increase", "increasing") >= 0:
		movement = command.IncreaseSpeed
	case findToken(toks, "maintain", "maintaining") >= 0 && (si >= 0 || ki >= 0):
		movement = command.MaintainSpeed
	}

	if movement == "" {
		if si < 0 {
			return nil
		}
		return []Diagnostic{{Category: c.category(), Reason: "speed movement missing"}}
	}

	var raw string
	var ok bool
	if si >= 0 {
		raw, ok = firstNumber(toks, si+1, 2)
	}
	if !ok && ki > 0 && isNumeric(toks[ki-1]) {
		raw, ok = toks[ki-1], true
	}
	if !ok {
		return []Diagnostic{{Category: c.category(), Reason: "speed value missing"}}
	}

	knots, _ := strconv.Atoi(raw)
	if knots <= 0 || len(raw) > 3 {
		return []Diagnostic{{Category: c.category(), Reason: fmt.Sprintf("speed %s is not a positive knot value", raw)}}
	}

	cmd.Speed = &command.Speed{Movement: movement, Knots: knots}
	return nil
}

///////////////////////////////////////////////////////////////////////
// QNH

type qnhClause struct{}

func (qnhClause) category() string { return "qnh" }

func (c qnhClause) match(toks []string, cmd *command.ParsedCommand) []Diagnostic {
	qi := findToken(toks, "qnh", "altimeter")
	if qi < 0 {
		return nil
	}
	raw, ok := firstNumber(toks, qi+1, 2)
	if !ok {
		return []Diagnostic{{Category: c.category(), Reason: "QNH value missing"}}
	}
	if len(raw) < 3 || len(raw) > 4 {
		return []Diagnostic{{Category: c.category(), Reason: fmt.Sprintf("QNH %s is not a three or four digit value", raw)}}
	}
	qnh, _ := strconv.Atoi(raw)
	cmd.QNH = &qnh
	return nil
}

///////////////////////////////////////////////////////////////////////
// clearance

type clearanceClause struct{}

func (clearanceClause) category() string { return "clearance" }

// Tokens that can never be a waypoint name.
var clearanceStopWords = map[string]bool{
	"to": true, "the": true, "direct": true, "approach": true,
	"runway": true, "rwy": true, "ils": true, "vor": true, "rnav": true,
	"left": true, "right": true, "center": true, "centre": true,
}

func (c clearanceClause) match(toks []string, cmd *command.ParsedCommand) []Diagnostic {
	ci := findToken(toks, "cleared")
	if ci < 0 {
		return nil
	}
	rest := toks[ci+1:]

	di := findToken(rest, "direct")
	ai := findToken(rest, "approach")

	switch {
	case di >= 0 && (ai < 0 || di < ai):
		waypoint := directWaypoint(rest[di+1:])
		if waypoint == "" {
			return []Diagnostic{{Category: c.category(), Reason: "direct clearance without waypoint"}}
		}
		cmd.Clearance = &command.Clearance{Kind: command.ClearanceDirect, Target: waypoint}
		return nil

	case ai >= 0:
		designator, reason := runwayDesignator(rest[ai+1:])
		if reason != "" {
			return []Diagnostic{{Category: c.category(), Reason: reason}}
		}
		cmd.Clearance = &command.Clearance{Kind: command.ClearanceApproach, Target: designator}
		return nil
	}

	return []Diagnostic{{Category: c.category(), Reason: "unrecognized clearance form"}}
}

// directWaypoint returns the first plausible waypoint name after
// "direct": an alphabetic token of 3-6 letters that is not a grammar
// word. Waypoint names are free-form, so length is the only shape check.
func directWaypoint(toks []string) string {
	for _, tok := range toks {
		if isNumeric(tok) || clearanceStopWords[tok] || instructionKeywords[tok] {
			continue
		}
		if len(tok) >= 3 && len(tok) <= 6 {
			return strings.ToUpper(tok)
		}
	}
	return ""
}

// runwayDesignator parses "[runway|rwy] <dd> [left|right|center]" after
// "approach" into a designator like "22L". The number must be a
// two-digit runway (01-36).
func runwayDesignator(toks []string) (string, string) {
	for i, tok := range toks {
		if tok == "runway" || tok == "rwy" {
			continue
		}
		if !isNumeric(tok) {
			continue
		}
		num, _ := strconv.Atoi(tok)
		if len(tok) > 2 || num < 1 || num > 36 {
			return "", fmt.Sprintf("runway %s outside 01-36", tok)
		}
		designator := fmt.Sprintf("%02d", num)
		if i+1 < len(toks) {
			switch toks[i+1] {
			case "left", "l":
				designator += "L"
			case "right", "r":
				designator += "R"
			case "center", "centre", "c":
				designator += "C"
			}
		}
		return designator, ""
	}
	return "", "approach clearance without runway"
}

///////////////////////////////////////////////////////////////////////
// token helpers

// findToken returns the index of the first token equal to any of the
// given words, or -1.
func findToken(toks []string, words ...string) int {
	for i, tok := range toks {
		for _, w := range words {
			if tok == w {
				return i
			}
		}
	}
	return -1
}

// window returns toks[from : from+n] clamped to the slice bounds.
func window(toks []string, from, n int) []string {
	if from >= len(toks) {
		return nil
	}
	end := from + n
	if end > len(toks) {
		end = len(toks)
	}
	return toks[from:end]
}

// firstNumber scans up to n tokens starting at from and returns the
// first numeric token. Connective words like "to" commonly sit between
// a keyword and its value, hence the lookahead.
func firstNumber(toks []string, from, n int) (string, bool) {
	for _, tok := range window(toks, from, n+1) {
		if isNumeric(tok) {
			return tok, true
		}
	}
	return "", false
}
