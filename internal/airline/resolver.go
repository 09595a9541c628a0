package airline

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

// DefaultThreshold is the minimum normalized similarity for a callsign
// match to be accepted. Below it the resolver reports Matched=false
// with the best score it found. Chosen so that typical single-word ASR
// corruptions ("SPEERBIRD", "LUFTTHANSSA") still resolve while short
// garbage does not.
const DefaultThreshold = 0.6

// Filler words the ASR tends to inject into the callsign window. They
// are stripped before matching.
var fillerWords = map[string]bool{
	"uh": true, "um": true, "ah": true, "er": true,
	"this": true, "is": true, "hello": true, "and": true,
}

// Resolver matches spoken callsign fragments against the registry.
type Resolver struct {
	registry  *Registry
	threshold float64
	logger    *logger.Logger
}

// NewResolver creates a resolver over the given registry. A threshold
// of 0 selects DefaultThreshold.
func NewResolver(registry *Registry, threshold float64, log *logger.Logger) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{
		registry:  registry,
		threshold: threshold,
		logger:    log.Named("callsign-resolver"),
	}
}

// candidate is one scored (entry, variant) pair.
type candidate struct {
	score      float64
	entryIdx   int
	variantIdx int
}

// Resolve matches the callsign window of an utterance against every
// pronunciation variant of every registry entry and returns the best
// match. Ties are broken by earliest-listed variant within the winning
// entry, then by registry insertion order, which makes resolution
// deterministic for any fixed registry. An unresolvable callsign is a
// first-class result, not an error.
func (r *Resolver) Resolve(tokens []string) command.FlightIdentifier {
	phrase, flightNumber := splitWindow(tokens)

	id := command.FlightIdentifier{FlightNumber: flightNumber}
	if phrase == "" {
		return id
	}

	cands := make([]candidate, 0, r.registry.Len())
	for ei, entry := range r.registry.Entries() {
		for vi, variant := range entry.Pronunciations {
			cands = append(cands, candidate{
				score:      similarity(phrase, variant),
				entryIdx:   ei,
				variantIdx: vi,
			})
		}
	}

	// Ranked-candidate selection: explicit total order instead of a
	// hidden iteration-order dependency.
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].entryIdx != cands[j].entryIdx {
			return cands[i].entryIdx < cands[j].entryIdx
		}
		return cands[i].variantIdx < cands[j].variantIdx
	})

	best := cands[0]
	id.Confidence = best.score
	if best.score < r.threshold {
		r.logger.Debug("Callsign below acceptance threshold",
			logger.String("phrase", phrase),
			logger.Float64("best_score", best.score))
		return id
	}

	entry := r.registry.Entries()[best.entryIdx]
	id.ICAOCode = entry.ICAO
	id.Callsign = entry.Callsign
	id.Matched = true

	r.logger.Debug("Resolved callsign",
		logger.String("phrase", phrase),
		logger.String("icao", entry.ICAO),
		logger.String("callsign", entry.Callsign),
		logger.Float64("score", best.score))

	return id
}

// splitWindow extracts the leading alphabetic run (the spoken operator
// name) and the trailing digit run (the flight number) from the
// callsign window. Filler tokens are skipped; the alphabetic run ends
// at the first digit token, and all digit tokens after it concatenate
// into the flight number.
func splitWindow(tokens []string) (phrase, flightNumber string) {
	var words []string
	var digits strings.Builder

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || fillerWords[strings.ToLower(tok)] {
			continue
		}
		if isDigits(tok) {
			digits.WriteString(tok)
			continue
		}
		// Alphabetic tokens after the flight number started are ASR
		// noise; the operator name only precedes the digits.
		if digits.Len() == 0 {
			words = append(words, tok)
		}
	}

	return strings.ToUpper(strings.Join(words, " ")), digits.String()
}

// similarity scores two spoken phrases in [0,1], 1.0 being an exact
// match. Spaces are removed on both sides first: the ASR is unreliable
// about word boundaries in operator names ("AIR CHINA" vs "AIRCHINA").
func similarity(a, b string) float64 {
	a = strings.ReplaceAll(strings.ToUpper(a), " ", "")
	b = strings.ReplaceAll(strings.ToUpper(b), " ", "")
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= longest {
		return 0
	}
	return 1 - float64(dist)/float64(longest)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
