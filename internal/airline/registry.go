package airline

import (
	"errors"
	"fmt"
	"strings"
)

// Registry load errors. All of them are fatal to startup: a registry
// that fails validation is rejected as a whole, never partially loaded.
var (
	ErrEmptyRegistry   = errors.New("registry has no entries")
	ErrMissingICAO     = errors.New("entry has no ICAO code")
	ErrMissingCallsign = errors.New("entry has no callsign")
	ErrDuplicateICAO   = errors.New("duplicate ICAO code")
)

// Registry is the read-only table of known operators. It is immutable
// after construction and safe to share across any number of concurrent
// resolutions.
type Registry struct {
	entries []Entry
	byICAO  map[string]int
}

// NewRegistry validates and builds a registry from the given entries.
// Entry order is preserved; it is the final tie-break for ambiguous
// callsign matches. Each entry's canonical callsign is guaranteed to be
// present among its pronunciations, and the ICAO code itself is
// appended as a last-preference variant so that utterances like
// "BAW327" resolve without a spoken-form match.
func NewRegistry(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}

	reg := &Registry{
		entries: make([]Entry, 0, len(entries)),
		byICAO:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		icao := normalizePhrase(e.ICAO)
		callsign := normalizePhrase(e.Callsign)

		if icao == "" {
			return nil, fmt.Errorf("row %d: %w", i, ErrMissingICAO)
		}
		if callsign == "" {
			return nil, fmt.Errorf("row %d (%s): %w", i, icao, ErrMissingCallsign)
		}
		if _, exists := reg.byICAO[icao]; exists {
			return nil, fmt.Errorf("row %d: %w: %s", i, ErrDuplicateICAO, icao)
		}

		entry := Entry{ICAO: icao, Callsign: callsign}
		seen := make(map[string]bool)
		add := func(p string) {
			p = normalizePhrase(p)
			if p == "" || seen[p] {
				return
			}
			seen[p] = true
			entry.Pronunciations = append(entry.Pronunciations, p)
		}

		// The canonical callsign is trivially a variant of itself; list
		// it first unless the row put an explicit variant ahead of it.
		if len(e.Pronunciations) == 0 {
			add(callsign)
		}
		for _, p := range e.Pronunciations {
			add(p)
		}
		add(callsign)
		add(icao)

		reg.byICAO[icao] = len(reg.entries)
		reg.entries = append(reg.entries, entry)
	}

	return reg, nil
}

// Entries returns the registry rows in insertion order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Len returns the number of operators in the registry.
func (r *Registry) Len() int {
	return len(r.entries)
}

// EntryByICAO looks up an operator by its ICAO code.
func (r *Registry) EntryByICAO(code string) (Entry, bool) {
	idx, ok := r.byICAO[normalizePhrase(code)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// normalizePhrase uppercases a spoken form and collapses internal
// whitespace to single spaces.
func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
