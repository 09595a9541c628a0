package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// numeralWords maps spoken digits to their numeric form. It covers the
// canonical English digits plus the ICAO radio pronunciations and the
// common ASR renderings of them ("niner", "fife", "tree"). The table is
// fixed configuration: the parser never learns new numerals at runtime.
var numeralWords = map[string]string{
	"zero": "0", "oh": "0",
	"one": "1", "wun": "1",
	"two": "2", "too": "2",
	"three": "3", "tree": "3",
	"four": "4", "fower": "4",
	"five": "5", "fife": "5",
	"six":   "6",
	"seven": "7",
	"eight": "8", "ait": "8",
	"nine": "9", "niner": "9",
}

// Normalize turns a raw transcribed utterance into a clean token
// stream: lowercased, punctuation stripped, mixed letter/digit tokens
// split apart, spoken numerals converted to digits, ASR artifacts
// removed, and digit groups merged ("two seven zero" -> "270",
// "four thousand" -> "4000"). Deterministic for any fixed input.
func Normalize(text string) []string {
	toks := tokenize(text)
	toks = substituteNumerals(toks)
	toks = dropNinerArtifacts(toks)
	toks = mergeNumbers(toks)
	return toks
}

// tokenize lowercases the text, treats every non-alphanumeric rune as a
// separator, and splits tokens that mix letters and digits ("baw327"
// -> "baw", "327"; "fl280" -> "fl", "280").
func tokenize(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	var toks []string
	for _, field := range strings.Fields(mapped) {
		toks = append(toks, splitRuns(field)...)
	}
	return toks
}

// splitRuns splits a token into maximal letter-only and digit-only runs.
func splitRuns(tok string) []string {
	var runs []string
	start := 0
	runes := []rune(tok)
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || unicode.IsDigit(runes[i]) != unicode.IsDigit(runes[i-1]) {
			runs = append(runs, string(runes[start:i]))
			start = i
		}
	}
	return runs
}

func substituteNumerals(toks []string) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		if digit, ok := numeralWords[tok]; ok {
			out[i] = digit
		} else {
			out[i] = tok
		}
	}
	return out
}

// dropNinerArtifacts removes the "or" tokens the ASR produces for
// "niner" ("QNH 9 or 9 or 8" for "QNH niner niner eight"). Only an "or"
// sandwiched between digit tokens is an artifact; anywhere else the
// word is left alone.
func dropNinerArtifacts(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i, tok := range toks {
		if tok == "or" && i > 0 && i+1 < len(toks) && isNumeric(toks[i-1]) && isNumeric(toks[i+1]) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// mergeNumbers concatenates adjacent digit tokens into one number and
// folds "thousand"/"hundred" magnitude words into the value:
// "2 7 0" -> "270", "4 thousand" -> "4000",
// "2 thousand 5 hundred" -> "2500", "9 hundred" -> "900".
func mergeNumbers(toks []string) []string {
	var out []string
	i := 0
	for i < len(toks) {
		if !isNumeric(toks[i]) {
			out = append(out, toks[i])
			i++
			continue
		}

		// Concatenate the digit run.
		var digits strings.Builder
		for i < len(toks) && isNumeric(toks[i]) {
			digits.WriteString(toks[i])
			i++
		}
		value, _ := strconv.Atoi(digits.String())

		switch {
		case i < len(toks) && toks[i] == "thousand":
			i++
			value *= 1000
			// Optional "N hundred" tail.
			if h, consumed := hundredsTail(toks[i:]); consumed > 0 {
				value += h
				i += consumed
			}
			out = append(out, strconv.Itoa(value))
		case i < len(toks) && toks[i] == "hundred":
			i++
			out = append(out, strconv.Itoa(value*100))
		default:
			// Plain digit group: preserve leading zeros ("040").
			out = append(out, digits.String())
		}
	}
	return out
}

// hundredsTail parses a leading "<digits> hundred" and returns the feet
// value and tokens consumed, or (0, 0) if the tail does not match.
func hundredsTail(toks []string) (int, int) {
	var digits strings.Builder
	i := 0
	for i < len(toks) && isNumeric(toks[i]) {
		digits.WriteString(toks[i])
		i++
	}
	if i == 0 || i >= len(toks) || toks[i] != "hundred" {
		return 0, 0
	}
	h, _ := strconv.Atoi(digits.String())
	return h * 100, i + 1
}

func isNumeric(s string) bool {
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
