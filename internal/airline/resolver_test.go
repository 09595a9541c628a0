package airline

import "testing"

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	reg, err := NewRegistry(testEntries())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewResolver(reg, 0, testLogger(t))
}

func TestResolveMatches(t *testing.T) {
	r := testResolver(t)

	for _, tc := range []struct {
		name       string
		tokens     []string
		wantICAO   string
		wantFlight string
	}{
		{"exact callsign", []string{"speedbird", "3", "2", "7"}, "BAW", "327"},
		{"merged flight number", []string{"speedbird", "327"}, "BAW", "327"},
		{"icao code form", []string{"baw", "327"}, "BAW", "327"},
		{"listed variant", []string{"speerbird", "327"}, "BAW", "327"},
		{"unlisted corruption", []string{"speedbort", "327"}, "BAW", "327"},
		{"filler words", []string{"hello", "this", "is", "finnair", "45"}, "FIN", "45"},
		{"split operator name", []string{"air", "china", "9", "8"}, "CCA", "98"},
		{"joined operator name", []string{"airchina", "98"}, "CCA", "98"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			id := r.Resolve(tc.tokens)
			if !id.Matched {
				t.Fatalf("Resolve(%v) unmatched, confidence %.2f", tc.tokens, id.Confidence)
			}
			if id.ICAOCode != tc.wantICAO {
				t.Errorf("ICAOCode = %q, want %q", id.ICAOCode, tc.wantICAO)
			}
			if id.FlightNumber != tc.wantFlight {
				t.Errorf("FlightNumber = %q, want %q", id.FlightNumber, tc.wantFlight)
			}
		})
	}
}

func TestResolveUnmatched(t *testing.T) {
	r := testResolver(t)

	id := r.Resolve([]string{"blorptex", "56"})
	if id.Matched {
		t.Fatalf("Resolve matched %q with confidence %.2f", id.ICAOCode, id.Confidence)
	}
	if id.ICAOCode != "" || id.Callsign != "" {
		t.Errorf("unmatched identifier carries identity: %+v", id)
	}
	// The flight number and best score survive a failed resolution.
	if id.FlightNumber != "56" {
		t.Errorf("FlightNumber = %q, want %q", id.FlightNumber, "56")
	}
	if id.Confidence <= 0 || id.Confidence >= DefaultThreshold {
		t.Errorf("Confidence = %.2f, want in (0, %.2f)", id.Confidence, DefaultThreshold)
	}
}

func TestResolveEmptyWindow(t *testing.T) {
	r := testResolver(t)

	for _, tc := range []struct {
		name   string
		tokens []string
	}{
		{"no tokens", nil},
		{"fillers only", []string{"uh", "this", "is"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			id := r.Resolve(tc.tokens)
			if id.Matched || id.Confidence != 0 {
				t.Errorf("Resolve(%v) = %+v, want zero identifier", tc.tokens, id)
			}
		})
	}

	// Digits without an operator name still yield the flight number.
	id := r.Resolve([]string{"327"})
	if id.Matched || id.FlightNumber != "327" {
		t.Errorf("Resolve([327]) = %+v", id)
	}
}

func TestResolveTieBreak(t *testing.T) {
	// Two operators sharing a spoken callsign resolve to the earlier
	// registry row, every time.
	reg, err := NewRegistry([]Entry{
		{ICAO: "AAA", Callsign: "ALPHA"},
		{ICAO: "BBB", Callsign: "ALPHA"},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	r := NewResolver(reg, 0, testLogger(t))

	for i := 0; i < 10; i++ {
		id := r.Resolve([]string{"alpha", "1"})
		if id.ICAOCode != "AAA" {
			t.Fatalf("iteration %d: resolved to %q, want AAA", i, id.ICAOCode)
		}
	}
}

func TestSimilarity(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want float64
	}{
		{"SPEEDBIRD", "SPEEDBIRD", 1},
		{"AIR CHINA", "AIRCHINA", 1},
		{"", "SPEEDBIRD", 0},
	} {
		if got := similarity(tc.a, tc.b); got != tc.want {
			t.Errorf("similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}

	if got := similarity("SPEERBIRD", "SPEEDBIRD"); got < 0.8 || got >= 1 {
		t.Errorf("similarity(SPEERBIRD, SPEEDBIRD) = %v, want high but below 1", got)
	}
}
