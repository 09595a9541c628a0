package airline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "console"})
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return log
}

func testEntries() []Entry {
	return []Entry{
		{ICAO: "BAW", Callsign: "SPEEDBIRD", Pronunciations: []string{"SPEEDBIRD", "SPEEDBURD", "SPEERBIRD"}},
		{ICAO: "FIN", Callsign: "FINNAIR", Pronunciations: []string{"FINNAIR", "FINEIR"}},
		{ICAO: "DLH", Callsign: "LUFTHANSA", Pronunciations: []string{"LUFTHANSA", "LUFTTHANSSA"}},
		{ICAO: "CCA", Callsign: "AIR CHINA", Pronunciations: []string{"AIR CHINA", "AIRCHINA"}},
		{ICAO: "DAL", Callsign: "DELTA"},
	}
}

func TestNewRegistryValidation(t *testing.T) {
	for _, tc := range []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"empty", nil, ErrEmptyRegistry},
		{"missing ICAO", []Entry{{Callsign: "SPEEDBIRD"}}, ErrMissingICAO},
		{"missing callsign", []Entry{{ICAO: "BAW"}}, ErrMissingCallsign},
		{"duplicate ICAO", []Entry{
			{ICAO: "BAW", Callsign: "SPEEDBIRD"},
			{ICAO: "BAW", Callsign: "SPEEDBIRD"},
		}, ErrDuplicateICAO},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRegistry(tc.entries); !errors.Is(err, tc.wantErr) {
				t.Errorf("NewRegistry: got error %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewRegistryVariants(t *testing.T) {
	reg, err := NewRegistry(testEntries())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	// A row without explicit pronunciations still matches on its
	// canonical callsign, and every row gets its ICAO code as a
	// last-preference variant.
	entry, ok := reg.EntryByICAO("DAL")
	if !ok {
		t.Fatal("EntryByICAO(DAL) not found")
	}
	want := []string{"DELTA", "DAL"}
	if len(entry.Pronunciations) != len(want) {
		t.Fatalf("DAL pronunciations = %v, want %v", entry.Pronunciations, want)
	}
	for i, p := range want {
		if entry.Pronunciations[i] != p {
			t.Errorf("DAL pronunciation[%d] = %q, want %q", i, entry.Pronunciations[i], p)
		}
	}
}

func TestNewRegistryDeduplicates(t *testing.T) {
	reg, err := NewRegistry([]Entry{
		{ICAO: "RYR", Callsign: "RYANAIR", Pronunciations: []string{"RYANAIR", "ryanair", "RYAN AIR"}},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	entry, _ := reg.EntryByICAO("ryr")
	want := []string{"RYANAIR", "RYAN AIR", "RYR"}
	if len(entry.Pronunciations) != len(want) {
		t.Fatalf("pronunciations = %v, want %v", entry.Pronunciations, want)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airlines.csv")
	data := "ICAO;CALLSIGN;PRONUNCIATION\n" +
		"BAW;SPEEDBIRD;SPEEDBIRD,SPEERBIRD\n" +
		"DAL;DELTA;\n" +
		"CCA;AIR CHINA;AIR CHINA,AIRCHINA\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadCSV(path, testLogger(t))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
	if entry, ok := reg.EntryByICAO("CCA"); !ok || entry.Callsign != "AIR CHINA" {
		t.Errorf("EntryByICAO(CCA) = %+v, %v", entry, ok)
	}
}

func TestLoadCSVMalformedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airlines.csv")
	if err := os.WriteFile(path, []byte("ICAO;CALLSIGN;PRONUNCIATION\nBAW\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCSV(path, testLogger(t)); err == nil {
		t.Error("LoadCSV accepted a row without a callsign column")
	}
}
