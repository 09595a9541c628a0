package airline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

// LoadCSV reads an airline registry from a semicolon-separated CSV file
// with an ICAO;CALLSIGN;PRONUNCIATION header. The PRONUNCIATION column
// holds zero or more comma-separated spoken variants; an empty column
// means the callsign is its own pronunciation. Any malformed row
// rejects the whole load.
func LoadCSV(path string, log *logger.Logger) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read registry CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyRegistry
	}

	// Skip the header row if present.
	if strings.EqualFold(strings.TrimSpace(rows[0][0]), "icao") {
		rows = rows[1:]
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected at least ICAO and CALLSIGN columns, got %d", i+1, len(row))
		}
		entry := Entry{
			ICAO:     strings.TrimSpace(row[0]),
			Callsign: strings.TrimSpace(row[1]),
		}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			for _, p := range strings.Split(row[2], ",") {
				if p = strings.TrimSpace(p); p != "" {
					entry.Pronunciations = append(entry.Pronunciations, p)
				}
			}
		}
		entries = append(entries, entry)
	}

	reg, err := NewRegistry(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid registry %s: %w", path, err)
	}

	log.Info("Loaded airline registry",
		logger.String("path", path),
		logger.Int("operators", reg.Len()))

	return reg, nil
}
