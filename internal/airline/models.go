package airline

// Entry is one row of the airline registry: an operator identified by
// its 3-letter ICAO code, the canonical spoken callsign, and the
// pronunciation variants an ASR system is known to emit for it. The
// variant order is meaningful: earlier variants win score ties.
type Entry struct {
	ICAO           string   `json:"icao"`
	Callsign       string   `json:"callsign"`
	Pronunciations []string `json:"pronunciations"`
}

// Config holds the registry and matching configuration.
type Config struct {
	CSVPath             string  `toml:"csv_path"`
	AcceptanceThreshold float64 `toml:"acceptance_threshold"`
}
