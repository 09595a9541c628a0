package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

// CommandStorage handles storage of interpreted command records.
type CommandStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewCommandStorage creates a new SQLite command storage.
func NewCommandStorage(db *sql.DB, log *logger.Logger) (*CommandStorage, error) {
	storage := &CommandStorage{
		db:     db,
		logger: log.Named("sqlite-commands"),
	}

	if err := storage.initDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize command storage: %w", err)
	}

	return storage, nil
}

// initDB initializes the database tables.
func (s *CommandStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS commands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			utterance TEXT NOT NULL,
			icao_code TEXT,
			callsign TEXT,
			flight_number TEXT,
			matched INTEGER NOT NULL DEFAULT 0,
			confidence REAL NOT NULL DEFAULT 0,
			turn_direction TEXT,
			heading INTEGER,
			vertical_movement TEXT,
			altitude TEXT,
			speed_movement TEXT,
			speed_kts INTEGER,
			qnh INTEGER,
			clearance_kind TEXT,
			clearance_target TEXT,
			readback TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create commands table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_commands_callsign ON commands(callsign)`,
		`CREATE INDEX IF NOT EXISTS idx_commands_icao ON commands(icao_code)`,
		`CREATE INDEX IF NOT EXISTS idx_commands_created_at ON commands(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_commands_matched ON commands(matched)`,
	}

	for _, indexSQL := range indexes {
		if _, err = s.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create command index: %w", err)
		}
	}

	return nil
}

// StoreCommand stores a command record and returns its ID.
func (s *CommandStorage) StoreCommand(record *CommandRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO commands
		(utterance, icao_code, callsign, flight_number, matched, confidence,
		 turn_direction, heading, vertical_movement, altitude,
		 speed_movement, speed_kts, qnh, clearance_kind, clearance_target,
		 readback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Utterance,
		nullString(record.ICAOCode),
		nullString(record.Callsign),
		nullString(record.FlightNumber),
		record.Matched,
		record.Confidence,
		nullString(record.TurnDirection),
		nullInt(record.Heading),
		nullString(record.VerticalMovement),
		nullString(record.Altitude),
		nullString(record.SpeedMovement),
		nullInt(record.SpeedKts),
		nullInt(record.QNH),
		nullString(record.ClearanceKind),
		nullString(record.ClearanceTarget),
		record.Readback,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert command: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// Append implements the pipeline's command log: flatten and store,
// discarding the generated ID.
func (s *CommandStorage) Append(cmd command.ParsedCommand, readback string) error {
	_, err := s.StoreCommand(NewCommandRecord(cmd, readback))
	return err
}

const commandColumns = `id, utterance, icao_code, callsign, flight_number, matched, confidence,
	turn_direction, heading, vertical_movement, altitude,
	speed_movement, speed_kts, qnh, clearance_kind, clearance_target,
	readback, created_at`

// GetRecentCommands returns the most recent command records.
func (s *CommandStorage) GetRecentCommands(limit int) ([]*CommandRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+commandColumns+`
		FROM commands
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent commands: %w", err)
	}
	defer rows.Close()

	return s.scanCommandRows(rows)
}

// GetCommandsByCallsign returns command records for a specific
// operator callsign.
func (s *CommandStorage) GetCommandsByCallsign(callsign string, limit int) ([]*CommandRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+commandColumns+`
		FROM commands
		WHERE callsign = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		callsign, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands by callsign: %w", err)
	}
	defer rows.Close()

	return s.scanCommandRows(rows)
}

// GetCommandsByTimeRange returns command records within a time range.
func (s *CommandStorage) GetCommandsByTimeRange(startTime, endTime time.Time) ([]*CommandRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+commandColumns+`
		FROM commands
		WHERE created_at BETWEEN ? AND ?
		ORDER BY created_at DESC, id DESC`,
		startTime.Format(time.RFC3339), endTime.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands by time range: %w", err)
	}
	defer rows.Close()

	return s.scanCommandRows(rows)
}

// scanCommandRows scans database rows into CommandRecord structs.
func (s *CommandStorage) scanCommandRows(rows *sql.Rows) ([]*CommandRecord, error) {
	var records []*CommandRecord
	for rows.Next() {
		var record CommandRecord
		var createdAt string
		var icao, callsign, flightNumber, turnDirection, verticalMovement,
			altitude, speedMovement, clearanceKind, clearanceTarget sql.NullString
		var heading, speedKts, qnh sql.NullInt64

		if err := rows.Scan(
			&record.ID,
			&record.Utterance,
			&icao,
			&callsign,
			&flightNumber,
			&record.Matched,
			&record.Confidence,
			&turnDirection,
			&heading,
			&verticalMovement,
			&altitude,
			&speedMovement,
			&speedKts,
			&qnh,
			&clearanceKind,
			&clearanceTarget,
			&record.Readback,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}

		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		record.ICAOCode = icao.String
		record.Callsign = callsign.String
		record.FlightNumber = flightNumber.String
		record.TurnDirection = turnDirection.String
		record.VerticalMovement = verticalMovement.String
		record.Altitude = altitude.String
		record.SpeedMovement = speedMovement.String
		record.ClearanceKind = clearanceKind.String
		record.ClearanceTarget = clearanceTarget.String
		record.Heading = intPtr(heading)
		record.SpeedKts = intPtr(speedKts)
		record.QNH = intPtr(qnh)

		records = append(records, &record)
	}

	return records, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
