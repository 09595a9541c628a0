package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
	"github.com/Saukkoriipi/PrivateAI-PilotChat/pkg/logger"
)

func testStorage(t *testing.T) *CommandStorage {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "console"})
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	db, err := Open(filepath.Join(t.TempDir(), "commands.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	storage, err := NewCommandStorage(db, log)
	if err != nil {
		t.Fatalf("NewCommandStorage: %v", err)
	}
	return storage
}

func sampleCommand() command.ParsedCommand {
	qnh := 998
	return command.ParsedCommand{
		Utterance: "Speedbird 327 turn left heading 270 descend flight level 280 QNH 998",
		Identifier: command.FlightIdentifier{
			ICAOCode:     "BAW",
			Callsign:     "SPEEDBIRD",
			FlightNumber: "327",
			Confidence:   1,
			Matched:      true,
		},
		Turn:     &command.Turn{Direction: command.TurnLeft, Heading: 270},
		Vertical: &command.Vertical{Movement: command.Descend, Target: command.Altitude{Kind: command.FlightLevel, Value: 280}},
		QNH:      &qnh,
	}
}

func TestStoreAndGetRecentCommands(t *testing.T) {
	s := testStorage(t)

	record := NewCommandRecord(sampleCommand(), "speedbird three two seven, turn left heading two seven zero")
	id, err := s.StoreCommand(record)
	if err != nil {
		t.Fatalf("StoreCommand: %v", err)
	}
	if id <= 0 {
		t.Fatalf("StoreCommand returned id %d", id)
	}

	records, err := s.GetRecentCommands(10)
	if err != nil {
		t.Fatalf("GetRecentCommands: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	got := records[0]
	if got.ICAOCode != "BAW" || got.Callsign != "SPEEDBIRD" || got.FlightNumber != "327" {
		t.Errorf("identity = %s/%s/%s", got.ICAOCode, got.Callsign, got.FlightNumber)
	}
	if !got.Matched || got.Confidence != 1 {
		t.Errorf("match = %v/%.2f, want true/1.00", got.Matched, got.Confidence)
	}
	if got.TurnDirection != "left" || got.Heading == nil || *got.Heading != 270 {
		t.Errorf("turn = %s/%v", got.TurnDirection, got.Heading)
	}
	if got.VerticalMovement != "descend" || got.Altitude != "FL280" {
		t.Errorf("vertical = %s/%s, want descend/FL280", got.VerticalMovement, got.Altitude)
	}
	if got.QNH == nil || *got.QNH != 998 {
		t.Errorf("QNH = %v, want 998", got.QNH)
	}
	if got.SpeedMovement != "" || got.SpeedKts != nil {
		t.Errorf("absent speed came back as %s/%v", got.SpeedMovement, got.SpeedKts)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not persisted")
	}
}

func TestAppendUnmatchedCommand(t *testing.T) {
	s := testStorage(t)

	cmd := command.ParsedCommand{
		Utterance:  "Blorptex five six",
		Identifier: command.FlightIdentifier{FlightNumber: "56", Confidence: 0.31},
	}
	if err := s.Append(cmd, "unknown traffic"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := s.GetRecentCommands(1)
	if err != nil {
		t.Fatalf("GetRecentCommands: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Matched || records[0].ICAOCode != "" {
		t.Errorf("unmatched command stored as %+v", records[0])
	}
	if records[0].Readback != "unknown traffic" {
		t.Errorf("Readback = %q", records[0].Readback)
	}
}

func TestGetCommandsByCallsign(t *testing.T) {
	s := testStorage(t)

	for _, callsign := range []string{"SPEEDBIRD", "FINNAIR", "SPEEDBIRD"} {
		cmd := command.ParsedCommand{
			Utterance:  callsign,
			Identifier: command.FlightIdentifier{Callsign: callsign, Matched: true},
		}
		if err := s.Append(cmd, "ack"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := s.GetCommandsByCallsign("SPEEDBIRD", 10)
	if err != nil {
		t.Fatalf("GetCommandsByCallsign: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.Callsign != "SPEEDBIRD" {
			t.Errorf("Callsign = %q", r.Callsign)
		}
	}
}

func TestGetCommandsByTimeRange(t *testing.T) {
	s := testStorage(t)

	if err := s.Append(sampleCommand(), "ack"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	now := time.Now().UTC()
	records, err := s.GetCommandsByTimeRange(now.Add(-time.Minute), now.Add(time.Minute))
	if err != nil {
		t.Fatalf("GetCommandsByTimeRange: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records in range, want 1", len(records))
	}

	records, err = s.GetCommandsByTimeRange(now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetCommandsByTimeRange: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records outside range, want 0", len(records))
	}
}
