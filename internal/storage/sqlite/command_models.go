package sqlite

import (
	"time"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
)

// CommandRecord is one interpreted utterance as persisted in the
// commands table: the raw transcript, every parsed field flattened,
// and the rendered readback.
type CommandRecord struct {
	ID               int64     `json:"id"`
	Utterance        string    `json:"utterance"`
	ICAOCode         string    `json:"icao_code,omitempty"`
	Callsign         string    `json:"callsign,omitempty"`
	FlightNumber     string    `json:"flight_number,omitempty"`
	Matched          bool      `json:"matched"`
	Confidence       float64   `json:"confidence"`
	TurnDirection    string    `json:"turn_direction,omitempty"`
	Heading          *int      `json:"heading,omitempty"`
	VerticalMovement string    `json:"vertical_movement,omitempty"`
	Altitude         string    `json:"altitude,omitempty"` // "FL280" or "4000ft"
	SpeedMovement    string    `json:"speed_movement,omitempty"`
	SpeedKts         *int      `json:"speed_kts,omitempty"`
	QNH              *int      `json:"qnh,omitempty"`
	ClearanceKind    string    `json:"clearance_kind,omitempty"`
	ClearanceTarget  string    `json:"clearance_target,omitempty"`
	Readback         string    `json:"readback"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewCommandRecord flattens a parsed command and its readback into a
// storable record.
func NewCommandRecord(cmd command.ParsedCommand, readback string) *CommandRecord {
	record := &CommandRecord{
		Utterance:    cmd.Utterance,
		ICAOCode:     cmd.Identifier.ICAOCode,
		Callsign:     cmd.Identifier.Callsign,
		FlightNumber: cmd.Identifier.FlightNumber,
		Matched:      cmd.Identifier.Matched,
		Confidence:   cmd.Identifier.Confidence,
		Readback:     readback,
		CreatedAt:    time.Now().UTC(),
	}

	if t := cmd.Turn; t != nil {
		record.TurnDirection = string(t.Direction)
		heading := t.Heading
		record.Heading = &heading
	}
	if v := cmd.Vertical; v != nil {
		record.VerticalMovement = string(v.Movement)
		record.Altitude = v.Target.String()
	}
	if s := cmd.Speed; s != nil {
		record.SpeedMovement = string(s.Movement)
		knots := s.Knots
		record.SpeedKts = &knots
	}
	if cmd.QNH != nil {
		qnh := *cmd.QNH
		record.QNH = &qnh
	}
	if c := cmd.Clearance; c != nil {
		record.ClearanceKind = string(c.Kind)
		record.ClearanceTarget = c.Target
	}

	return record
}
