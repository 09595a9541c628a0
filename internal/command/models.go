package command

import "fmt"

// AltitudeKind distinguishes flight levels from explicit feet altitudes.
// The two are never converted into each other; downstream consumers need
// to know which one the controller actually said.
type AltitudeKind string

const (
	FlightLevel  AltitudeKind = "flight_level"
	FeetAltitude AltitudeKind = "feet"
)

// Altitude is a vertical clearance target. For FlightLevel the value is
// the level itself (FL280 -> 280, implicitly x100 feet); for FeetAltitude
// the value is in feet.
type Altitude struct {
	Kind  AltitudeKind `json:"kind"`
	Value int          `json:"value"`
}

// String renders the altitude in the compact form used in logs and the
// command store ("FL280", "4000ft").
func (a Altitude) String() string {
	if a.Kind == FlightLevel {
		return fmt.Sprintf("FL%d", a.Value)
	}
	return fmt.Sprintf("%dft", a.Value)
}

// TurnDirection is the direction of a heading instruction.
type TurnDirection string

const (
	TurnLeft  TurnDirection = "left"
	TurnRight TurnDirection = "right"
)

// Turn is a vectoring instruction: turn in a direction to a heading.
type Turn struct {
	Direction TurnDirection `json:"direction"`
	Heading   int           `json:"heading"` // degrees, 0-360
}

// VerticalMovement is the direction of an altitude instruction.
type VerticalMovement string

const (
	Climb    VerticalMovement = "climb"
	Descend  VerticalMovement = "descend"
	Maintain VerticalMovement = "maintain"
)

// Vertical is an altitude instruction.
type Vertical struct {
	Movement VerticalMovement `json:"movement"`
	Target   Altitude         `json:"target"`
}

// SpeedMovement is the direction of a speed instruction.
type SpeedMovement string

const (
	ReduceSpeed   SpeedMovement = "reduce"
	IncreaseSpeed SpeedMovement = "increase"
	MaintainSpeed SpeedMovement = "maintain"
)

// Speed is an airspeed instruction in knots.
type Speed struct {
	Movement SpeedMovement `json:"movement"`
	Knots    int           `json:"knots"`
}

// ClearanceKind distinguishes direct-to-fix clearances from approach
// clearances.
type ClearanceKind string

const (
	ClearanceDirect   ClearanceKind = "direct"
	ClearanceApproach ClearanceKind = "approach"
)

// Clearance is a routing clearance. Target is a waypoint name for
// direct clearances ("LAKUT") or a runway designator for approach
// clearances ("22L").
type Clearance struct {
	Kind   ClearanceKind `json:"kind"`
	Target string        `json:"target"`
}

// FlightIdentifier is the result of resolving a spoken callsign against
// the airline registry. A failed resolution is not an error: Matched is
// false, Confidence carries the best score found, and ICAOCode is empty.
type FlightIdentifier struct {
	ICAOCode     string  `json:"icao_code"`
	Callsign     string  `json:"callsign_label"`
	FlightNumber string  `json:"flight_number"`
	Confidence   float64 `json:"match_confidence"`
	Matched      bool    `json:"matched"`
}

// ParsedCommand is the structured interpretation of one ATC utterance.
// Every field except Identifier is optional; a command with no
// instruction fields at all is valid and reads back as a callsign-only
// acknowledgment. Values are constructed once by the parser and never
// mutated afterwards.
type ParsedCommand struct {
	Utterance  string           `json:"utterance"`
	Identifier FlightIdentifier `json:"identifier"`
	Turn       *Turn            `json:"turn,omitempty"`
	Vertical   *Vertical        `json:"vertical,omitempty"`
	Speed      *Speed           `json:"speed,omitempty"`
	QNH        *int             `json:"qnh,omitempty"`
	Clearance  *Clearance       `json:"clearance,omitempty"`
}

// HasInstructions reports whether the command carries any actionable
// instruction beyond the callsign.
func (c ParsedCommand) HasInstructions() bool {
	return c.Turn != nil || c.Vertical != nil || c.Speed != nil || c.QNH != nil || c.Clearance != nil
}
