package readback

import (
	"strings"
	"testing"

	"github.com/Saukkoriipi/PrivateAI-PilotChat/internal/command"
)

func matchedFlight(number string) command.FlightIdentifier {
	return command.FlightIdentifier{
		ICAOCode:     "BAW",
		Callsign:     "SPEEDBIRD",
		FlightNumber: number,
		Confidence:   1,
		Matched:      true,
	}
}

func intPtr(v int) *int { return &v }

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		name string
		cmd  command.ParsedCommand
		want string
	}{
		{
			"callsign only",
			command.ParsedCommand{Identifier: matchedFlight("327")},
			"speedbird three two seven",
		},
		{
			"turn",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				Turn:       &command.Turn{Direction: command.TurnLeft, Heading: 270},
			},
			"speedbird three two seven, turn left heading two seven zero",
		},
		{
			"low heading padded to three digits",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				Turn:       &command.Turn{Direction: command.TurnRight, Heading: 40},
			},
			"speedbird three two seven, turn right heading zero four zero",
		},
		{
			"flight level",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				Vertical:   &command.Vertical{Movement: command.Descend, Target: command.Altitude{Kind: command.FlightLevel, Value: 280}},
			},
			"speedbird three two seven, descending to flight level two eight zero",
		},
		{
			"feet in thousands",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				Vertical:   &command.Vertical{Movement: command.Climb, Target: command.Altitude{Kind: command.FeetAltitude, Value: 4000}},
			},
			"speedbird three two seven, climbing to four thousand feet",
		},
		{
			"feet with hundreds",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				Vertical:   &command.Vertical{Movement: command.Descend, Target: command.Altitude{Kind: command.FeetAltitude, Value: 2500}},
			},
			"speedbird three two seven, descending to two thousand five hundred feet",
		},
		{
			"speed",
			command.ParsedCommand{
				Identifier: matchedFlight("845"),
				Speed:      &command.Speed{Movement: command.ReduceSpeed, Knots: 180},
			},
			"speedbird eight four five, reducing speed to one eight zero knots",
		},
		{
			"qnh with niner",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				QNH:        intPtr(998),
			},
			"speedbird three two seven, QNH niner niner eight",
		},
		{
			"direct clearance",
			command.ParsedCommand{
				Identifier: matchedFlight("327"),
				Clearance:  &command.Clearance{Kind: command.ClearanceDirect, Target: "LAKUT"},
			},
			"speedbird three two seven, cleared direct lakut",
		},
		{
			"approach clearance",
			command.ParsedCommand{
				Identifier: matchedFlight("45"),
				Clearance:  &command.Clearance{Kind: command.ClearanceApproach, Target: "22L"},
			},
			"speedbird four five, cleared approach runway two two left",
		},
		{
			"unmatched callsign",
			command.ParsedCommand{
				Identifier: command.FlightIdentifier{FlightNumber: "56", Confidence: 0.4},
				Turn:       &command.Turn{Direction: command.TurnLeft, Heading: 180},
			},
			"unknown traffic, turn left heading one eight zero",
		},
		{
			"zero value command",
			command.ParsedCommand{},
			"unknown traffic",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Render(tc.cmd); got != tc.want {
				t.Errorf("Render =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestRenderFieldOrder(t *testing.T) {
	// All categories at once come out in fixed ICAO order regardless of
	// how the command was assembled.
	cmd := command.ParsedCommand{
		Identifier: matchedFlight("327"),
		Clearance:  &command.Clearance{Kind: command.ClearanceDirect, Target: "LAKUT"},
		QNH:        intPtr(1013),
		Speed:      &command.Speed{Movement: command.MaintainSpeed, Knots: 250},
		Vertical:   &command.Vertical{Movement: command.Descend, Target: command.Altitude{Kind: command.FlightLevel, Value: 100}},
		Turn:       &command.Turn{Direction: command.TurnRight, Heading: 90},
	}

	got := Render(cmd)
	order := []string{"speedbird", "turn right", "descending", "maintaining speed", "QNH", "cleared direct"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(got, marker)
		if idx < 0 {
			t.Fatalf("readback %q missing %q", got, marker)
		}
		if idx < last {
			t.Fatalf("readback %q has %q out of order", got, marker)
		}
		last = idx
	}
}
