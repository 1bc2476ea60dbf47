package domain

import (
	"fmt"
	"strings"
)

// Phase identifies which retirement spending phase a projection year falls in
type Phase int

const (
	PhaseGoGo Phase = iota
	PhaseSlowGo
	PhaseNoGo
)

// AllPhases returns the phases in chronological order
func AllPhases() []Phase {
	return []Phase{PhaseGoGo, PhaseSlowGo, PhaseNoGo}
}

// String returns the display name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseGoGo:
		return "GoGo"
	case PhaseSlowGo:
		return "SlowGo"
	case PhaseNoGo:
		return "NoGo"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase converts a phase name back to its Phase value
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gogo", "go-go":
		return PhaseGoGo, nil
	case "slowgo", "slow-go", "slow":
		return PhaseSlowGo, nil
	case "nogo", "no-go":
		return PhaseNoGo, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", s)
	}
}

// MarshalJSON encodes the phase as its display name
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a phase from its display name
func (p *Phase) UnmarshalJSON(data []byte) error {
	parsed, err := ParsePhase(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
