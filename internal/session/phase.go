package session

import "fmt"

// Phase is the lifecycle stage of a session.
type Phase int

// Session phases. Over is terminal.
const (
	NotStarted Phase = iota
	Running
	Paused
	Over
)

var phaseNames = [...]string{
	NotStarted: "not_started",
	Running:    "running",
	Paused:     "paused",
	Over:       "over",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
