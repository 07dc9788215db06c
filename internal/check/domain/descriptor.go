package domain

import (
	"fmt"
	"strings"
)

// State is the enabled/disabled state of a check.
type State int

const (
	StateOff State = iota // Check is skipped unless enabled in config
	StateOn               // Check runs unless disabled in config
)

// String returns the config spelling of the State ("on" or "off").
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

var stateNames = [...]string{
	StateOff: "off",
	StateOn:  "on",
}

// ParseState parses "on"/"off" (and the usual boolean spellings) into a State.
func ParseState(v string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes", "1", "enabled":
		return StateOn, nil
	case "off", "false", "no", "0", "disabled":
		return StateOff, nil
	default:
		return StateOff, fmt.Errorf("invalid check state %q: want on or off", v)
	}
}

// Descriptor is the static registration record of a checker. The hook runner
// reads it at discovery time to decide whether, and under which conditions,
// the checker runs.
type Descriptor struct {
	Name          string
	Default       State
	RequiredFiles []string // relative to the repository root
}
