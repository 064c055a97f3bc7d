package brush

import (
	"fmt"
	"strings"
)

// Action selects what a brush does to the samples under it.
type Action int

// Action constants.
const (
	ActionRaise Action = iota
	ActionLower
	ActionFlatten
	ActionSample
	ActionSampleAverage
	ActionSmooth
)

var actionNames = [...]string{
	ActionRaise:         "raise",
	ActionLower:         "lower",
	ActionFlatten:       "flatten",
	ActionSample:        "sample",
	ActionSampleAverage: "sample_average",
	ActionSmooth:        "smooth",
}

// String returns the action name used in config files.
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a >= ActionRaise && a <= ActionSmooth
}

// Mutates reports whether the action writes to the heightfield.
func (a Action) Mutates() bool {
	switch a {
	case ActionRaise, ActionLower, ActionFlatten, ActionSmooth:
		return true
	default:
		return false
	}
}

// ParseAction parses an action name. Matching is case-insensitive and accepts
// '-' or ' ' in place of '_'.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	// Allow the joined spelling as well ("sampleaverage").
	if name == "sampleaverage" {
		return ActionSampleAverage, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
