package editor

import (
	"fmt"
	"strings"
)

// EndEditPolicy selects which parameters receive edit-end when a gesture is
// released.
type EndEditPolicy int

const (
	// EndEditAll ends all 16 parameters on every release.
	EndEditAll EndEditPolicy = iota
	// EndEditTouched ends only the parameters that received edit-begin
	// during the gesture.
	EndEditTouched
)

func (p EndEditPolicy) String() string {
	switch p {
	case EndEditAll:
		return "all"
	case EndEditTouched:
		return "touched"
	}
	return fmt.Sprintf("EndEditPolicy(%d)", int(p))
}

// ParseEndEditPolicy parses "all" or "touched".
func ParseEndEditPolicy(s string) (EndEditPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return EndEditAll, nil
	case "touched":
		return EndEditTouched, nil
	}
	return EndEditAll, fmt.Errorf("unknown end-edit policy %q", s)
}

// UnmarshalText lets the policy be read from configuration.
func (p *EndEditPolicy) UnmarshalText(text []byte) error {
	v, err := ParseEndEditPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
