package rules

import "fmt"

// Outcome is the terminal result of a simulation.
type Outcome int

const (
	OutcomePending Outcome = iota
	// OutcomeSuccess means a filter stalled the civilization.
	OutcomeSuccess
	// OutcomeFailure means the civilization reached DYSON and escaped.
	OutcomeFailure
)

var outcomeNames = map[Outcome]string{
	OutcomePending: "pending",
	OutcomeSuccess: "success",
	OutcomeFailure: "failure",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OUTCOME_%d", int(o))
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(text []byte) error {
	for out, name := range outcomeNames {
		if name == string(text) {
			*o = out
			return nil
		}
	}
	return fmt.Errorf("unknown outcome: %q", string(text))
}

// Terminal reports whether the simulation has ended.
func (o Outcome) Terminal() bool {
	return o != OutcomePending
}
