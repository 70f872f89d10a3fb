package entities

import "encoding/json"

// Constraint is the effective value of one filterable dimension: either
// unconstrained, or a non-empty set of accepted values. The zero value is
// unconstrained.
type Constraint struct {
	values []string
}

// Unconstrained returns a constraint that matches everything.
func Unconstrained() Constraint {
	return Constraint{}
}

// OneOf returns a constraint over the given values. Blank and duplicate
// values are dropped; no remaining values means unconstrained.
func OneOf(values ...string) Constraint {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return Constraint{values: out}
}

// IsUnconstrained reports whether the dimension imposes no predicate.
func (c Constraint) IsUnconstrained() bool {
	return len(c.values) == 0
}

// Values returns a copy of the accepted values, nil when unconstrained.
func (c Constraint) Values() []string {
	if c.IsUnconstrained() {
		return nil
	}
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

// Single returns the sole value of a one-value constraint.
func (c Constraint) Single() (string, bool) {
	if len(c.values) != 1 {
		return "", false
	}
	return c.values[0], true
}

// MarshalJSON renders an unconstrained dimension as null.
func (c Constraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Values())
}
