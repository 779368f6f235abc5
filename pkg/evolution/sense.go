package evolution

import (
	"fmt"
	"strings"
)

// Sense gives the optimization direction of an objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	switch s {
	case Minimize:
		return "min"
	case Maximize:
		return "max"
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// sign returns the multiplier that normalizes an objective to
// lower-is-better.
func (s Sense) sign() float64 {
	if s == Maximize {
		return -1
	}
	return 1
}

// ParseSense parses objective-sense tokens. Accepted tokens are "min",
// "minimize", "max" and "maximize", case-insensitively.
func ParseSense(token string) (Sense, error) {
	switch strings.ToLower(token) {
	case "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	default:
		return 0, fmt.Errorf("%w: unknown token %q", ErrInvalidSense, token)
	}
}

// ParseSenses parses a per-objective sense list for m objectives. A single
// token applies to every objective; otherwise exactly m tokens are
// required.
func ParseSenses(tokens []string, m int) ([]Sense, error) {
	senses := make([]Sense, len(tokens))
	for i, tok := range tokens {
		s, err := ParseSense(tok)
		if err != nil {
			return nil, err
		}
		senses[i] = s
	}
	return NormalizeSenses(senses, m)
}

// NormalizeSenses broadcasts a single sense to m objectives, or validates
// that exactly m senses were supplied. Validation happens before any
// computation downstream.
func NormalizeSenses(senses []Sense, m int) ([]Sense, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: %d objectives", ErrInvalidSense, m)
	}
	for _, s := range senses {
		if s != Minimize && s != Maximize {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSense, s)
		}
	}
	switch len(senses) {
	case 1:
		out := make([]Sense, m)
		for i := range out {
			out[i] = senses[0]
		}
		return out, nil
	case m:
		out := make([]Sense, m)
		copy(out, senses)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %d senses for %d objectives", ErrInvalidSense, len(senses), m)
	}
}

// Signs returns the lower-is-better normalization multipliers for a sense
// vector.
func Signs(senses []Sense) []float64 {
	signs := make([]float64, len(senses))
	for i, s := range senses {
		signs[i] = s.sign()
	}
	return signs
}
