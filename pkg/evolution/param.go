package evolution

import "fmt"

// Param is a hyperparameter that is either a single scalar shared by every
// batch slice or a vector giving one value per slice. Operators resolve it
// against the flattened batch size before touching the random stream.
type Param struct {
	values []float64
}

// Scalar wraps a value shared by all batch slices.
func Scalar(v float64) Param {
	return Param{values: []float64{v}}
}

// PerSlice wraps one value per batch slice. The length must equal the
// flattened batch size of the population it is applied to.
func PerSlice(vs []float64) Param {
	cp := make([]float64, len(vs))
	copy(cp, vs)
	return Param{values: cp}
}

// Resolve broadcasts the parameter over b batch slices.
func (p Param) Resolve(b int) ([]float64, error) {
	switch len(p.values) {
	case 1:
		out := make([]float64, b)
		for i := range out {
			out[i] = p.values[0]
		}
		return out, nil
	case b:
		out := make([]float64, b)
		copy(out, p.values)
		return out, nil
	case 0:
		return nil, fmt.Errorf("%w: empty parameter", ErrInvalidParam)
	default:
		return nil, fmt.Errorf("%w: %d values for %d batch slices", ErrInvalidParam, len(p.values), b)
	}
}
