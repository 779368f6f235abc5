package evolution

import "errors"

// Errors returned on invalid arguments. All validation happens at the entry
// of each public operation, before any random-stream consumption, so a
// returned error implies no side effects.
var (
	// ErrShapeMismatch reports population and evaluation tensors whose
	// batch or population dimensions disagree.
	ErrShapeMismatch = errors.New("population/evaluation shape mismatch")

	// ErrInvalidSense reports an objective-sense specification with an
	// unrecognized token or a length that does not match the number of
	// objectives.
	ErrInvalidSense = errors.New("invalid objective sense")

	// ErrTruncationOverflow reports a survivor target larger than the
	// available population. The target is never silently clamped.
	ErrTruncationOverflow = errors.New("truncation target exceeds population size")

	// ErrInvalidParam reports a hyperparameter vector whose length does
	// not match the batch, or an otherwise out-of-range parameter.
	ErrInvalidParam = errors.New("invalid operator parameter")
)
