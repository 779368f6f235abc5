package tensor

import (
	"fmt"
	"slices"
)

// IntTensor is the integer companion of Tensor, used for domination counts
// and front ranks.
type IntTensor struct {
	shape []int
	data  []int
}

// NewInt builds an integer tensor over the given data, taking ownership of
// the slice.
func NewInt(shape []int, data []int) (*IntTensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v", len(data), shape)
	}
	return &IntTensor{shape: slices.Clone(shape), data: data}, nil
}

// ZerosInt returns a zero-filled integer tensor.
func ZerosInt(shape ...int) *IntTensor {
	n, err := checkShape(shape)
	if err != nil {
		panic(err)
	}
	return &IntTensor{shape: slices.Clone(shape), data: make([]int, n)}
}

// Shape returns a copy of the tensor's dimensions.
func (t *IntTensor) Shape() []int { return slices.Clone(t.shape) }

// Dims returns the rank of the tensor.
func (t *IntTensor) Dims() int { return len(t.shape) }

// Dim returns the size of axis i.
func (t *IntTensor) Dim(i int) int { return t.shape[i] }

// Len returns the total number of elements.
func (t *IntTensor) Len() int { return len(t.data) }

// Data exposes the underlying row-major storage.
func (t *IntTensor) Data() []int { return t.data }

// Clone returns a deep copy.
func (t *IntTensor) Clone() *IntTensor {
	return &IntTensor{shape: slices.Clone(t.shape), data: slices.Clone(t.data)}
}

// Reshape returns a view of the same data under a new shape.
func (t *IntTensor) Reshape(shape ...int) (*IntTensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if n != len(t.data) {
		return nil, fmt.Errorf("tensor: cannot reshape %v into %v", t.shape, shape)
	}
	return &IntTensor{shape: slices.Clone(shape), data: t.data}, nil
}

// At returns the element at the given full index.
func (t *IntTensor) At(idx ...int) int {
	return t.data[t.offset(idx)]
}

// Set writes the element at the given full index.
func (t *IntTensor) Set(v int, idx ...int) {
	t.data[t.offset(idx)] = v
}

func (t *IntTensor) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: index %v does not match shape %v", idx, t.shape))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %v out of range for shape %v", idx, t.shape))
		}
		off = off*t.shape[i] + x
	}
	return off
}

// Row returns the contiguous block addressed by a prefix of the full index,
// flattened over the remaining axes. The returned slice aliases the
// tensor's storage.
func (t *IntTensor) Row(prefix ...int) []int {
	if len(prefix) > len(t.shape) {
		panic(fmt.Sprintf("tensor: prefix %v longer than shape %v", prefix, t.shape))
	}
	block := 1
	for _, d := range t.shape[len(prefix):] {
		block *= d
	}
	off := 0
	for i, x := range prefix {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("tensor: prefix %v out of range for shape %v", prefix, t.shape))
		}
		off = off*t.shape[i] + x
	}
	off *= block
	return t.data[off : off+block]
}

// Canon collapses every axis before the last `trailing` axes into a single
// batch axis, mirroring Tensor.Canon.
func (t *IntTensor) Canon(trailing int) (*IntTensor, []int, error) {
	if trailing < 0 || trailing > len(t.shape) {
		return nil, nil, fmt.Errorf("tensor: cannot take %d trailing axes of shape %v", trailing, t.shape)
	}
	batch := slices.Clone(t.shape[:len(t.shape)-trailing])
	b := 1
	for _, d := range batch {
		b *= d
	}
	shape := append([]int{b}, t.shape[len(t.shape)-trailing:]...)
	view, err := t.Reshape(shape...)
	if err != nil {
		return nil, nil, err
	}
	return view, batch, nil
}
