// Package tensor provides a small row-major, batched float64 array used by
// the evolutionary operators. A tensor of shape [...batch, N, L] holds one
// population of N candidate vectors of length L per batch slice; any number
// of leading batch dimensions (including zero) is allowed.
//
// Tensors are treated as immutable by the packages built on top of this one:
// operators always allocate fresh tensors for their results. Reshape returns
// a view sharing the underlying data, which is how the canonical three-axis
// [B, N, L] form used internally is produced without copying.
package tensor

import (
	"fmt"
	"slices"
)

// Tensor is a dense row-major float64 array of arbitrary rank.
type Tensor struct {
	shape []int
	data  []float64
}

// New builds a tensor over the given data, taking ownership of the slice.
func New(shape []int, data []float64) (*Tensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("tensor: data length %d does not match shape %v", len(data), shape)
	}
	return &Tensor{shape: slices.Clone(shape), data: data}, nil
}

// Zeros returns a zero-filled tensor. It panics on a negative dimension,
// which is a programmer error rather than an input condition.
func Zeros(shape ...int) *Tensor {
	n, err := checkShape(shape)
	if err != nil {
		panic(err)
	}
	return &Tensor{shape: slices.Clone(shape), data: make([]float64, n)}
}

// Full returns a tensor with every element set to v.
func Full(v float64, shape ...int) *Tensor {
	t := Zeros(shape...)
	for i := range t.data {
		t.data[i] = v
	}
	return t
}

func checkShape(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("tensor: negative dimension in shape %v", shape)
		}
		n *= d
	}
	return n, nil
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int { return slices.Clone(t.shape) }

// Dims returns the rank of the tensor.
func (t *Tensor) Dims() int { return len(t.shape) }

// Dim returns the size of axis i.
func (t *Tensor) Dim(i int) int { return t.shape[i] }

// Len returns the total number of elements.
func (t *Tensor) Len() int { return len(t.data) }

// Data exposes the underlying row-major storage. Callers must not mutate
// a tensor another component still holds.
func (t *Tensor) Data() []float64 { return t.data }

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{shape: slices.Clone(t.shape), data: slices.Clone(t.data)}
}

// Reshape returns a view of the same data under a new shape. The element
// count must be preserved.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if n != len(t.data) {
		return nil, fmt.Errorf("tensor: cannot reshape %v into %v", t.shape, shape)
	}
	return &Tensor{shape: slices.Clone(shape), data: t.data}, nil
}

// At returns the element at the given full index.
func (t *Tensor) At(idx ...int) float64 {
	return t.data[t.offset(idx)]
}

// Set writes the element at the given full index.
func (t *Tensor) Set(v float64, idx ...int) {
	t.data[t.offset(idx)] = v
}

func (t *Tensor) offset(idx []int) int {
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
// flattened over the remaining axes. For a canonical [B, N, L] tensor,
// Row(b, n) is the n-th candidate vector of slice b. The returned slice
// aliases the tensor's storage.
func (t *Tensor) Row(prefix ...int) []float64 {
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
// batch axis, returning a view of shape [B, trailing...] together with the
// original batch dimensions. A tensor with exactly `trailing` axes yields
// B == 1. The view shares storage with t.
func (t *Tensor) Canon(trailing int) (*Tensor, []int, error) {
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

// Concat joins a and b along the given axis. All other dimensions must
// agree.
func Concat(a, b *Tensor, axis int) (*Tensor, error) {
	if a.Dims() != b.Dims() {
		return nil, fmt.Errorf("tensor: concat rank mismatch %v vs %v", a.shape, b.shape)
	}
	if axis < 0 || axis >= a.Dims() {
		return nil, fmt.Errorf("tensor: concat axis %d out of range for shape %v", axis, a.shape)
	}
	for i := range a.shape {
		if i != axis && a.shape[i] != b.shape[i] {
			return nil, fmt.Errorf("tensor: concat shape mismatch %v vs %v on axis %d", a.shape, b.shape, i)
		}
	}
	outer := 1
	for _, d := range a.shape[:axis] {
		outer *= d
	}
	blockA := len(a.data) / max(outer, 1)
	blockB := len(b.data) / max(outer, 1)
	if outer == 0 {
		blockA, blockB = 0, 0
	}

	shape := slices.Clone(a.shape)
	shape[axis] = a.shape[axis] + b.shape[axis]
	out := Zeros(shape...)
	for i := 0; i < outer; i++ {
		dst := out.data[i*(blockA+blockB):]
		copy(dst[:blockA], a.data[i*blockA:(i+1)*blockA])
		copy(dst[blockA:blockA+blockB], b.data[i*blockB:(i+1)*blockB])
	}
	return out, nil
}

// Gather selects rows along axis 1 of a canonical [B, N, ...] tensor. Index
// row b picks the rows of slice b, and every index row must have the same
// length so the result is rectangular: [B, K, ...].
func Gather(t *Tensor, indices [][]int) (*Tensor, error) {
	if t.Dims() < 2 {
		return nil, fmt.Errorf("tensor: gather needs at least 2 axes, got shape %v", t.shape)
	}
	bDim, n := t.shape[0], t.shape[1]
	if len(indices) != bDim {
		return nil, fmt.Errorf("tensor: gather got %d index rows for batch size %d", len(indices), bDim)
	}
	k := 0
	if bDim > 0 {
		k = len(indices[0])
	}
	rest := 1
	for _, d := range t.shape[2:] {
		rest *= d
	}

	shape := append([]int{bDim, k}, t.shape[2:]...)
	out := Zeros(shape...)
	for b, row := range indices {
		if len(row) != k {
			return nil, fmt.Errorf("tensor: gather index rows are ragged (%d vs %d)", len(row), k)
		}
		for j, idx := range row {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("tensor: gather index %d out of range [0,%d)", idx, n)
			}
			src := t.data[(b*n+idx)*rest : (b*n+idx+1)*rest]
			copy(out.data[(b*k+j)*rest:(b*k+j+1)*rest], src)
		}
	}
	return out, nil
}

// MapRows lifts a rowwise function over every leading index of t, treating
// the last axis as the row. The result replaces the last axis with m: for an
// input of shape [...lead, L], f is called once per lead index with a
// destination of length m and the corresponding row of length L, and the
// output has shape [...lead, m]. This is the explicit broadcasting
// combinator used to evaluate objective functions over whole batched
// populations.
func MapRows(t *Tensor, m int, f func(dst, row []float64)) (*Tensor, error) {
	if t.Dims() < 1 {
		return nil, fmt.Errorf("tensor: MapRows needs at least 1 axis")
	}
	if m < 0 {
		return nil, fmt.Errorf("tensor: MapRows output length %d is negative", m)
	}
	l := t.shape[t.Dims()-1]
	rows := 0
	if l > 0 {
		rows = len(t.data) / l
	}

	shape := slices.Clone(t.shape)
	shape[len(shape)-1] = m
	out := Zeros(shape...)
	for i := 0; i < rows; i++ {
		f(out.data[i*m:(i+1)*m], t.data[i*l:(i+1)*l])
	}
	return out, nil
}
