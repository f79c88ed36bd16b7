// Package tensor provides dense float64 tensors for layer composition.
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tensor is a dense tensor with row-major flat storage.
type Tensor struct {
	shape []int
	data  []float64
}

// New creates a tensor with the given shape and data.
// An empty data slice allocates a zero-filled tensor.
func New(shape []int, data []float64) (*Tensor, error) {
	total := 1
	for _, dim := range shape {
		if dim <= 0 {
			return nil, fmt.Errorf("tensor: shape %v contains non-positive dimension", shape)
		}
		total *= dim
	}
	if len(data) == 0 {
		data = make([]float64, total)
	} else if len(data) != total {
		return nil, fmt.Errorf("tensor: shape %v implies %d elements but data has %d", shape, total, len(data))
	}
	return &Tensor{
		shape: append([]int{}, shape...),
		data:  append([]float64{}, data...),
	}, nil
}

// Zeros creates a zero-filled tensor with the given shape.
func Zeros(shape []int) (*Tensor, error) {
	return New(shape, nil)
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	out, _ := New(t.shape, t.data)
	return out
}

// Shape returns the tensor shape. The returned slice must not be modified.
func (t *Tensor) Shape() []int { return t.shape }

// Dims returns the number of axes.
func (t *Tensor) Dims() int { return len(t.shape) }

// Numel returns the total number of elements.
func (t *Tensor) Numel() int { return len(t.data) }

// Data returns the underlying flat storage. Writes through it are visible
// to every holder of the tensor.
func (t *Tensor) Data() []float64 { return t.data }

// At2 reads element (i, j) of a 2-D tensor.
func (t *Tensor) At2(i, j int) float64 {
	return t.data[i*t.shape[1]+j]
}

// Set2 writes element (i, j) of a 2-D tensor.
func (t *Tensor) Set2(i, j int, v float64) {
	t.data[i*t.shape[1]+j] = v
}

// At3 reads element (i, j, k) of a 3-D tensor.
func (t *Tensor) At3(i, j, k int) float64 {
	return t.data[(i*t.shape[1]+j)*t.shape[2]+k]
}

// Set3 writes element (i, j, k) of a 3-D tensor.
func (t *Tensor) Set3(i, j, k int, v float64) {
	t.data[(i*t.shape[1]+j)*t.shape[2]+k] = v
}

// SameShape reports whether two tensors have identical shapes.
func SameShape(a, b *Tensor) bool {
	if len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports whether two tensors have the same shape and
// element-wise equal values within tol.
func EqualApprox(a, b *Tensor, tol float64) bool {
	return SameShape(a, b) && floats.EqualApprox(a.data, b.data, tol)
}

// Stack joins tensors of identical shape along a new leading axis.
// Stacking T tensors of shape (B, D) yields shape (T, B, D).
func Stack(ts []*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("tensor: stack of empty sequence")
	}
	for i := 1; i < len(ts); i++ {
		if !SameShape(ts[0], ts[i]) {
			return nil, fmt.Errorf("tensor: stack shape mismatch at index %d: %v vs %v", i, ts[0].shape, ts[i].shape)
		}
	}
	step := ts[0].Numel()
	data := make([]float64, len(ts)*step)
	for i, t := range ts {
		copy(data[i*step:(i+1)*step], t.data)
	}
	shape := append([]int{len(ts)}, ts[0].shape...)
	return New(shape, data)
}

// Transpose102 permutes the axes of a 3-D tensor from (a, b, c) to (b, a, c).
// Combined with Stack it normalizes a per-timestep sequence of (B, D) slices
// into a single (B, T, D) tensor.
func Transpose102(t *Tensor) (*Tensor, error) {
	if t.Dims() != 3 {
		return nil, fmt.Errorf("tensor: transpose102 requires a 3-D tensor, got shape %v", t.shape)
	}
	a, b, c := t.shape[0], t.shape[1], t.shape[2]
	out, _ := Zeros([]int{b, a, c})
	for i := 0; i < a; i++ {
		for j := 0; j < b; j++ {
			copy(out.data[(j*a+i)*c:(j*a+i+1)*c], t.data[(i*b+j)*c:(i*b+j+1)*c])
		}
	}
	return out, nil
}

// Unstack1 splits a 3-D (B, T, D) tensor along the time axis into
// T independent (B, D) slices.
func Unstack1(t *Tensor) ([]*Tensor, error) {
	if t.Dims() != 3 {
		return nil, fmt.Errorf("tensor: unstack1 requires a 3-D tensor, got shape %v", t.shape)
	}
	batch, steps, dim := t.shape[0], t.shape[1], t.shape[2]
	out := make([]*Tensor, steps)
	for s := 0; s < steps; s++ {
		slice, _ := Zeros([]int{batch, dim})
		for b := 0; b < batch; b++ {
			copy(slice.data[b*dim:(b+1)*dim], t.data[(b*steps+s)*dim:(b*steps+s)*dim+dim])
		}
		out[s] = slice
	}
	return out, nil
}

// StackAxis1 restacks T slices of shape (B, D) along the time axis into a
// (B, T, D) tensor. It is the inverse of Unstack1.
func StackAxis1(ts []*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("tensor: stack of empty sequence")
	}
	for i, t := range ts {
		if t.Dims() != 2 {
			return nil, fmt.Errorf("tensor: stackAxis1 requires 2-D slices, slice %d has shape %v", i, t.shape)
		}
		if !SameShape(ts[0], t) {
			return nil, fmt.Errorf("tensor: stackAxis1 shape mismatch at index %d: %v vs %v", i, ts[0].shape, t.shape)
		}
	}
	batch, dim := ts[0].shape[0], ts[0].shape[1]
	steps := len(ts)
	out, _ := Zeros([]int{batch, steps, dim})
	for s, t := range ts {
		for b := 0; b < batch; b++ {
			copy(out.data[(b*steps+s)*dim:(b*steps+s)*dim+dim], t.data[b*dim:(b+1)*dim])
		}
	}
	return out, nil
}

// MatMul multiplies a 2-D (M, K) tensor with a 2-D (K, N) tensor using gonum.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if a.Dims() != 2 || b.Dims() != 2 {
		return nil, fmt.Errorf("tensor: matmul requires 2-D tensors, got %v and %v", a.shape, b.shape)
	}
	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		return nil, fmt.Errorf("tensor: matmul inner dimension mismatch: %v x %v", a.shape, b.shape)
	}
	var out mat.Dense
	out.Mul(mat.NewDense(m, k, a.data), mat.NewDense(k2, n, b.data))
	raw := out.RawMatrix()
	return New([]int{m, n}, raw.Data)
}
