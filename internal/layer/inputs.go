package layer

import (
	"fmt"

	"github.com/seqnet/seqnet/internal/tensor"
)

// Input wraps a raw tensor in the Layer interface so it can start a chain or
// feed a single-timestep slice into an inner layer.
type Input struct {
	Base
}

// NewInput creates an input layer for the given tensor.
func NewInput(x *tensor.Tensor, name string) (*Input, error) {
	if x == nil {
		return nil, fmt.Errorf("layer: input %q: nil tensor", name)
	}
	if name == "" {
		name = "input"
	}
	in := &Input{Base: Base{name: name, input: x, output: x}}
	in.addOutputs(x)
	return in, nil
}

// String describes the input layer.
func (in *Input) String() string {
	return describe("Input", in.name, fmt.Sprintf("shape: %v", in.output.Shape()))
}

// Seq is an input layer holding a sequence of per-timestep tensors that has
// not yet been unified into one (batch, time, feature) tensor. TimeDistributed
// normalizes it by stacking the steps and swapping the leading axes.
type Seq struct {
	Base
	steps []*tensor.Tensor
}

// NewSeq creates a sequence input layer from T slices of shape (batch, dim).
func NewSeq(steps []*tensor.Tensor, name string) (*Seq, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("layer: seq %q: empty sequence", name)
	}
	if name == "" {
		name = "seq"
	}
	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("layer: seq %q: nil tensor at step %d", name, i)
		}
		if s.Dims() != 2 {
			return nil, fmt.Errorf("layer: seq %q: step %d has shape %v, want 2-D", name, i, s.Shape())
		}
	}
	return &Seq{Base: Base{name: name}, steps: steps}, nil
}

// Steps returns the per-timestep tensors.
func (s *Seq) Steps() []*tensor.Tensor { return s.steps }

// Normalize stacks the per-timestep (B, D) slices and reorders the axes into
// a single (B, T, D) tensor.
func (s *Seq) Normalize() (*tensor.Tensor, error) {
	stacked, err := tensor.Stack(s.steps)
	if err != nil {
		return nil, fmt.Errorf("layer: seq %q: %w", s.name, err)
	}
	return tensor.Transpose102(stacked)
}

// String describes the sequence input layer.
func (s *Seq) String() string {
	return describe("Seq", s.name, fmt.Sprintf("steps: %d", len(s.steps)))
}
