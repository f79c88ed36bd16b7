// Package layer provides composable layers built on an explicit parameter
// scope context. Layers are constructed, not trained: building a layer wires
// its output tensor and registers its parameters, and each layer carries the
// accumulated outputs and parameters of everything built before it so the
// finished network can be inspected from its last layer.
package layer

import (
	"fmt"
	"strings"

	"github.com/seqnet/seqnet/internal/scope"
	"github.com/seqnet/seqnet/internal/tensor"
)

// Layer is a composable transformation unit: a name, an output tensor, the
// parameters it owns, and the running bookkeeping of the network it ends.
type Layer interface {
	fmt.Stringer

	Name() string
	Output() *tensor.Tensor

	// Params returns the trainable parameters owned by this layer.
	Params() []*scope.Param

	// AllOutputs and AllParams return the accumulated outputs and
	// parameters of the whole chain up to and including this layer.
	AllOutputs() []*tensor.Tensor
	AllParams() []*scope.Param
}

// Base carries the state shared by every layer implementation: identity,
// input/output tensors, own parameters, and the accumulated chain lists.
// Concrete layers embed it and register themselves through inherit,
// addOutputs and addParams.
type Base struct {
	name   string
	input  *tensor.Tensor
	output *tensor.Tensor
	params []*scope.Param

	allOutputs []*tensor.Tensor
	allParams  []*scope.Param
}

// Name returns the layer name.
func (b *Base) Name() string { return b.name }

// Output returns the layer's output tensor.
func (b *Base) Output() *tensor.Tensor { return b.output }

// Input returns the layer's input tensor.
func (b *Base) Input() *tensor.Tensor { return b.input }

// Params returns the parameters owned by this layer.
func (b *Base) Params() []*scope.Param { return b.params }

// AllOutputs returns the accumulated output tensors of the chain.
func (b *Base) AllOutputs() []*tensor.Tensor { return b.allOutputs }

// AllParams returns the accumulated parameters of the chain.
func (b *Base) AllParams() []*scope.Param { return b.allParams }

// NumParams returns the total element count of the accumulated parameters.
func (b *Base) NumParams() int {
	total := 0
	for _, p := range b.allParams {
		total += p.Value().Numel()
	}
	return total
}

// inherit copies the accumulated chain lists from the previous layer.
func (b *Base) inherit(prev Layer) {
	if prev == nil {
		return
	}
	b.allOutputs = append(b.allOutputs, prev.AllOutputs()...)
	b.allParams = append(b.allParams, prev.AllParams()...)
}

// addOutputs appends output tensors to the accumulated chain list.
func (b *Base) addOutputs(ts ...*tensor.Tensor) {
	b.allOutputs = append(b.allOutputs, ts...)
}

// addParams appends parameters to this layer and to the chain list.
func (b *Base) addParams(ps ...*scope.Param) {
	b.params = append(b.params, ps...)
	b.allParams = append(b.allParams, ps...)
}

// ParamReport formats the accumulated parameters one per line, the way the
// chain is printed after building.
func ParamReport(l Layer) string {
	var sb strings.Builder
	for i, p := range l.AllParams() {
		fmt.Fprintf(&sb, "param %3d: %-18v %s\n", i, p.Value().Shape(), p.Name())
	}
	total := 0
	for _, p := range l.AllParams() {
		total += p.Value().Numel()
	}
	fmt.Fprintf(&sb, "num of params: %d\n", total)
	return sb.String()
}

// describe renders the informal layer description. Optional extras that are
// empty are silently omitted, so a layer missing metadata still describes
// itself instead of failing.
func describe(kind, name string, extras ...string) string {
	kept := extras[:0]
	for _, e := range extras {
		if e != "" {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return fmt.Sprintf("%s %s", kind, name)
	}
	return fmt.Sprintf("%s %s: %s", kind, name, strings.Join(kept, ", "))
}
