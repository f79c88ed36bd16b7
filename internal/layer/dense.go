package layer

import (
	"fmt"

	"github.com/seqnet/seqnet/internal/scope"
	"github.com/seqnet/seqnet/internal/tensor"
)

// Dense is a fully connected layer over a 2-D (batch, feature) input.
// Its weights live in the build context under <scope>/<name>/W and
// <scope>/<name>/b, so constructing the same Dense under the same scope
// twice reuses one set of weights.
type Dense struct {
	Base
	units int
	args  Args
}

// NewDense builds a dense layer: output = act(x·W + b).
func NewDense(sc *scope.Scope, prev Layer, cfg Args) (*Dense, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if prev == nil || prev.Output() == nil {
		return nil, fmt.Errorf("layer: dense %q: nil input layer", cfg.Name)
	}
	x := prev.Output()
	if x.Dims() != 2 {
		return nil, fmt.Errorf("layer: dense %q: input shape %v, want (batch, feature)", cfg.Name, x.Shape())
	}
	batch, dim := x.Shape()[0], x.Shape()[1]

	sub := sc.Sub(cfg.Name)
	w, err := sub.Var("W", []int{dim, cfg.Units}, scope.Xavier)
	if err != nil {
		return nil, err
	}
	b, err := sub.Var("b", []int{cfg.Units}, scope.Zeros)
	if err != nil {
		return nil, err
	}

	z, err := tensor.MatMul(x, w.Value())
	if err != nil {
		return nil, fmt.Errorf("layer: dense %q: %w", cfg.Name, err)
	}
	act := cfg.activation()
	bias := b.Value().Data()
	for i := 0; i < batch; i++ {
		for j := 0; j < cfg.Units; j++ {
			z.Set2(i, j, act.Activate(z.At2(i, j)+bias[j]))
		}
	}

	d := &Dense{Base: Base{name: cfg.Name, input: x, output: z}, units: cfg.Units, args: cfg}
	d.inherit(prev)
	d.addOutputs(z)
	d.addParams(w, b)
	return d, nil
}

// BuildDense adapts NewDense to the Builder signature used by wrapper layers.
func BuildDense(sc *scope.Scope, prev Layer, cfg Args) (Layer, error) {
	return NewDense(sc, prev, cfg)
}

// Units returns the output feature size.
func (d *Dense) Units() int { return d.units }

// String describes the dense layer.
func (d *Dense) String() string {
	return describe("Dense", d.name, d.args.summary())
}
