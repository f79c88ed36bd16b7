package layer

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/seqnet/seqnet/internal/scope"
	"github.com/seqnet/seqnet/internal/tensor"
)

// Builder constructs an inner layer for one timestep slice under the given
// parameter scope. Dense's BuildDense is the canonical implementation.
type Builder func(sc *scope.Scope, prev Layer, cfg Args) (Layer, error)

// TimeDistributed applies an inner layer independently to every timestep of a
// (batch, time, feature) tensor, sharing one set of weights across timesteps.
// With a Dense inner layer an input of shape (B, T, D) becomes (B, T, units).
//
// The inner layer is built once per timestep under the scope named by the
// wrapper. The first build creates the parameters; every later build finds
// them already registered under the same scoped names and reuses them, so
// exactly one parameter set exists regardless of sequence length.
type TimeDistributed struct {
	Base
	cfg         Args
	builderName string
	steps       int
}

// NewTimeDistributed builds the wrapper. prev may be a unified 3-D tensor
// layer or a Seq of per-timestep slices, which is normalized first.
// cfg.Name is required: it names the per-timestep sub-layers.
func NewTimeDistributed(ctx *scope.Context, prev Layer, build Builder, cfg Args, name string) (*TimeDistributed, error) {
	if name == "" {
		name = "time_distributed"
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("time_distributed %q: %w", name, ErrMissingName)
	}
	if build == nil {
		return nil, fmt.Errorf("time_distributed %q: nil builder", name)
	}
	if prev == nil {
		return nil, fmt.Errorf("time_distributed %q: nil input layer", name)
	}

	x := prev.Output()
	if sq, ok := prev.(*Seq); ok {
		var err error
		x, err = sq.Normalize()
		if err != nil {
			return nil, fmt.Errorf("time_distributed %q: %w", name, err)
		}
	}
	if x == nil {
		return nil, fmt.Errorf("time_distributed %q: input layer %q has no output", name, prev.Name())
	}
	if x.Dims() != 3 {
		return nil, fmt.Errorf("time_distributed %q: input shape %v, want (batch, time, feature)", name, x.Shape())
	}

	slices, err := tensor.Unstack1(x)
	if err != nil {
		return nil, fmt.Errorf("time_distributed %q: %w", name, err)
	}

	sc := ctx.Scope(name)
	for i, slice := range slices {
		in, err := NewInput(slice, cfg.Name+strconv.Itoa(i))
		if err != nil {
			return nil, fmt.Errorf("time_distributed %q: step %d: %w", name, i, err)
		}
		inner, err := build(sc, in, cfg)
		if err != nil {
			return nil, fmt.Errorf("time_distributed %q: step %d: %w", name, i, err)
		}
		if inner == nil || inner.Output() == nil {
			return nil, fmt.Errorf("time_distributed %q: step %d: builder produced no output", name, i)
		}
		slices[i] = inner.Output()
	}

	// Captured once: later steps reused instead of creating, so the scope
	// holds exactly one inner layer's parameters.
	shared := ctx.Trainable(sc.Name())

	out, err := tensor.StackAxis1(slices)
	if err != nil {
		return nil, fmt.Errorf("time_distributed %q: %w", name, err)
	}

	td := &TimeDistributed{
		Base:        Base{name: name, input: x, output: out},
		cfg:         cfg,
		builderName: builderName(build),
		steps:       len(slices),
	}
	td.inherit(prev)
	td.addOutputs(out)
	td.addParams(shared...)
	return td, nil
}

// Steps returns the number of timesteps the wrapper was unrolled over.
func (td *TimeDistributed) Steps() int { return td.steps }

// String describes the wrapper. The builder label is optional and omitted
// when it could not be determined.
func (td *TimeDistributed) String() string {
	var builder string
	if td.builderName != "" {
		builder = "builder: " + td.builderName
	}
	return describe("TimeDistributed", td.name, builder, td.cfg.summary())
}

// builderName resolves a display label for the builder function, or "" when
// the runtime has no symbol for it.
func builderName(build Builder) string {
	fn := runtime.FuncForPC(reflect.ValueOf(build).Pointer())
	if fn == nil {
		return ""
	}
	full := fn.Name()
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return full
}
