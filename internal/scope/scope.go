// Package scope provides an explicit build context with create-or-reuse
// parameter scoping. A Context replaces the process-global variable registry
// that graph frameworks keep implicitly: all parameters created while
// composing one network live in one Context, and repeating a variable name
// under the same scope returns the already-created parameter instead of
// allocating a new one. That reuse rule is what makes weight sharing work.
package scope

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/seqnet/seqnet/internal/tensor"
)

// Param is a named trainable parameter.
type Param struct {
	name  string
	value *tensor.Tensor
}

// Name returns the full scoped name, e.g. "time_dense/dense/W".
func (p *Param) Name() string { return p.name }

// Value returns the parameter tensor. The tensor is shared: every scope
// lookup under the same name sees the same storage.
func (p *Param) Value() *tensor.Tensor { return p.value }

// Initializer fills a freshly allocated parameter of the given shape.
type Initializer func(shape []int) []float64

// Xavier is Glorot-uniform initialization over the first and last axes.
func Xavier(shape []int) []float64 {
	fanIn := shape[0]
	fanOut := shape[len(shape)-1]
	scale := math.Sqrt(2.0 / float64(fanIn+fanOut))
	total := 1
	for _, dim := range shape {
		total *= dim
	}
	data := make([]float64, total)
	for i := range data {
		data[i] = rand.Float64()*2*scale - scale
	}
	return data
}

// Zeros initializes a parameter to all zeros.
func Zeros(shape []int) []float64 {
	total := 1
	for _, dim := range shape {
		total *= dim
	}
	return make([]float64, total)
}

// Context owns every parameter created during one network build.
// It is written only at construction time, by a single goroutine.
type Context struct {
	params map[string]*Param
	order  []string
}

// NewContext creates an empty build context.
func NewContext() *Context {
	return &Context{params: make(map[string]*Param)}
}

// Scope enters a named parameter scope. An empty name is the root scope.
func (c *Context) Scope(name string) *Scope {
	return &Scope{ctx: c, name: name}
}

// Trainable returns the parameters whose scoped names fall under prefix, in
// creation order. An empty prefix returns every parameter. Prefixes match on
// scope boundaries: "td" covers "td/dense/W" but not "td2/dense/W".
func (c *Context) Trainable(prefix string) []*Param {
	var out []*Param
	for _, name := range c.order {
		if prefix == "" || name == prefix || strings.HasPrefix(name, prefix+"/") {
			out = append(out, c.params[name])
		}
	}
	return out
}

// NumParams returns the total element count of the parameters under prefix.
func (c *Context) NumParams(prefix string) int {
	total := 0
	for _, p := range c.Trainable(prefix) {
		total += p.Value().Numel()
	}
	return total
}

// Scope is a named namespace inside a Context. Scopes are cheap values; the
// parameters live in the Context.
type Scope struct {
	ctx  *Context
	name string
}

// Name returns the full scope name.
func (s *Scope) Name() string { return s.name }

// Sub enters a child scope, joining names with "/".
func (s *Scope) Sub(name string) *Scope {
	if s.name == "" {
		return &Scope{ctx: s.ctx, name: name}
	}
	return &Scope{ctx: s.ctx, name: s.name + "/" + name}
}

// Var creates or reuses the parameter named name under this scope. The first
// call allocates a tensor of the given shape and fills it with init; every
// later call with the same full name returns the identical Param, so callers
// building the same sub-graph repeatedly share one set of weights.
// Reuse with a different shape is an error.
func (s *Scope) Var(name string, shape []int, init Initializer) (*Param, error) {
	if name == "" {
		return nil, fmt.Errorf("scope: empty variable name in scope %q", s.name)
	}
	full := name
	if s.name != "" {
		full = s.name + "/" + name
	}
	if existing, ok := s.ctx.params[full]; ok {
		want := existing.Value().Shape()
		if len(want) != len(shape) {
			return nil, fmt.Errorf("scope: reuse of %q with shape %v, have %v", full, shape, want)
		}
		for i := range shape {
			if want[i] != shape[i] {
				return nil, fmt.Errorf("scope: reuse of %q with shape %v, have %v", full, shape, want)
			}
		}
		return existing, nil
	}
	if init == nil {
		init = Zeros
	}
	value, err := tensor.New(shape, init(shape))
	if err != nil {
		return nil, fmt.Errorf("scope: create %q: %w", full, err)
	}
	p := &Param{name: full, value: value}
	s.ctx.params[full] = p
	s.ctx.order = append(s.ctx.order, full)
	return p, nil
}
