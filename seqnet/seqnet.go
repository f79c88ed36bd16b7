// Package seqnet re-exports the library's common types and constructors.
package seqnet

import (
	"github.com/seqnet/seqnet/internal/activations"
	"github.com/seqnet/seqnet/internal/config"
	"github.com/seqnet/seqnet/internal/layer"
	"github.com/seqnet/seqnet/internal/scope"
	"github.com/seqnet/seqnet/internal/tensor"
)

// Re-export common types for easier access
type (
	Context = scope.Context
	Scope   = scope.Scope
	Param   = scope.Param
	Tensor  = tensor.Tensor
	Layer   = layer.Layer
	Args    = layer.Args
	Builder = layer.Builder
	Model   = config.ModelConfig
)

// Build context
func NewContext() *Context {
	return scope.NewContext()
}

// Tensors
func NewTensor(shape []int, data []float64) (*Tensor, error) {
	return tensor.New(shape, data)
}

func Zeros(shape []int) (*Tensor, error) {
	return tensor.Zeros(shape)
}

// Layers
func Input(x *Tensor, name string) (Layer, error) {
	return layer.NewInput(x, name)
}

func Seq(steps []*Tensor, name string) (Layer, error) {
	return layer.NewSeq(steps, name)
}

func Dense(sc *Scope, prev Layer, cfg Args) (Layer, error) {
	return layer.NewDense(sc, prev, cfg)
}

func TimeDistributed(ctx *Context, prev Layer, build Builder, cfg Args, name string) (Layer, error) {
	return layer.NewTimeDistributed(ctx, prev, build, cfg, name)
}

// BuildDense is the Builder for Dense inner layers.
var BuildDense Builder = layer.BuildDense

// ArgsFromMap decodes a loosely-typed args mapping, rewriting legacy keys.
func ArgsFromMap(m map[string]any) (Args, error) {
	return layer.ArgsFromMap(m)
}

// ParamReport formats the accumulated parameters of a built chain.
func ParamReport(l Layer) string {
	return layer.ParamReport(l)
}

// Activations
var (
	Linear  = activations.Linear{}
	ReLU    = activations.ReLU{}
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
)

// Model configuration
func LoadModel(path string) (*Model, error) {
	return config.Load(path)
}
