package layer

import (
	"errors"
	"math"
	"testing"

	"github.com/seqnet/seqnet/internal/activations"
	"github.com/seqnet/seqnet/internal/scope"
	"github.com/seqnet/seqnet/internal/tensor"
)

func TestDenseForwardKnownWeights(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.New([]int{2, 2}, []float64{1, 2, 3, 4})
	in, _ := NewInput(x, "in")

	d, err := NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 2, Act: activations.Linear{}})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}

	// Identity weights, bias (1, -1), then rebuild under the same scope to
	// reuse them: out = x·I + b
	w := ctx.Trainable("dense")[0]
	copy(w.Value().Data(), []float64{1, 0, 0, 1})
	b := ctx.Trainable("dense")[1]
	copy(b.Value().Data(), []float64{1, -1})

	d, err = NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 2})
	if err != nil {
		t.Fatalf("NewDense reuse: %v", err)
	}

	want := []float64{2, 1, 4, 3}
	for i, v := range d.Output().Data() {
		if math.Abs(v-want[i]) > 1e-12 {
			t.Errorf("output[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestDenseOutputShapeAndParams(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.Zeros([]int{4, 10})
	in, _ := NewInput(x, "in")

	d, err := NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 3})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}
	if d.Output().Shape()[0] != 4 || d.Output().Shape()[1] != 3 {
		t.Errorf("output shape = %v, want [4 3]", d.Output().Shape())
	}
	if len(d.Params()) != 2 {
		t.Errorf("params = %d, want 2 (W, b)", len(d.Params()))
	}
	// 10*3 weights + 3 biases
	if d.NumParams() != 33 {
		t.Errorf("NumParams = %d, want 33", d.NumParams())
	}
}

func TestDenseActivationApplied(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.New([]int{1, 1}, []float64{2})
	in, _ := NewInput(x, "in")

	d, err := NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 1, Act: activations.Tanh{}})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}
	w := ctx.Trainable("dense")[0]
	copy(w.Value().Data(), []float64{1})
	d, _ = NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 1, Act: activations.Tanh{}})

	want := math.Tanh(2)
	if math.Abs(d.Output().Data()[0]-want) > 1e-12 {
		t.Errorf("output = %v, want %v", d.Output().Data()[0], want)
	}
}

func TestDenseMissingName(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.Zeros([]int{2, 2})
	in, _ := NewInput(x, "in")

	_, err := NewDense(ctx.Scope(""), in, Args{Units: 2})
	if !errors.Is(err, ErrMissingName) {
		t.Errorf("err = %v, want ErrMissingName", err)
	}
}

func TestDenseRejectsNon2DInput(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.Zeros([]int{2, 3, 4})
	in, _ := NewInput(x, "in")

	if _, err := NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 2}); err == nil {
		t.Error("expected error for 3-D input")
	}
}

func TestDenseChainBookkeeping(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.Zeros([]int{2, 4})
	in, _ := NewInput(x, "in")

	d1, err := NewDense(ctx.Scope(""), in, Args{Name: "d1", Units: 3})
	if err != nil {
		t.Fatal(err)
	}
	d2, err := NewDense(ctx.Scope(""), d1, Args{Name: "d2", Units: 2})
	if err != nil {
		t.Fatal(err)
	}

	// input output + two dense outputs
	if len(d2.AllOutputs()) != 3 {
		t.Errorf("AllOutputs = %d, want 3", len(d2.AllOutputs()))
	}
	// two dense layers, W and b each
	if len(d2.AllParams()) != 4 {
		t.Errorf("AllParams = %d, want 4", len(d2.AllParams()))
	}
}

func TestDenseString(t *testing.T) {
	ctx := scope.NewContext()
	x, _ := tensor.Zeros([]int{1, 2})
	in, _ := NewInput(x, "in")
	d, _ := NewDense(ctx.Scope(""), in, Args{Name: "dense", Units: 5, Act: activations.ReLU{}})

	want := "Dense dense: units: 5, act: relu"
	if d.String() != want {
		t.Errorf("String() = %q, want %q", d.String(), want)
	}
}
