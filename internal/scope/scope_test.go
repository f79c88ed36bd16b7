package scope

import (
	"testing"
)

func TestVarCreateThenReuse(t *testing.T) {
	ctx := NewContext()
	sc := ctx.Scope("td")

	w1, err := sc.Var("W", []int{3, 2}, Xavier)
	if err != nil {
		t.Fatalf("Var create: %v", err)
	}
	w2, err := sc.Var("W", []int{3, 2}, Xavier)
	if err != nil {
		t.Fatalf("Var reuse: %v", err)
	}

	// Reuse must return the identical parameter, not a fresh allocation
	if w1 != w2 {
		t.Error("reuse returned a different Param")
	}
	if w1.Value() != w2.Value() {
		t.Error("reuse returned a different tensor")
	}
	if len(ctx.Trainable("td")) != 1 {
		t.Errorf("Trainable count = %d, want 1", len(ctx.Trainable("td")))
	}
}

func TestVarReuseShapeMismatch(t *testing.T) {
	ctx := NewContext()
	sc := ctx.Scope("td")

	if _, err := sc.Var("W", []int{3, 2}, nil); err != nil {
		t.Fatalf("Var: %v", err)
	}
	if _, err := sc.Var("W", []int{3, 5}, nil); err == nil {
		t.Error("expected shape mismatch error on reuse")
	}
	if _, err := sc.Var("W", []int{3, 2, 1}, nil); err == nil {
		t.Error("expected rank mismatch error on reuse")
	}
}

func TestVarEmptyName(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.Scope("td").Var("", []int{1}, nil); err == nil {
		t.Error("expected error for empty variable name")
	}
}

func TestSubScopeNaming(t *testing.T) {
	ctx := NewContext()
	sub := ctx.Scope("time_dense").Sub("dense")

	p, err := sub.Var("W", []int{2, 2}, nil)
	if err != nil {
		t.Fatalf("Var: %v", err)
	}
	if p.Name() != "time_dense/dense/W" {
		t.Errorf("Name() = %q, want %q", p.Name(), "time_dense/dense/W")
	}

	// Root scope does not prefix
	root, err := ctx.Scope("").Var("b", []int{2}, nil)
	if err != nil {
		t.Fatalf("Var: %v", err)
	}
	if root.Name() != "b" {
		t.Errorf("Name() = %q, want %q", root.Name(), "b")
	}
}

func TestTrainablePrefixBoundary(t *testing.T) {
	ctx := NewContext()
	if _, err := ctx.Scope("td").Var("W", []int{2, 2}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Scope("td2").Var("W", []int{2, 2}, nil); err != nil {
		t.Fatal(err)
	}

	// "td" must not match "td2/W"
	got := ctx.Trainable("td")
	if len(got) != 1 || got[0].Name() != "td/W" {
		t.Errorf("Trainable(td) = %v params, want exactly td/W", len(got))
	}
	if len(ctx.Trainable("")) != 2 {
		t.Errorf("Trainable(\"\") = %d params, want 2", len(ctx.Trainable("")))
	}
	if len(ctx.Trainable("missing")) != 0 {
		t.Error("Trainable(missing) should be empty")
	}
}

func TestTrainableCreationOrder(t *testing.T) {
	ctx := NewContext()
	sc := ctx.Scope("s")
	names := []string{"W", "b", "g"}
	for _, n := range names {
		if _, err := sc.Var(n, []int{1}, nil); err != nil {
			t.Fatal(err)
		}
	}
	for i, p := range ctx.Trainable("s") {
		if p.Name() != "s/"+names[i] {
			t.Errorf("param %d = %q, want %q", i, p.Name(), "s/"+names[i])
		}
	}
}

func TestNumParams(t *testing.T) {
	ctx := NewContext()
	sc := ctx.Scope("time_dense").Sub("dense")
	if _, err := sc.Var("W", []int{100, 50}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := sc.Var("b", []int{50}, nil); err != nil {
		t.Fatal(err)
	}
	if got := ctx.NumParams("time_dense"); got != 5050 {
		t.Errorf("NumParams = %d, want 5050", got)
	}
}

func TestXavierRange(t *testing.T) {
	data := Xavier([]int{100, 50})
	if len(data) != 5000 {
		t.Fatalf("len = %d, want 5000", len(data))
	}
	// Glorot-uniform bound for fanIn=100, fanOut=50
	bound := 0.11548
	for i, v := range data {
		if v < -bound || v > bound {
			t.Errorf("data[%d] = %v outside [-%v, %v]", i, v, bound, bound)
			break
		}
	}
}
