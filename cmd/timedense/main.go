package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/seqnet/seqnet/seqnet"
)

// Applies a Dense layer to every timestep of a (batch, time, feature) input
// with one shared weight set, either from built-in dimensions or from a YAML
// model file.
func main() {
	configPath := flag.String("config", "", "path to a YAML model description")
	flag.Parse()

	rand.Seed(42)

	if *configPath != "" {
		if err := runFromConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// batch 32, 20 timesteps, 100 features -> 50 features per timestep
	if err := run(32, 20, 100, seqnet.Args{Name: "dense", Units: 50}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFromConfig(path string) error {
	model, err := seqnet.LoadModel(path)
	if err != nil {
		return err
	}
	fmt.Printf("model %s\n", model.Name)
	for _, lc := range model.Layers {
		args, err := seqnet.ArgsFromMap(lc.Args)
		if err != nil {
			return err
		}
		if err := run(model.Input.Batch, model.Input.Steps, model.Input.Dim, args); err != nil {
			return err
		}
	}
	return nil
}

func run(batch, steps, dim int, args seqnet.Args) error {
	data := make([]float64, batch*steps*dim)
	for i := range data {
		data[i] = rand.Float64()*2 - 1
	}
	x, err := seqnet.NewTensor([]int{batch, steps, dim}, data)
	if err != nil {
		return err
	}

	ctx := seqnet.NewContext()
	in, err := seqnet.Input(x, "input")
	if err != nil {
		return err
	}
	fmt.Println(in)

	td, err := seqnet.TimeDistributed(ctx, in, seqnet.BuildDense, args, "time_dense")
	if err != nil {
		return err
	}
	fmt.Println(td)
	fmt.Printf("output shape: %v\n", td.Output().Shape())
	fmt.Print(seqnet.ParamReport(td))
	return nil
}
