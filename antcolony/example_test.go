package antcolony_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/metatsp/antcolony"
	"github.com/katalvlaran/metatsp/tsp"
)

// ExampleEngine_Run primes the colony with a known tour of the 10×10 square.
func ExampleEngine_Run() {
	opts := antcolony.DefaultOptions()
	opts.Ants = 10
	opts.Iterations = 5
	opts.HintTour = tsp.Tour{0, 1, 2, 3}
	opts.Seed = 1

	e, _ := antcolony.New(square(), opts)
	res, _ := e.Run()
	fmt.Println(res.Distance, res.Tour[0])

	_, err := e.Run()
	fmt.Println(err)
	// Output:
	// 40 0
	// antcolony: engine already run
}

// ExamplePheromoneMatrix shows evaporation clamped at the floor.
func ExamplePheromoneMatrix() {
	ph, _ := antcolony.NewPheromoneMatrix(3, 1, 0.25)
	ph.DepositEdge(0, 1, 1)
	ph.Evaporate(0.5)
	fmt.Println(ph.At(0, 1), ph.At(1, 0), ph.At(1, 2))
	ph.Evaporate(0.9)
	fmt.Println(ph.Min())
	// Output:
	// 1 1 0.5
	// 0.25
}

func BenchmarkEngine_Run50(b *testing.B) {
	cs := randomCities(50, 1)
	opts := antcolony.DefaultOptions()
	opts.Iterations = 20
	opts.Seed = 1
	b.ReportAllocs()
	for b.Loop() {
		e, _ := antcolony.New(cs, opts)
		_, _ = e.Run()
	}
}

var _ tsp.ProgressSink = (*recorder)(nil)
