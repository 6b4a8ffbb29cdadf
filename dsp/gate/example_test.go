package gate_test

import (
	"fmt"

	"github.com/cwbudde/pitchgate/dsp/gate"
	"github.com/cwbudde/pitchgate/dsp/noise"
	"github.com/cwbudde/pitchgate/dsp/signal"
)

func ExampleSpectralGate_Process() {
	noiseFloor := make([]float32, 8)
	for i := range noiseFloor {
		noiseFloor[i] = 0.1
	}
	profile, err := noise.NewProfile(signal.Waveform{Samples: noiseFloor, SampleRate: 8000})
	if err != nil {
		panic(err)
	}

	g, err := gate.New(profile, gate.Config{ThresholdDB: 0, SmoothingWindow: 1})
	if err != nil {
		panic(err)
	}

	quiet := []float32{0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05}
	fmt.Printf("%.3f\n", g.Process(quiet))

	// Output:
	// [0.025 0.025 0.025 0.025 0.025 0.025 0.025 0.025]
}
