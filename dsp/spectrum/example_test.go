package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/pitchgate/dsp/spectrum"
)

func ExampleForward() {
	s := spectrum.Forward([]float32{1, 1, 1, 1})

	fmt.Printf("bins=%d mags=%.1f\n", s.Len(), s.Magnitudes())
	fmt.Printf("%.1f\n", s.Inverse())

	// Output:
	// bins=4 mags=[4.0 0.0]
	// [1.0 1.0 1.0 1.0]
}
