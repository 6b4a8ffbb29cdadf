package spectrum

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// transformer runs one fixed-size complex DFT in both directions.
// inverse must be normalized by 1/N.
type transformer interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

type fftPlan struct {
	plan *algofft.Plan[complex128]
}

func (p fftPlan) forward(dst, src []complex128) error {
	return p.plan.Forward(dst, src)
}

func (p fftPlan) inverse(dst, src []complex128) error {
	return p.plan.Inverse(dst, src)
}

// mixedRadixPlan serves sizes that are not a power of two.
type mixedRadixPlan struct {
	fft *fourier.CmplxFFT
	n   int
}

func (p mixedRadixPlan) forward(dst, src []complex128) error {
	p.fft.Coefficients(dst, src)
	return nil
}

func (p mixedRadixPlan) inverse(dst, src []complex128) error {
	p.fft.Sequence(dst, src)
	scale := complex(1/float64(p.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return nil
}

var plans sync.Map // int -> *sync.Pool

func planPool(n int) *sync.Pool {
	if p, ok := plans.Load(n); ok {
		return p.(*sync.Pool)
	}
	p, _ := plans.LoadOrStore(n, &sync.Pool{
		New: func() any { return newTransformer(n) },
	})
	return p.(*sync.Pool)
}

func newTransformer(n int) transformer {
	if isPowerOfTwo(n) {
		if plan, err := algofft.NewPlan64(n); err == nil {
			return fftPlan{plan: plan}
		}
	}
	return mixedRadixPlan{fft: fourier.NewCmplxFFT(n), n: n}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// run executes one transform of len(src) points using a pooled plan.
// A plan that fails is replaced by the mixed-radix fallback for that size.
func run(dst, src []complex128, inverse bool) {
	n := len(src)
	if n == 0 {
		return
	}
	pool := planPool(n)
	t := pool.Get().(transformer)

	if err := apply(t, dst, src, inverse); err != nil {
		t = mixedRadixPlan{fft: fourier.NewCmplxFFT(n), n: n}
		_ = apply(t, dst, src, inverse)
	}
	pool.Put(t)
}

func apply(t transformer, dst, src []complex128, inverse bool) error {
	if inverse {
		return t.inverse(dst, src)
	}
	return t.forward(dst, src)
}

// Backend names the transform implementation used for size n.
func Backend(n int) string {
	if n <= 0 {
		return "none"
	}
	pool := planPool(n)
	t := pool.Get().(transformer)
	defer pool.Put(t)

	switch t.(type) {
	case fftPlan:
		return "algo-fft"
	case mixedRadixPlan:
		return "gonum"
	default:
		return fmt.Sprintf("unknown(%T)", t)
	}
}
