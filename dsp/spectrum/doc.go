// Package spectrum converts between time-domain sample blocks and their full
// complex discrete Fourier spectra.
//
// A [Spectrum] holds N complex bins for an N-sample input. Its inverse is
// normalized by 1/N, so Forward followed by Inverse reproduces the input up
// to floating-point error. Power-of-two sizes run on algo-fft plans. Other
// sizes fall back to gonum's mixed-radix transform. Plans are pooled per size
// and transforms are safe for concurrent use.
package spectrum
