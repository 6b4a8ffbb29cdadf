// Package gate attenuates stationary background noise in the frequency domain.
//
// A [SpectralGate] compares each DFT bin of its input against the matching bin
// of a recorded noise profile. Bins that fall below the noise level scaled by
// the threshold are attenuated with a soft gain proportional to how far below
// the threshold they are. Bins at or above the threshold, and bins without a
// noise reference, pass unchanged.
package gate
