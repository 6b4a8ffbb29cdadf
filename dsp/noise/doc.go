// Package noise captures background-noise spectra and locates quiet stretches
// of a recording to build them from.
//
// A [Profile] is the full complex spectrum of a noise-only sample block. The
// spectral gate compares incoming bins against the profile's magnitudes.
// [FindQuietSegment] picks a candidate region near the start of a recording
// and accepts it only when its loudness is well below the recording's typical
// loudness.
package noise
