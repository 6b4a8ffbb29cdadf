// Package pitch estimates the fundamental frequency of analysis windows and
// assembles the estimates into a time series.
//
// An [Estimator] is the per-window capability. [YIN] is the bundled
// implementation. A [Tracker] frames a waveform and applies a [Detector] to
// every window, keeping an explicit voiced flag per point so that "no pitch"
// is never confused with a 0 Hz estimate.
package pitch
