// Package latency measures how long each chunk takes to move from the audio
// callback through processing.
//
// A [Record] holds four optional values: the callback arrival time, the
// processing start and end times, and the input device latency reported by
// the audio backend. Derived durations are returned with an ok flag and are
// absent when the stamps they need are missing. All stamps are taken
// synchronously by the caller; nothing runs in the background.
package latency
