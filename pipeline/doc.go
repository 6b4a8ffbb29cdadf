// Package pipeline connects the streaming pieces: chunks of audio are framed
// into analysis windows, cleaned by the spectral gate or the vocal bandpass,
// handed to a pitch estimator and returned as timestamped results.
//
// A Pipeline owns its framer, gate and filter state and is driven from a
// single goroutine. Processing of one chunk is synchronous; [Pipeline.Run]
// reads the next chunk only after the previous one is done.
package pipeline
