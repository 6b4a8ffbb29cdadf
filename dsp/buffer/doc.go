// Package buffer provides a growable float32 sample accumulator for
// streaming input. Chunks are appended at the tail and consumed samples are
// discarded from the head, so memory stays bounded by the largest backlog.
package buffer
