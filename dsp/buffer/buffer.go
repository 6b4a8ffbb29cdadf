package buffer

// Buffer is a FIFO of float32 samples with reuse-friendly semantics.
// It is not safe for concurrent use.
type Buffer struct {
	samples []float32
}

// New returns an empty Buffer with room for capacity samples.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{samples: make([]float32, 0, capacity)}
}

// Samples returns the buffered samples. The slice is only valid until the
// next Append or Discard.
func (b *Buffer) Samples() []float32 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Grow ensures capacity is at least n, preserving existing data.
// If the current capacity is already >= n this is a no-op.
func (b *Buffer) Grow(n int) {
	if n <= cap(b.samples) {
		return
	}
	grown := make([]float32, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Append adds chunk at the tail.
func (b *Buffer) Append(chunk []float32) {
	b.Grow(len(b.samples) + len(chunk))
	b.samples = append(b.samples, chunk...)
}

// Discard drops up to n samples from the head and returns how many were
// dropped. Remaining samples are moved to the front of the backing array.
func (b *Buffer) Discard(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(b.samples) {
		n = len(b.samples)
		b.samples = b.samples[:0]
		return n
	}
	kept := copy(b.samples, b.samples[n:])
	b.samples = b.samples[:kept]
	return n
}

// CopyHead copies the first len(dst) samples into dst and returns the count.
func (b *Buffer) CopyHead(dst []float32) int {
	return copy(dst, b.samples)
}

// Reset empties the buffer and keeps its capacity.
func (b *Buffer) Reset() {
	b.samples = b.samples[:0]
}
