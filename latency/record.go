package latency

import "time"

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Record.
type Option func(*Record)

// WithClock sets the clock used by the Mark methods.
func WithClock(c Clock) Option {
	return func(r *Record) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithCallbackArrival presets the callback arrival time.
func WithCallbackArrival(t time.Time) Option {
	return func(r *Record) {
		r.arrival = t
		r.hasArrival = true
	}
}

// Record holds the timestamps of one chunk. The zero value is usable and
// reads the wall clock. Record is not safe for concurrent use.
type Record struct {
	clock Clock

	arrival    time.Time
	start      time.Time
	end        time.Time
	device     time.Duration
	hasArrival bool
	hasStart   bool
	hasEnd     bool
	hasDevice  bool
}

// NewRecord returns an empty record.
func NewRecord(opts ...Option) *Record {
	r := &Record{clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Record) now() time.Time {
	if r.clock == nil {
		return time.Now()
	}
	return r.clock()
}

// MarkCallbackArrival stamps the arrival of the chunk.
func (r *Record) MarkCallbackArrival() {
	r.arrival = r.now()
	r.hasArrival = true
}

// MarkProcessingStart stamps the start of processing.
func (r *Record) MarkProcessingStart() {
	r.start = r.now()
	r.hasStart = true
}

// MarkProcessingEnd stamps the end of processing.
func (r *Record) MarkProcessingEnd() {
	r.end = r.now()
	r.hasEnd = true
}

// SetInputDeviceLatency records the latency reported by the input device.
func (r *Record) SetInputDeviceLatency(d time.Duration) {
	r.device = d
	r.hasDevice = true
}

// CallbackArrival returns the arrival stamp.
func (r *Record) CallbackArrival() (time.Time, bool) {
	return r.arrival, r.hasArrival
}

// ProcessingStart returns the processing start stamp.
func (r *Record) ProcessingStart() (time.Time, bool) {
	return r.start, r.hasStart
}

// ProcessingEnd returns the processing end stamp.
func (r *Record) ProcessingEnd() (time.Time, bool) {
	return r.end, r.hasEnd
}

// InputDeviceLatency returns the device latency.
func (r *Record) InputDeviceLatency() (time.Duration, bool) {
	return r.device, r.hasDevice
}

// ProcessingDuration returns end - start when both are stamped.
func (r *Record) ProcessingDuration() (time.Duration, bool) {
	if !r.hasStart || !r.hasEnd {
		return 0, false
	}
	return r.end.Sub(r.start), true
}

// TotalLatency returns processing end - callback arrival when both are
// stamped.
func (r *Record) TotalLatency() (time.Duration, bool) {
	if !r.hasArrival || !r.hasEnd {
		return 0, false
	}
	return r.end.Sub(r.arrival), true
}

// EndToEndLatency returns TotalLatency plus the device latency. When only one
// of the two is known it is returned alone.
func (r *Record) EndToEndLatency() (time.Duration, bool) {
	total, okTotal := r.TotalLatency()
	switch {
	case okTotal && r.hasDevice:
		return total + r.device, true
	case okTotal:
		return total, true
	case r.hasDevice:
		return r.device, true
	default:
		return 0, false
	}
}
