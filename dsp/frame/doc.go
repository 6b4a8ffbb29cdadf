// Package frame cuts sample streams into fixed-length, possibly overlapping
// analysis windows.
//
// Window k starts at sample k*step and spans window samples. Only complete
// windows are produced: a trailing partial window is dropped and a buffer
// shorter than one window yields nothing. When step exceeds window the gap
// between windows is skipped.
//
// [Iterator] walks a finished buffer once. [Stream] produces the same windows
// from live chunks as they arrive.
package frame
