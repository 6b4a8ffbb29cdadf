// Package filter provides second-order IIR sections and the band-limiting
// used to isolate the vocal range before pitch estimation.
package filter
