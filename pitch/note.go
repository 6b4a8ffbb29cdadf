package pitch

import (
	"fmt"
	"math"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ReferenceA4 is the tuning reference in Hz.
const ReferenceA4 = 440.0

// MIDINote returns the nearest MIDI note number for hz.
func MIDINote(hz float64) (int, bool) {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return 0, false
	}
	return int(math.Round(69 + 12*math.Log2(hz/ReferenceA4))), true
}

// NoteName returns the nearest equal-tempered note name with octave, such as
// "A4" or "C#3". Non-positive frequencies give "N/A".
func NoteName(hz float64) string {
	midi, ok := MIDINote(hz)
	if !ok {
		return "N/A"
	}
	octave := floorDiv(midi, 12) - 1
	return fmt.Sprintf("%s%d", noteNames[mod(midi, 12)], octave)
}

// Cents returns how far hz is from its nearest note in cents, in [-50, 50].
func Cents(hz float64) float64 {
	midi, ok := MIDINote(hz)
	if !ok {
		return 0
	}
	exact := 69 + 12*math.Log2(hz/ReferenceA4)
	return (exact - float64(midi)) * 100
}

// NoteFrequency returns the equal-tempered frequency of a MIDI note.
func NoteFrequency(midi int) float64 {
	return ReferenceA4 * math.Pow(2, float64(midi-69)/12)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
