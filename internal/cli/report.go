package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/pitchgate/dsp/gate"
	"github.com/cwbudde/pitchgate/dsp/noise"
	"github.com/cwbudde/pitchgate/dsp/signal"
	"github.com/cwbudde/pitchgate/latency"
	"github.com/cwbudde/pitchgate/pipeline"
	"github.com/cwbudde/pitchgate/pitch"
	"github.com/cwbudde/pitchgate/stats/frequency"
)

// PrintResult prints one pitch row.
func PrintResult(w io.Writer, r pipeline.Result) {
	t := fmt.Sprintf("%8.3fs", r.Time.Seconds())
	if !r.Voiced {
		fmt.Fprintf(w, "%s  %s\n", t, UnvoicedStyle.Render(fmt.Sprintf("%9s  %-4s", "-", "N/A")))
		return
	}
	fmt.Fprintf(w, "%s  %s  %s  %s\n", t,
		ValueStyle.Render(fmt.Sprintf("%7.2fHz", r.Frequency)),
		ValueStyle.Render(fmt.Sprintf("%-4s", pitch.NoteName(r.Frequency))),
		KeyStyle.Render(fmt.Sprintf("%+5.1fc clarity %.2f", pitch.Cents(r.Frequency), r.Clarity)),
	)
}

// PrintTrack prints a header and one row per result.
func PrintTrack(w io.Writer, results []pipeline.Result) {
	fmt.Fprintln(w, SectionStyle.Render("Pitch track"))
	voiced := 0
	for _, r := range results {
		PrintResult(w, r)
		if r.Voiced {
			voiced++
		}
	}
	printKV(w, "Voiced windows:", fmt.Sprintf("%d/%d", voiced, len(results)))
}

// PrintGenerated describes a synthesized test file.
func PrintGenerated(w io.Writer, path string, wf signal.Waveform, baseHz float64) {
	fmt.Fprintln(w, SectionStyle.Render("Generated"))
	printKV(w, "File:", path)
	printKV(w, "Duration:", round(wf.Duration()))
	printKV(w, "Sample rate:", fmt.Sprintf("%d Hz", wf.SampleRate))
	printKV(w, "Pitch:", fmt.Sprintf("%.2f Hz (%s)", baseHz, pitch.NoteName(baseHz)))
}

// PrintSummary prints a latency summary.
func PrintSummary(w io.Writer, s latency.Summary) {
	fmt.Fprintln(w, SectionStyle.Render("Latency"))
	printKV(w, "Chunks:", s.Count)
	printKV(w, "Mean processing:", round(s.Mean()))
	printKV(w, "Max processing:", round(s.Max))
	if s.Budget > 0 {
		printKV(w, "Budget overruns:", fmt.Sprintf("%d (budget %v)", s.Overruns, round(s.Budget)))
	}
	if s.HasEndToEnd {
		printKV(w, "Last end-to-end:", round(s.LastEndToEnd))
	}
}

// PrintComparison prints the energy change caused by cleaning.
func PrintComparison(w io.Writer, c *gate.Comparison) {
	before, after := c.Stats()
	fmt.Fprintln(w, SectionStyle.Render("Cleaning"))
	printKV(w, "RMS before:", fmt.Sprintf("%.2f dB", before.RMS_dB))
	printKV(w, "RMS after:", fmt.Sprintf("%.2f dB", after.RMS_dB))
	printKV(w, "Energy retained:", fmt.Sprintf("%.1f%%", 100*c.EnergyRetained()))

	magBefore, magAfter := c.MagnitudeSpectra()
	n, sr := len(c.Before.Samples), float64(c.SampleRate())
	printKV(w, "Centroid:", fmt.Sprintf("%.1f Hz -> %.1f Hz",
		frequency.Centroid(magBefore, sr, n), frequency.Centroid(magAfter, sr, n)))
}

// PrintQuietReport prints the outcome of a quiet-segment search and, when a
// profile was built, its spectral shape.
func PrintQuietReport(w io.Writer, rep noise.QuietReport, sampleRate uint32, desc *frequency.Stats) {
	fmt.Fprintln(w, SectionStyle.Render("Noise profile"))
	at := func(n int) time.Duration {
		if sampleRate == 0 {
			return 0
		}
		return time.Duration(float64(n) / float64(sampleRate) * float64(time.Second))
	}
	printKV(w, "Candidate:", fmt.Sprintf("%v - %v", round(at(rep.Start)), round(at(rep.End))))
	printKV(w, "Chunks:", rep.Chunks)
	printKV(w, "Candidate RMS:", fmt.Sprintf("%.5f", rep.CandidateRMS))
	printKV(w, "Mean / std RMS:", fmt.Sprintf("%.5f / %.5f", rep.MeanRMS, rep.StdDevRMS))
	printKV(w, "Z-score:", fmt.Sprintf("%.2f", rep.ZScore))
	if !rep.Found {
		fmt.Fprintln(w, ErrorStyle.Render("No quiet segment found"))
		return
	}
	printKV(w, "Quiet segment:", "found")
	if desc == nil {
		return
	}
	printKV(w, "Peak:", fmt.Sprintf("%.1f Hz", desc.PeakHz))
	printKV(w, "Centroid:", fmt.Sprintf("%.1f Hz", desc.Centroid))
	printKV(w, "Flatness:", fmt.Sprintf("%.3f", desc.Flatness))
	printKV(w, "Rolloff:", fmt.Sprintf("%.1f Hz", desc.Rolloff))
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}
