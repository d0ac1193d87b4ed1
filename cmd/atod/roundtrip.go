package main

import (
	"fmt"
	"io"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"

	"github.com/kiyot/atod"
)

var roundtripArgs = struct {
	Precision int
	Middles   int
	Step      uint64
	Samples   int64
}{}

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Brute-force round-trip test over the binary64 space.",
	Long: "Enumerates bit patterns over every sign/exponent combination with a mix of\n" +
		"fixed and pseudo-random fraction bits, formats each value as a decimal\n" +
		"literal, parses it back, and verifies the bit pattern (cross-checking\n" +
		"strconv.ParseFloat). Parse latencies of both parsers are recorded in HDR\n" +
		"histograms and reported at the end.",
	Args: cobra.NoArgs,
	RunE: commandRoundtrip,
}

func init() {
	roundtripCmd.Flags().IntVar(&roundtripArgs.Precision, "precision", 340,
		"fractional digits used to format each value; 340 and up means bit-exact comparison")
	roundtripCmd.Flags().IntVar(&roundtripArgs.Middles, "middles", 16,
		"fraction middle-bit variants per leading/trailing combination")
	roundtripCmd.Flags().Uint64Var(&roundtripArgs.Step, "step", 1,
		"stride through the 4096 sign/exponent combinations")
	roundtripCmd.Flags().Int64Var(&roundtripArgs.Samples, "samples", 0,
		"print one sample line every N tests (0 disables)")
	rootCmd.AddCommand(roundtripCmd)
}

// from https://en.wikipedia.org/wiki/Xorshift
func xorshift64(state *uint64) uint64 {
	x := *state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*state = x
	return x
}

// bitExactPrecision is the number of fractional digits at which the
// decimal expansion pins down every finite binary64 exactly.
const bitExactPrecision = 340

const (
	leadingBits  = 4
	trailingBits = 4
	fracBits     = 52
	signMask     = uint64(1) << 63
)

func formatValue(u uint64, prec int) string {
	f := math.Float64frombits(u)
	switch {
	case math.IsNaN(f):
		if u&signMask != 0 {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

func commandRoundtrip(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	prec := roundtripArgs.Precision

	ours := hdrhistogram.New(1, int64(10*time.Millisecond), 3)
	theirs := hdrhistogram.New(1, int64(10*time.Millisecond), 3)

	state := uint64(1) // xorshift state must be non-zero
	var tests, fails int64

	for signexp := uint64(0); signexp < 4096; signexp += roundtripArgs.Step {
		for lead := uint64(0); lead < 1<<leadingBits; lead++ {
			for trail := uint64(0); trail < 1<<trailingBits; trail++ {
				for mid := 0; mid < roundtripArgs.Middles; mid++ {
					var middle uint64
					switch mid {
					case 0:
						middle = 0
					case 1:
						middle = ^uint64(0)
					default:
						middle = xorshift64(&state)
					}
					middle >>= (64 - fracBits) + leadingBits + trailingBits

					frac := lead<<(fracBits-leadingBits) | middle<<trailingBits | trail
					u := signexp<<fracBits | frac

					if !roundtripOne(out, u, prec, ours, theirs) {
						fails++
					}
					tests++
					if roundtripArgs.Samples > 0 && tests%roundtripArgs.Samples == 0 {
						fmt.Fprintf(out, "sample(%9d): 0x%016x = %g\n", tests, u, math.Float64frombits(u))
					}
				}
			}
		}
	}

	fmt.Fprintf(out, "\nthis parser:\n")
	printHistogram(out, ours)
	fmt.Fprintf(out, "strconv.ParseFloat:\n")
	printHistogram(out, theirs)

	fmt.Fprintf(out, "\ncompleted %d tests, %d failed\n", tests, fails)
	if fails > 0 {
		return fmt.Errorf("%d of %d round-trips failed", fails, tests)
	}
	return nil
}

func roundtripOne(out io.Writer, u uint64, prec int, ours, theirs *hdrhistogram.Histogram) bool {
	in := formatValue(u, prec)

	start := time.Now()
	result, err := atod.Parse(in)
	recordLatency(ours, time.Since(start))

	start = time.Now()
	reference, refErr := strconv.ParseFloat(in, 64)
	recordLatency(theirs, time.Since(start))

	if err != nil {
		fmt.Fprintf(out, "FAILED 0x%016x: parse error: %v (input %.60q)\n", u, err, in)
		return false
	}

	got := math.Float64bits(result)
	orig := math.Float64frombits(u)

	if math.IsNaN(orig) {
		// all NaN payloads collapse to the canonical pattern
		if !math.IsNaN(result) {
			fmt.Fprintf(out, "FAILED 0x%016x: expected nan, got 0x%016x\n", u, got)
			return false
		}
		return true
	}

	if prec >= bitExactPrecision {
		if got != u {
			fmt.Fprintf(out, "FAILED 0x%016x: round-trip gave 0x%016x (input %.60q)\n", u, got, in)
			return false
		}
		if refErr == nil && got != math.Float64bits(reference) {
			fmt.Fprintf(out, "FAILED 0x%016x: disagreement with strconv: 0x%016x vs 0x%016x\n",
				u, got, math.Float64bits(reference))
			return false
		}
		return true
	}

	// at reduced precision compare the re-formatted text instead
	if back := formatValue(got, prec); back != in {
		fmt.Fprintf(out, "FAILED 0x%016x: %.60q reparsed as %.60q\n", u, in, back)
		return false
	}
	return true
}

// recordLatency clamps d to the histogram range first, so an outlier
// slower than the top bucket still shows up there instead of being
// dropped from the report.
func recordLatency(h *hdrhistogram.Histogram, d time.Duration) {
	v := int64(d)
	if v > h.HighestTrackableValue() {
		v = h.HighestTrackableValue()
	}
	if err := h.RecordValue(v); err != nil {
		panic(err) // unreachable after the clamp
	}
}

func printHistogram(out io.Writer, h *hdrhistogram.Histogram) {
	for _, q := range []float64{50, 90, 99, 99.9} {
		fmt.Fprintf(out, "  p%-5v %8dns\n", q, h.ValueAtQuantile(q))
	}
	fmt.Fprintf(out, "  mean  %10.1fns\n", h.Mean())
	fmt.Fprintf(out, "  max   %8dns\n", h.Max())

	// log-scale latency distribution
	var bins [64]int64
	var peak int64
	for _, b := range h.Distribution() {
		if b.Count == 0 {
			continue
		}
		k := bits.Len64(uint64(b.To))
		bins[k] += b.Count
		if bins[k] > peak {
			peak = bins[k]
		}
	}
	for k, n := range bins {
		if n == 0 {
			continue
		}
		fmt.Fprintf(out, "  <%8dns %-50s %d\n",
			int64(1)<<uint(k), strings.Repeat("#", int(n*50/peak)), n)
	}
}
