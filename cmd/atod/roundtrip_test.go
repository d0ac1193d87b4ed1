package main

import (
	"testing"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// A parse slower than the histogram's top bucket must still be counted
// there rather than vanishing from the latency report.
func TestRecordLatencyClamps(t *testing.T) {
	h := hdrhistogram.New(1, int64(10*time.Millisecond), 3)
	recordLatency(h, time.Second)
	if h.TotalCount() != 1 {
		t.Fatalf("expected the outlier to be recorded, total count %d", h.TotalCount())
	}
	if got := h.Max(); got < int64(9*time.Millisecond) {
		t.Errorf("expected the outlier in the top bucket, max %dns", got)
	}

	recordLatency(h, 3*time.Microsecond)
	if h.TotalCount() != 2 {
		t.Fatalf("in-range value not recorded, total count %d", h.TotalCount())
	}
}
