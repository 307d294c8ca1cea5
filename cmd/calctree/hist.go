package main

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/olekukonko/tablewriter"
)

const (
	minLatency = 10 * time.Nanosecond
	maxLatency = 10 * time.Second
)

func clampLatency(d, min, max time.Duration) time.Duration {
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 2)
}

// latencies collects per-strategy evaluation latencies.
type latencies struct {
	names []string
	hists map[string]*hdrhistogram.Histogram
	// results holds the formatted result or error of each strategy's last run.
	results map[string]string
}

func newLatencies() *latencies {
	return &latencies{
		hists:   make(map[string]*hdrhistogram.Histogram),
		results: make(map[string]string),
	}
}

func (l *latencies) record(name string, elapsed time.Duration) {
	h, ok := l.hists[name]
	if !ok {
		h = newHistogram()
		l.hists[name] = h
		l.names = append(l.names, name)
	}
	if err := h.RecordValue(clampLatency(elapsed, minLatency, maxLatency).Nanoseconds()); err != nil {
		panic(err)
	}
}

func (l *latencies) setResult(name, result string) {
	l.results[name] = result
}

// render writes a table of each strategy's result and latency quantiles.
func (l *latencies) render(w io.Writer) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Strategy", "Result", "Runs", "p50", "p99", "Max"})
	for _, name := range l.names {
		h := l.hists[name]
		tbl.Append([]string{
			name,
			l.results[name],
			fmt.Sprintf("%d", h.TotalCount()),
			time.Duration(h.ValueAtQuantile(50)).String(),
			time.Duration(h.ValueAtQuantile(99)).String(),
			time.Duration(h.Max()).String(),
		})
	}
	tbl.Render()
}
