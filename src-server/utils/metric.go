package utils

import (
	"time"
)

// FetchSample is one completed backend call of a view.
type FetchSample struct {
	Action  string
	Latency time.Duration
	Failed  bool
}

type Metric struct {
	FetchLatency       chan FetchSample
	DatabaseRead       chan float64
	DatabaseWrite      chan float64
	DiscordSendMessage chan float64
}

func NewMetric() *Metric {
	return &Metric{
		FetchLatency:       make(chan FetchSample, 64),
		DatabaseRead:       make(chan float64, 16),
		DatabaseWrite:      make(chan float64, 16),
		DiscordSendMessage: make(chan float64, 16),
	}
}

// ObserveFetch queues a fetch sample. Samples are dropped when nobody
// collects them.
func (m *Metric) ObserveFetch(action string, elapsed time.Duration, err error) {
	select {
	case m.FetchLatency <- FetchSample{Action: action, Latency: elapsed, Failed: err != nil}:
	default:
	}
}

// Observe queues a latency sample on ch without blocking.
func (m *Metric) Observe(ch chan float64, elapsed time.Duration) {
	select {
	case ch <- float64(elapsed.Microseconds()):
	default:
	}
}
