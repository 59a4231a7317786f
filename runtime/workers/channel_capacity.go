package workers

import (
	"context"
	"log/slog"
	"reflect"
	"sync/atomic"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

type ChannelCapacity struct {
	Name     string
	Capacity int
	Length   int
}

// ChannelCapacityWorker periodically samples the length and capacity of the session channels.
// Reading len and cap is non-blocking so it never slows the pipeline down.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	metricInterval time.Duration
	last           atomic.Pointer[[]ChannelCapacity]
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel, metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{log: log, channels: channels, metricInterval: metricInterval}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	w.sample()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *ChannelCapacityWorker) sample() {
	samples := make([]ChannelCapacity, 0, len(w.channels))
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		sample := ChannelCapacity{Name: nc.Name, Capacity: v.Cap(), Length: v.Len()}
		if sample.Capacity > 0 && sample.Length == sample.Capacity {
			w.log.Warn("Channel is full, producers are blocked", "name", nc.Name, "capacity", sample.Capacity)
		}
		samples = append(samples, sample)
	}
	w.last.Store(&samples)
}

// Last returns the latest samples, nil before the first tick.
func (w *ChannelCapacityWorker) Last() []ChannelCapacity {
	samples := w.last.Load()
	if samples == nil {
		return nil
	}
	return *samples
}
