package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitor_Samples(t *testing.T) {
	req := require.New(t)
	monitor := NewHealthMonitor(logs.GetLoggerFromLevel(slog.LevelDebug), 10*time.Millisecond)

	// Given no tick happened
	_, ok := monitor.Last()
	req.False(ok)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	// Then a sample shows up
	req.Eventually(func() bool {
		_, ok := monitor.Last()
		return ok
	}, 400*time.Millisecond, 10*time.Millisecond)

	sample, _ := monitor.Last()
	req.Positive(sample.Goroutines)

	cancel()
	req.NoError(<-done)
}
