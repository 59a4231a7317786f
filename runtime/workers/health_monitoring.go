package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthSample is one reading of the client process.
type HealthSample struct {
	CPUPercent    float64
	MemoryPercent float32
	Goroutines    int
	At            time.Time
}

// HealthMonitor samples the client process at a fixed interval and logs it.
type HealthMonitor struct {
	log      *slog.Logger
	interval time.Duration
	last     atomic.Pointer[HealthSample]
}

func NewHealthMonitor(log *slog.Logger, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{log: log, interval: interval}
}

func (w *HealthMonitor) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			w.sample(proc)
		}
	}
}

func (w *HealthMonitor) sample(proc *process.Process) {
	cpu, err := proc.CPUPercent()
	if err != nil {
		w.log.Error("Error while finding process cpu usage", "err", err)
		return
	}
	ram, err := proc.MemoryPercent()
	if err != nil {
		w.log.Error("Error while finding process ram usage", "err", err)
		return
	}
	s := HealthSample{CPUPercent: cpu, MemoryPercent: ram, Goroutines: runtime.NumGoroutine(), At: time.Now()}
	w.last.Store(&s)
	w.log.Debug("Process health", "cpu", cpu, "ram", ram, "goroutines", s.Goroutines)
}

// Last returns the latest sample, false before the first tick.
func (w *HealthMonitor) Last() (HealthSample, bool) {
	s := w.last.Load()
	if s == nil {
		return HealthSample{}, false
	}
	return *s, true
}
