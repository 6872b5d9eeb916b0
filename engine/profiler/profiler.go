package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-bas/common"
)

// Stats is a snapshot of the build counters.
type Stats struct {
	Builds    int
	Failures  int
	TotalTime time.Duration
	MaxTime   time.Duration
}

// MeanTime returns the average build duration, 0 when nothing was built.
func (s Stats) MeanTime() time.Duration {
	if s.Builds == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Builds)
}

// Profiler tracks material build rate, build durations and memory statistics.
// Outputs stats to the logger at a configurable interval. Safe for concurrent use.
type Profiler struct {
	mu             sync.Mutex
	stats          Stats
	intervalBuilds int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	logger         *slog.Logger
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - logger: where stats are written, common.Logger() when nil
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		logger:         logger,
	}
	// the first interval measures from here, not from process start
	runtime.ReadMemStats(&p.memStats)
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastGCCount = p.memStats.NumGC
	return p
}

// SetInterval changes how often stats are logged.
func (p *Profiler) SetInterval(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateInterval = d
}

// Record should be called once per material build with its duration and outcome.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: build rate, mean build time, heap usage, allocation rate and GC
// count/pause times.
//
// Parameters:
//   - d: how long the build took
//   - failed: whether the build returned an error
//
// Returns:
//   - bool: true if stats were logged by this call, false otherwise
func (p *Profiler) Record(d time.Duration, failed bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Builds++
	p.intervalBuilds++
	p.stats.TotalTime += d
	p.stats.MaxTime = max(p.stats.MaxTime, d)
	if failed {
		p.stats.Failures++
	}

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	// PauseNs is a circular buffer of the last 256 GC pauses
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	logger := p.logger
	if logger == nil {
		logger = common.Logger()
	}
	logger.Info("material build stats",
		"buildsPerSecond", float64(p.intervalBuilds)/elapsed.Seconds(),
		"meanBuild", p.stats.MeanTime(),
		"maxBuild", p.stats.MaxTime,
		"failures", p.stats.Failures,
		"heapMB", float64(p.memStats.Alloc)/1024/1024,
		"allocRateMBs", allocRateMB,
		"gc", gcCount,
		"maxPauseUs", maxPauseUs,
	)

	p.intervalBuilds = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Stats returns a snapshot of the counters since the profiler was created.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
