// Package refresh runs background reload jobs so frequently viewed
// collections (home feed, explore page one) are warm when a screen gains
// focus.
package refresh

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval is used for jobs registered without one.
const DefaultInterval = 2 * time.Minute

// Job is one periodic reload.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Manager owns one goroutine per registered job. Call Stop to shut down
// gracefully; in-flight runs finish first.
type Manager struct {
	mu   sync.Mutex
	jobs []Job

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewManager() *Manager {
	return &Manager{}
}

// Register adds a job. Must be called before Start.
func (m *Manager) Register(job Job) {
	if job.Interval <= 0 {
		job.Interval = DefaultInterval
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
}

// Start launches the job goroutines. Each runs once immediately, then on
// its interval.
func (m *Manager) Start(ctx context.Context) {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.mu.Lock()
	jobs := make([]Job, len(m.jobs))
	copy(jobs, m.jobs)
	m.mu.Unlock()

	log.Printf("[Refresh] Starting %d background jobs", len(jobs))

	for _, job := range jobs {
		m.wg.Add(1)
		go m.run(job)
	}
}

// Stop cancels every job and waits for them to exit.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.wg.Wait()
	log.Println("[Refresh] All background jobs stopped")
}

func (m *Manager) run(job Job) {
	defer m.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	m.runOnce(job)
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.runOnce(job)
		}
	}
}

func (m *Manager) runOnce(job Job) {
	start := time.Now()
	if err := job.Run(m.ctx); err != nil {
		if m.ctx.Err() != nil {
			return
		}
		log.Printf("[Refresh] Job %s FAILED: %v", job.Name, err)
		return
	}
	log.Printf("[Refresh] Job %s OK: duration=%v", job.Name, time.Since(start))
}
