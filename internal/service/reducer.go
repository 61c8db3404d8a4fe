package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gowave/internal/domain"
	"github.com/tejashwikalptaru/gowave/internal/render"
)

// DefaultDebounce is the quiet period a resize must keep before the
// waveform is reduced again.
const DefaultDebounce = 250 * time.Millisecond

// ReduceJob is one reduction request.
type ReduceJob struct {
	Samples  []float32
	Width    int
	Height   int
	BarWidth int
	Gap      int
}

// ReduceResult is a finished reduction. Generation identifies the request.
type ReduceResult struct {
	Bars       []domain.Bar
	Generation uint64
	Job        ReduceJob
}

// Reducer runs render.ReduceBarsContext on a background goroutine.
//
// It keeps a single pending slot: a newer request replaces a pending one and
// cancels the one being reduced, so only the latest result is delivered.
// Results are handed to the apply callback on the worker goroutine.
type Reducer struct {
	logger   *slog.Logger
	apply    func(ReduceResult)
	debounce time.Duration

	mu         sync.Mutex
	generation uint64
	pending    *ReduceJob
	pendingGen uint64
	cancel     context.CancelFunc
	closed     bool

	// Debounced job waiting on timer; only the one tagged debounceSeq may fire
	timer       *time.Timer
	debounceSeq uint64

	wake   chan struct{}
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewReducer starts the worker. A non-positive debounce uses DefaultDebounce.
func NewReducer(logger *slog.Logger, debounce time.Duration, apply func(ReduceResult)) *Reducer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	r := &Reducer{
		logger:   logger.With(slog.String("service", "reducer")),
		apply:    apply,
		debounce: debounce,
		wake:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// Submit queues a job for immediate reduction and returns its generation.
// It supersedes any debounced job still waiting. It returns 0 once the
// reducer is closed.
func (r *Reducer) Submit(job ReduceJob) uint64 {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0
	}
	r.stopTimerLocked()
	gen := r.queueLocked(job)
	r.mu.Unlock()

	r.notify()
	return gen
}

// SubmitDebounced queues a job once no other job arrived for the debounce
// period.
func (r *Reducer) SubmitDebounced(job ReduceJob) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.stopTimerLocked()
	seq := r.debounceSeq
	r.timer = time.AfterFunc(r.debounce, func() {
		r.fire(seq, job)
	})
}

// fire queues a debounced job unless a newer request replaced it while the
// timer was firing.
func (r *Reducer) fire(seq uint64, job ReduceJob) {
	r.mu.Lock()
	if r.closed || seq != r.debounceSeq {
		r.mu.Unlock()
		return
	}
	r.debounceSeq++
	r.timer = nil
	r.queueLocked(job)
	r.mu.Unlock()

	r.notify()
}

// stopTimerLocked invalidates the waiting debounced job, including one whose
// timer already fired.
func (r *Reducer) stopTimerLocked() {
	r.debounceSeq++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Reducer) queueLocked(job ReduceJob) uint64 {
	r.generation++
	r.pending = &job
	r.pendingGen = r.generation
	if r.cancel != nil {
		r.cancel()
	}
	return r.generation
}

func (r *Reducer) notify() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Latest returns the generation of the newest request.
func (r *Reducer) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

func (r *Reducer) run() {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.wake:
		}

		r.mu.Lock()
		job, gen := r.pending, r.pendingGen
		r.pending = nil
		if job == nil || r.closed {
			r.mu.Unlock()
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		r.cancel = cancel
		r.mu.Unlock()

		start := time.Now()
		bars, err := render.ReduceBarsContext(ctx, job.Samples, job.Height, job.Width, job.BarWidth, job.Gap)
		cancel()

		r.mu.Lock()
		r.cancel = nil
		stale := gen != r.generation || r.closed
		r.mu.Unlock()

		switch {
		case errors.Is(err, context.Canceled):
			r.logger.Debug("reduction superseded", slog.Uint64("generation", gen))
			continue
		case err != nil:
			r.logger.Warn("reduction failed",
				slog.Uint64("generation", gen),
				slog.Int("width", job.Width),
				slog.Any("error", err))
			continue
		case stale:
			r.logger.Debug("dropping stale reduction", slog.Uint64("generation", gen))
			continue
		}

		r.logger.Debug("reduction finished",
			slog.Uint64("generation", gen),
			slog.Int("bars", len(bars)),
			slog.Duration("took", time.Since(start)))
		r.apply(ReduceResult{Bars: bars, Generation: gen, Job: *job})
	}
}

// Close cancels pending work and waits for the worker to exit.
func (r *Reducer) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.pending = nil
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
}
