// Package rrt implements the Resilient Reactor Thread (C8): a supervised
// background worker with bounded-restart semantics, broadcasting events to
// any number of subscribers.
package rrt

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jpillora/backoff"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Continuation is returned by Worker.PollOnce to tell the reactor what to
// do next.
type Continuation int

const (
	Continue Continuation = iota
	Restart
	Stop
)

// ShutdownKind tags why the reactor terminated.
type ShutdownKind int

const (
	ShutdownStop ShutdownKind = iota
	ShutdownPanic
	ShutdownRestartPolicyExhausted
)

// ShutdownReason describes a terminal exit.
type ShutdownReason struct {
	Kind     ShutdownKind
	Attempts int
}

// Worker is polled repeatedly by the reactor loop; E is the event type it
// publishes to subscribers via tx.
type Worker[E any] interface {
	PollOnce(tx chan<- E) Continuation
}

// Waker is held alongside a running Worker. Close must be safe to call
// more than once and from any goroutine.
type Waker interface {
	Close()
}

// Factory creates a fresh Worker/Waker pair. Create can fail transiently
// (e.g. resource exhaustion); the reactor retries it under the restart
// policy.
type Factory[E any] interface {
	Create() (Worker[E], Waker, error)
}

// RestartPolicy controls retry budget and backoff.
type RestartPolicy struct {
	MaxRestarts       int
	InitialDelay      time.Duration
	BackoffMultiplier float64
	MaxDelay          time.Duration
}

// Liveness is the reactor's externally observable lifecycle state.
type Liveness int32

const (
	NotStarted Liveness = iota
	Running
	Terminated
)

// Event is published to subscribers: either a worker-produced value, or a
// terminal Shutdown notice. GenerationID identifies which reactor generation
// produced the event: a new ID is minted each time Subscribe starts a new
// generation, while worker restarts within one generation keep the same ID.
type Event[E any] struct {
	Value        E
	HasValue     bool
	Shutdown     *ShutdownReason
	GenerationID uuid.UUID
}

const defaultSubscriberBuffer = 32

// RRT is the Resilient Reactor Thread.
type RRT[E any] struct {
	factory Factory[E]
	policy  RestartPolicy
	log     *zap.SugaredLogger

	generation int64
	liveness   int32

	mu           sync.Mutex
	waker        Waker
	subscribers  []chan Event[E]
	currentGenID uuid.UUID
}

// New creates an RRT. The worker is not started until the first Subscribe.
func New[E any](factory Factory[E], policy RestartPolicy) *RRT[E] {
	return &RRT[E]{
		factory:  factory,
		policy:   policy,
		liveness: int32(NotStarted),
		log:      zap.NewNop().Sugar(),
	}
}

// SetLogger installs the logger used for restart/shutdown diagnostics.
func (r *RRT[E]) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r.log = log
}

// Liveness returns the current lifecycle state.
func (r *RRT[E]) Liveness() Liveness { return Liveness(atomic.LoadInt32(&r.liveness)) }

// Generation returns the current worker generation counter.
func (r *RRT[E]) Generation() int64 { return atomic.LoadInt64(&r.generation) }

// Subscribe returns a receive channel of events. If the reactor is already
// Running, this is the fast path: the existing worker generation is reused
// and the subscriber is appended. Otherwise a new generation is spawned
// (slow path), bumping the generation counter so callers can distinguish
// old-thread events from new-thread events.
func (r *RRT[E]) Subscribe() <-chan Event[E] {
	r.mu.Lock()
	ch := make(chan Event[E], defaultSubscriberBuffer)
	r.subscribers = append(r.subscribers, ch)
	needStart := Liveness(atomic.LoadInt32(&r.liveness)) != Running
	r.mu.Unlock()

	if needStart {
		gen := atomic.AddInt64(&r.generation, 1)
		genID := uuid.New()
		r.mu.Lock()
		r.currentGenID = genID
		r.mu.Unlock()
		atomic.StoreInt32(&r.liveness, int32(Running))
		go r.runGeneration(gen)
	}
	return ch
}

// Stop terminates the reactor at once: it closes the waker, marks liveness
// Terminated and publishes a Shutdown(Stop) event. The poll loop is not
// interrupted; the worker's own PollOnce must observe the closed waker (or
// another cancellation mechanism of its own) to stop polling.
func (r *RRT[E]) Stop() {
	r.terminate(ShutdownReason{Kind: ShutdownStop})
}

func (r *RRT[E]) publish(ev Event[E]) {
	r.mu.Lock()
	ev.GenerationID = r.currentGenID
	subs := make([]chan Event[E], len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber: drop rather than block the worker.
		}
	}
}

func (r *RRT[E]) terminate(reason ShutdownReason) {
	r.mu.Lock()
	if r.waker != nil {
		r.waker.Close()
		r.waker = nil
	}
	r.mu.Unlock()
	atomic.StoreInt32(&r.liveness, int32(Terminated))
	r.publish(Event[E]{Shutdown: &reason})
}

// runGeneration owns one worker generation's full create/poll/restart
// lifecycle.
func (r *RRT[E]) runGeneration(generation int64) {
	remaining := r.policy.MaxRestarts
	delay := r.policy.InitialDelay
	bo := &backoff.Backoff{Min: r.policy.InitialDelay, Max: r.policy.MaxDelay, Factor: r.policy.BackoffMultiplier}
	attempts := 0

	for {
		if atomic.LoadInt64(&r.generation) != generation {
			return // superseded by a newer generation
		}
		if remaining <= 0 {
			r.terminate(ShutdownReason{Kind: ShutdownRestartPolicyExhausted, Attempts: attempts})
			return
		}

		worker, waker, err := r.factory.Create()
		if err != nil {
			remaining--
			attempts++
			r.log.Warnw("rrt: factory.Create failed", "remaining", remaining, "err", err)
			time.Sleep(delay)
			delay = bo.Duration()
			continue
		}

		// Successful create resets both the restart budget and the delay.
		remaining = r.policy.MaxRestarts
		delay = r.policy.InitialDelay
		bo.Reset()

		r.mu.Lock()
		r.waker = waker
		r.mu.Unlock()

		cont, panicked := r.pollLoop(generation, worker)
		if panicked {
			r.terminate(ShutdownReason{Kind: ShutdownPanic})
			return
		}
		switch cont {
		case Stop:
			r.terminate(ShutdownReason{Kind: ShutdownStop})
			return
		case Restart:
			if remaining <= 0 {
				r.terminate(ShutdownReason{Kind: ShutdownRestartPolicyExhausted, Attempts: attempts})
				return
			}
			attempts++
			time.Sleep(delay)
			delay = bo.Duration()
		}
	}
}

// pollLoop calls PollOnce under a panic guard until it returns something
// other than Continue, or a newer generation supersedes this one.
func (r *RRT[E]) pollLoop(generation int64, w Worker[E]) (cont Continuation, panicked bool) {
	tx := make(chan E, defaultSubscriberBuffer)
	var forwarder errgroup.Group
	forwarder.Go(func() error {
		for v := range tx {
			r.publish(Event[E]{Value: v, HasValue: true})
		}
		return nil
	})
	defer func() {
		close(tx)
		_ = forwarder.Wait()
	}()

	defer func() {
		if rec := recover(); rec != nil {
			panicked = true
			r.log.Errorw("rrt: worker panic", "recovered", rec)
		}
	}()

	for {
		if atomic.LoadInt64(&r.generation) != generation {
			return Stop, false
		}
		c := w.PollOnce(tx)
		if c != Continue {
			return c, false
		}
	}
}
