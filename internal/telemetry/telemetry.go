// Package telemetry implements the fixed-capacity timing ring (C9): record
// render/input/signal/resize durations and report an average, min, max, and
// a clustering-based "median".
package telemetry

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Hint tags what kind of work an Atom's duration measures. Declaration
// order doubles as the tie-break order used by Median's bucket-hint pick:
// Render < Signal < Resize < Input < None.
type Hint int

const (
	HintRender Hint = iota
	HintSignal
	HintResize
	HintInput
	HintNone
)

// Atom is one recorded timing sample.
type Atom struct {
	Duration time.Duration
	Hint     Hint
}

const (
	// DefaultCapacity is the ring's default sample count N.
	DefaultCapacity = 100
	// DefaultMinDuration filters out samples shorter than this (noise).
	DefaultMinDuration = 20 * time.Microsecond
	// bucketSize is the clustering width used by Median; a fixed constant,
	// not derived from N.
	bucketSize = 50 * time.Microsecond
	// DefaultReportInterval rate-limits Report to roughly the render loop's
	// refresh rate.
	DefaultReportInterval = 16 * time.Millisecond
)

// Report is the output of Median/Report: a representative duration, the
// fraction of samples in its cluster, that cluster's most common hint, and
// the ID of the Ring that produced it (a process typically runs more than
// one Ring — render, input, signal — and reports get routed to a shared
// log sink where that origin must survive the trip).
type Report struct {
	Duration time.Duration
	Percent  float64
	Hint     Hint
	RingID   uuid.UUID
}

// Ring is the fixed-capacity telemetry buffer.
type Ring struct {
	id          uuid.UUID
	capacity    int
	minDuration time.Duration
	atoms       []Atom

	limiter      *rate.Limiter
	cachedReport Report
	haveCache    bool
}

// New creates a Ring with the given capacity, minimum-duration filter, and
// report rate-limit interval. A zero/negative argument falls back to the
// package default.
func New(capacity int, minDuration, reportInterval time.Duration) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if minDuration <= 0 {
		minDuration = DefaultMinDuration
	}
	if reportInterval <= 0 {
		reportInterval = DefaultReportInterval
	}
	return &Ring{
		id:          uuid.New(),
		capacity:    capacity,
		minDuration: minDuration,
		limiter:     rate.NewLimiter(rate.Every(reportInterval), 1),
	}
}

// ID returns this Ring's identity, stable for its lifetime.
func (r *Ring) ID() uuid.UUID { return r.id }

// Record adds an atom, dropping it if its duration is below the
// minimum-duration filter, and evicting the oldest sample if the ring is
// already full.
func (r *Ring) Record(atom Atom) {
	if atom.Duration < r.minDuration {
		return
	}
	if len(r.atoms) >= r.capacity {
		r.atoms = r.atoms[1:]
	}
	r.atoms = append(r.atoms, atom)
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int { return len(r.atoms) }

// Average returns the mean duration across all samples, or 0 if empty.
func (r *Ring) Average() time.Duration {
	if len(r.atoms) == 0 {
		return 0
	}
	var sum time.Duration
	for _, a := range r.atoms {
		sum += a.Duration
	}
	return sum / time.Duration(len(r.atoms))
}

// Min returns the shortest recorded duration, or 0 if empty.
func (r *Ring) Min() time.Duration {
	if len(r.atoms) == 0 {
		return 0
	}
	m := r.atoms[0].Duration
	for _, a := range r.atoms[1:] {
		if a.Duration < m {
			m = a.Duration
		}
	}
	return m
}

// Max returns the longest recorded duration, or 0 if empty.
func (r *Ring) Max() time.Duration {
	if len(r.atoms) == 0 {
		return 0
	}
	m := r.atoms[0].Duration
	for _, a := range r.atoms[1:] {
		if a.Duration > m {
			m = a.Duration
		}
	}
	return m
}

// Median applies the clustering heuristic described in the package doc:
// bucket by 50µs width, pick the highest-count bucket (ties go to the
// larger/slower bucket key), report that bucket's most frequent hint (ties
// broken by Hint's declaration order).
func (r *Ring) Median() (Report, bool) {
	switch len(r.atoms) {
	case 0:
		return Report{}, false
	case 1:
		return Report{Duration: r.atoms[0].Duration, Percent: 100, Hint: r.atoms[0].Hint, RingID: r.id}, true
	case 2:
		avg := (r.atoms[0].Duration + r.atoms[1].Duration) / 2
		return Report{Duration: avg, Percent: 50, Hint: r.atoms[0].Hint, RingID: r.id}, true
	}

	type bucket struct {
		key   int64
		count int
		atoms []Atom
	}
	buckets := make(map[int64]*bucket)
	var order []int64
	for _, a := range r.atoms {
		key := int64(a.Duration / bucketSize)
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{key: key}
			buckets[key] = bk
			order = append(order, key)
		}
		bk.count++
		bk.atoms = append(bk.atoms, a)
	}

	var best *bucket
	for _, key := range order {
		bk := buckets[key]
		if best == nil || bk.count > best.count || (bk.count == best.count && bk.key > best.key) {
			best = bk
		}
	}

	hintCounts := make(map[Hint]int)
	for _, a := range best.atoms {
		hintCounts[a.Hint]++
	}
	bestHint := HintNone
	bestHintCount := -1
	for h := HintRender; h <= HintNone; h++ {
		if c := hintCounts[h]; c > bestHintCount {
			bestHintCount = c
			bestHint = h
		}
	}

	rep := Report{
		Duration: time.Duration(best.key)*bucketSize + bucketSize/2,
		Percent:  100 * float64(best.count) / float64(len(r.atoms)),
		Hint:     bestHint,
		RingID:   r.id,
	}
	return rep, true
}

// Report returns the rate-limited Median report: a fresh computation at
// most once per the configured interval, the cached value otherwise.
func (r *Ring) Report() (Report, bool) {
	if !r.limiter.Allow() {
		return r.cachedReport, r.haveCache
	}
	rep, ok := r.Median()
	if ok {
		r.cachedReport = rep
		r.haveCache = true
	}
	return rep, ok
}
