package telemetry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFiltersShortDurations(t *testing.T) {
	r := New(10, 20*time.Microsecond, time.Millisecond)
	r.Record(Atom{Duration: 5 * time.Microsecond, Hint: HintRender})
	assert.Equal(t, 0, r.Len())

	r.Record(Atom{Duration: 30 * time.Microsecond, Hint: HintRender})
	assert.Equal(t, 1, r.Len())
}

func TestRecordEvictsOldestWhenFull(t *testing.T) {
	r := New(2, 0, time.Millisecond)
	r.Record(Atom{Duration: 100 * time.Microsecond})
	r.Record(Atom{Duration: 200 * time.Microsecond})
	r.Record(Atom{Duration: 300 * time.Microsecond})
	require.Equal(t, 2, r.Len())
	assert.Equal(t, 200*time.Microsecond, r.Min())
	assert.Equal(t, 300*time.Microsecond, r.Max())
}

func TestAverageMinMax(t *testing.T) {
	r := New(10, 0, time.Millisecond)
	r.Record(Atom{Duration: 100 * time.Microsecond})
	r.Record(Atom{Duration: 300 * time.Microsecond})
	assert.Equal(t, 200*time.Microsecond, r.Average())
	assert.Equal(t, 100*time.Microsecond, r.Min())
	assert.Equal(t, 300*time.Microsecond, r.Max())
}

func TestMedianZeroSamples(t *testing.T) {
	r := New(10, 0, time.Millisecond)
	_, ok := r.Median()
	assert.False(t, ok)
}

func TestMedianOneSampleIsHundredPercent(t *testing.T) {
	r := New(10, 0, time.Millisecond)
	r.Record(Atom{Duration: 500 * time.Microsecond, Hint: HintInput})
	rep, ok := r.Median()
	require.True(t, ok)
	assert.Equal(t, 500*time.Microsecond, rep.Duration)
	assert.Equal(t, 100.0, rep.Percent)
	assert.Equal(t, HintInput, rep.Hint)
}

func TestMedianTwoSamplesIsAverageAtFiftyPercent(t *testing.T) {
	r := New(10, 0, time.Millisecond)
	r.Record(Atom{Duration: 100 * time.Microsecond, Hint: HintSignal})
	r.Record(Atom{Duration: 300 * time.Microsecond, Hint: HintInput})
	rep, ok := r.Median()
	require.True(t, ok)
	assert.Equal(t, 200*time.Microsecond, rep.Duration)
	assert.Equal(t, 50.0, rep.Percent)
	assert.Equal(t, HintSignal, rep.Hint)
}

func TestMedianPicksHighestCountBucket(t *testing.T) {
	r := New(20, 0, time.Millisecond)
	// Cluster of 3 around 100us.
	for i := 0; i < 3; i++ {
		r.Record(Atom{Duration: 100 * time.Microsecond, Hint: HintRender})
	}
	// Cluster of 1 around 500us.
	r.Record(Atom{Duration: 500 * time.Microsecond, Hint: HintInput})

	rep, ok := r.Median()
	require.True(t, ok)
	assert.InDelta(t, 125*time.Microsecond, rep.Duration, float64(bucketSize))
	assert.Equal(t, HintRender, rep.Hint)
}

func TestMedianHintTieBreaksOnDeclarationOrder(t *testing.T) {
	r := New(20, 0, time.Millisecond)
	r.Record(Atom{Duration: 100 * time.Microsecond, Hint: HintInput})
	r.Record(Atom{Duration: 100 * time.Microsecond, Hint: HintRender})
	// A third sample in another bucket takes Median past the N<=2 rules.
	r.Record(Atom{Duration: 500 * time.Microsecond, Hint: HintNone})
	rep, ok := r.Median()
	require.True(t, ok)
	assert.Equal(t, HintRender, rep.Hint)
}

// Reports are tagged with the producing Ring's identity so a process
// running several Rings (render, input, signal) can route a Report back to
// its source once they're multiplexed onto one log sink.
func TestReportsAreTaggedWithRingIdentity(t *testing.T) {
	r1 := New(10, 0, time.Millisecond)
	r2 := New(10, 0, time.Millisecond)
	assert.NotEqual(t, uuid.Nil, r1.ID())
	assert.NotEqual(t, r1.ID(), r2.ID())

	r1.Record(Atom{Duration: 100 * time.Microsecond, Hint: HintRender})
	rep, ok := r1.Median()
	require.True(t, ok)
	assert.Equal(t, r1.ID(), rep.RingID)
}

func TestReportIsRateLimited(t *testing.T) {
	r := New(10, 0, 50*time.Millisecond)
	r.Record(Atom{Duration: 100 * time.Microsecond, Hint: HintRender})
	first, ok := r.Report()
	require.True(t, ok)

	r.Record(Atom{Duration: 900 * time.Microsecond, Hint: HintInput})
	second, ok := r.Report()
	require.True(t, ok)
	assert.Equal(t, first, second) // still cached, interval hasn't elapsed
}
