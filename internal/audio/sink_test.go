package audio

import (
	"testing"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constant streams n samples of value, then drains
type constant struct {
	left   int
	value  float64
	closed bool
}

func (c *constant) Stream(samples [][2]float64) (int, bool) {
	if c.left == 0 {
		return 0, false
	}
	n := len(samples)
	if n > c.left {
		n = c.left
	}
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{c.value, c.value}
	}
	c.left -= n
	return n, true
}

func (c *constant) Err() error   { return nil }
func (c *constant) Close() error { c.closed = true; return nil }

func testQueue() *queue {
	return newQueue(func() {}, func() {})
}

func TestQueuePlaysAppendedStreamsInOrder(t *testing.T) {
	q := testQueue()
	first := &constant{left: 3, value: 1}
	second := &constant{left: 3, value: 2}
	q.Append(first)
	q.Append(second)

	samples := make([][2]float64, 8)
	n, ok := q.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 8, n)

	want := []float64{1, 1, 1, 2, 2, 2, 0, 0}
	for i, v := range want {
		assert.Equal(t, v, samples[i][0], "sample %d", i)
	}
	assert.True(t, q.IsEmpty())
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestQueueIdleStaysInMixer(t *testing.T) {
	q := testQueue()
	assert.True(t, q.IsEmpty())

	samples := make([][2]float64, 4)
	n, ok := q.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestQueuePausedDoesNotConsume(t *testing.T) {
	q := testQueue()
	s := &constant{left: 10, value: 1}
	q.Append(s)
	q.Pause()
	assert.True(t, q.IsPaused())

	samples := make([][2]float64, 4)
	n, ok := q.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, [2]float64{}, samples[0])
	assert.Equal(t, 10, s.left)

	q.Play()
	assert.False(t, q.IsPaused())
	_, _ = q.Stream(samples)
	assert.Equal(t, 6, s.left)
	assert.False(t, q.IsEmpty())
}

func TestQueueStopLeavesMixer(t *testing.T) {
	q := testQueue()
	s := &constant{left: 10, value: 1}
	q.Append(s)
	q.Stop()

	assert.True(t, q.IsEmpty())
	assert.True(t, s.closed)

	n, ok := q.Stream(make([][2]float64, 4))
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestQueueDetachedLeavesMixerOnceDrained(t *testing.T) {
	q := testQueue()
	q.Append(&constant{left: 3, value: 1})
	q.Detach()

	samples := make([][2]float64, 8)
	n, ok := q.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = q.Stream(samples)
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestQueueIsAStreamer(t *testing.T) {
	var _ beep.Streamer = testQueue()
	var _ Sink = testQueue()
}
