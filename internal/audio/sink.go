package audio

import (
	"io"

	"github.com/faiface/beep"
)

// Sink is a playback queue: appended streams play one after another
type Sink interface {
	Play()
	Pause()
	// Stop drops everything queued; a stopped sink cannot be reused
	Stop()
	IsPaused() bool
	// IsEmpty reports whether everything queued has finished playing
	IsEmpty() bool
	Append(s beep.Streamer)
	// Detach lets the sink outlive its owner: it keeps playing and frees
	// itself once drained
	Detach()
}

// Output creates sinks on an audio device
type Output interface {
	NewSink() Sink
}

// queue is the Sink mixed into the speaker. Its state is guarded by the
// speaker lock, which the speaker also holds while calling Stream.
type queue struct {
	lock, unlock func()

	streams  []beep.Streamer
	paused   bool
	stopped  bool
	detached bool
}

func newQueue(lock, unlock func()) *queue {
	return &queue{lock: lock, unlock: unlock}
}

// Stream implements beep.Streamer. An idle sink plays silence so it stays in
// the mixer; a stopped sink, or a detached one that drained, leaves it.
func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	if q.stopped {
		return 0, false
	}
	if q.paused {
		silence(samples)
		return len(samples), true
	}

	for n < len(samples) && len(q.streams) > 0 {
		got, more := q.streams[0].Stream(samples[n:])
		n += got
		if !more || got == 0 {
			q.pop()
		}
	}

	if n < len(samples) && q.detached && len(q.streams) == 0 {
		return n, n > 0
	}
	silence(samples[n:])
	return len(samples), true
}

func (q *queue) Err() error {
	return nil
}

func (q *queue) pop() {
	if c, ok := q.streams[0].(io.Closer); ok {
		_ = c.Close()
	}
	q.streams[0] = nil
	q.streams = q.streams[1:]
}

func (q *queue) Play() {
	q.lock()
	q.paused = false
	q.unlock()
}

func (q *queue) Pause() {
	q.lock()
	q.paused = true
	q.unlock()
}

func (q *queue) Stop() {
	q.lock()
	defer q.unlock()
	for len(q.streams) > 0 {
		q.pop()
	}
	q.stopped = true
}

func (q *queue) IsPaused() bool {
	q.lock()
	defer q.unlock()
	return q.paused
}

func (q *queue) IsEmpty() bool {
	q.lock()
	defer q.unlock()
	return len(q.streams) == 0
}

func (q *queue) Append(s beep.Streamer) {
	q.lock()
	q.streams = append(q.streams, s)
	q.unlock()
}

func (q *queue) Detach() {
	q.lock()
	q.detached = true
	q.unlock()
}

func silence(samples [][2]float64) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
}
