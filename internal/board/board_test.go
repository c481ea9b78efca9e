package board

import (
	"errors"
	"testing"
	"time"

	"github.com/PixPMusic/gopher-soundboard/internal/audio"
	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/PixPMusic/gopher-soundboard/internal/tracks"
	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledWrite struct {
	button string
	color  midi.Color
}

type fakeController struct {
	batches [][]midi.Event
	leds    []ledWrite
	polls   int
	resets  int
	pollErr error
	setErr  error
}

func (c *fakeController) SetLED(b midi.Button, col midi.Color) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.leds = append(c.leds, ledWrite{b.Name(), col})
	return nil
}

func (c *fakeController) ResetLED(b midi.Button) error { return c.SetLED(b, midi.Off) }
func (c *fakeController) SetAll(midi.Color) error      { return nil }
func (c *fakeController) ResetAll() error              { c.resets++; return nil }
func (c *fakeController) Close() error                 { return nil }

func (c *fakeController) Poll() ([]midi.Event, error) {
	c.polls++
	if c.pollErr != nil {
		return nil, c.pollErr
	}
	if len(c.batches) == 0 {
		return nil, nil
	}
	batch := c.batches[0]
	c.batches = c.batches[1:]
	return batch, nil
}

func (c *fakeController) queue(events ...midi.Event) {
	c.batches = append(c.batches, events)
}

type call struct {
	kind string
	at   time.Time
}

type fakeHandler struct {
	calls      []call
	eventColor midi.Color
	tickColor  *midi.Color
	stops      int
}

func (h *fakeHandler) HandleEvent(kind midi.EventKind, now time.Time) (midi.Color, bool) {
	h.calls = append(h.calls, call{kind.String(), now})
	return h.eventColor, true
}

func (h *fakeHandler) HandleTick(now time.Time) (midi.Color, bool) {
	h.calls = append(h.calls, call{"tick", now})
	if h.tickColor == nil {
		return 0, false
	}
	return *h.tickColor, true
}

func (h *fakeHandler) ticks() int {
	n := 0
	for _, c := range h.calls {
		if c.kind == "tick" {
			n++
		}
	}
	return n
}

type stoppable struct {
	fakeHandler
}

func (s *stoppable) StopAll(now time.Time) (midi.Color, bool) {
	s.stops++
	return midi.Red, true
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func button(t *testing.T, name string) midi.Button {
	t.Helper()
	b, err := midi.ParseButton(name)
	require.NoError(t, err)
	return b
}

func event(t *testing.T, name string, kind midi.EventKind) midi.Event {
	return midi.Event{Button: button(t, name), Kind: kind}
}

func TestRegisterUnknownButton(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())

	err := b.Register("z9", &fakeHandler{}, midi.Red)
	var unknown *midi.UnknownButtonError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, ctrl.leds)
}

func TestRegisterLightsInitialColor(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())

	require.NoError(t, b.Register("c5", &fakeHandler{}, midi.RG(2, 0)))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []ledWrite{{"c5", midi.RG(2, 0)}}, ctrl.leds)
}

func TestRegisterOverwrites(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	first, second := &fakeHandler{}, &fakeHandler{}

	require.NoError(t, b.Register("a1", first, midi.Red))
	require.NoError(t, b.Register("a1", second, midi.Green))
	assert.Equal(t, 1, b.Len())

	ctrl.queue(event(t, "a1", midi.Pressed))
	require.NoError(t, b.Step(at(0)))
	assert.Empty(t, first.calls)
	assert.Len(t, second.calls, 2)
}

func TestRegisterReject(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop(), WithRegisterPolicy(RegisterReject))

	require.NoError(t, b.Register("a1", &fakeHandler{}, midi.Red))
	err := b.Register("a1", &fakeHandler{}, midi.Green)
	assert.ErrorIs(t, err, ErrOccupied)
	assert.Len(t, ctrl.leds, 1)
}

func TestStepRoutesEventsInOrderThenTicks(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	a1 := &fakeHandler{eventColor: midi.Amber}
	b2 := &fakeHandler{eventColor: midi.Green}
	require.NoError(t, b.Register("a1", a1, midi.Off))
	require.NoError(t, b.Register("b2", b2, midi.Off))
	ctrl.leds = nil

	ctrl.queue(
		event(t, "a1", midi.Pressed),
		event(t, "h8", midi.Pressed),
		event(t, "b2", midi.Pressed),
		event(t, "a1", midi.Released),
	)
	require.NoError(t, b.Step(at(40)))

	assert.Equal(t, 1, ctrl.polls)
	assert.Equal(t, []call{{"pressed", at(40)}, {"released", at(40)}, {"tick", at(40)}}, a1.calls)
	assert.Equal(t, []call{{"pressed", at(40)}, {"tick", at(40)}}, b2.calls)
	assert.Equal(t, []ledWrite{
		{"a1", midi.Amber},
		{"b2", midi.Green},
		{"a1", midi.Amber},
	}, ctrl.leds)
}

func TestStepTicksEveryTrackOncePerFrame(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	handlers := map[string]*fakeHandler{"a1": {}, "oA": {}, "o8": {}}
	for name, h := range handlers {
		require.NoError(t, b.Register(name, h, midi.Off))
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Step(at(i*33)))
	}
	for name, h := range handlers {
		assert.Equal(t, 3, h.ticks(), name)
	}
	assert.Equal(t, 3, ctrl.polls)
}

func TestStepTickColorsAreWritten(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	paused := midi.RG(2, 0)
	require.NoError(t, b.Register("o2", &fakeHandler{tickColor: &paused}, midi.Off))
	ctrl.leds = nil

	require.NoError(t, b.Step(at(0)))
	assert.Equal(t, []ledWrite{{"o2", paused}}, ctrl.leds)
}

func TestStepPollFailureIsFatal(t *testing.T) {
	boom := &midi.ConnectionError{Op: "poll", Err: errors.New("unplugged")}
	ctrl := &fakeController{pollErr: boom}
	b := New(ctrl, logging.Nop())
	h := &fakeHandler{}
	require.NoError(t, b.Register("a1", h, midi.Off))

	err := b.Step(at(0))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, h.calls)
}

func TestStepLEDFailureIsFatal(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	require.NoError(t, b.Register("a1", &fakeHandler{}, midi.Off))

	boom := errors.New("write failed")
	ctrl.setErr = boom
	ctrl.queue(event(t, "a1", midi.Pressed))
	assert.ErrorIs(t, b.Step(at(0)), boom)
}

func TestStopAll(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	s := &stoppable{}
	plain := &fakeHandler{}
	require.NoError(t, b.Register("a1", s, midi.Off))
	require.NoError(t, b.Register("a2", plain, midi.Off))
	ctrl.leds = nil

	require.NoError(t, b.StopAll(at(0)))
	assert.Equal(t, 1, s.stops)
	assert.Empty(t, plain.calls)
	assert.Equal(t, []ledWrite{{"a1", midi.Red}}, ctrl.leds)

	require.NoError(t, b.Clear())
	assert.Equal(t, 1, ctrl.resets)
}

// sink and output doubles for driving real tracks through the board

type sink struct {
	paused, empty bool
}

func (s *sink) Play()                {}
func (s *sink) Pause()               { s.paused = true }
func (s *sink) Stop()                {}
func (s *sink) IsPaused() bool       { return s.paused }
func (s *sink) IsEmpty() bool        { return s.empty }
func (s *sink) Append(beep.Streamer) { s.empty = false }
func (s *sink) Detach()              {}

type output struct{ sinks []*sink }

func (o *output) NewSink() audio.Sink {
	s := &sink{empty: true}
	o.sinks = append(o.sinks, s)
	return s
}

type source struct{ opens int }

func (s *source) Open() (beep.Streamer, error) { s.opens++; return beep.Silence(1), nil }
func (s *source) Path() string                 { return "x.wav" }

func TestToggleLongPressThroughBoard(t *testing.T) {
	ctrl := &fakeController{}
	b := New(ctrl, logging.Nop())
	out, src := &output{}, &source{}
	track, err := tracks.New(tracks.Options{Name: "a1", Mode: tracks.ModeToggle, Output: out, Source: src})
	require.NoError(t, err)
	require.NoError(t, b.Register("a1", track, track.Color()))
	ctrl.leds = nil

	ctrl.queue(event(t, "a1", midi.Pressed))
	require.NoError(t, b.Step(at(0)))
	ctrl.queue()
	require.NoError(t, b.Step(at(1000)))
	ctrl.queue(event(t, "a1", midi.Released))
	require.NoError(t, b.Step(at(1200)))

	assert.Equal(t, []ledWrite{
		{"a1", tracks.ColorPressed},
		{"a1", tracks.ColorPaused},
	}, ctrl.leds)
	assert.Equal(t, 2, src.opens, "one load at startup, one long press reload")
}
