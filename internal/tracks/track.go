package tracks

import (
	"time"

	"github.com/PixPMusic/gopher-soundboard/internal/audio"
	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LongPress is how long a button must be held for a long press
const LongPress = 1000 * time.Millisecond

var (
	ColorPaused  = midi.RG(2, 0)
	ColorPlaying = midi.RG(0, 2)
	ColorPressed = midi.RG(3, 3)

	// ColorIdle is shown by fire-and-forget buttons when not held
	ColorIdle = midi.RG(2, 0)
)

// Options describes a track to build
type Options struct {
	Name   string
	Mode   Mode
	Source audio.Source
	Output audio.Output

	// Loop restarts a toggle track when it reaches the end
	Loop bool

	// LongPress decides whether a toggle track plays after a long-press rewind
	LongPress LongPressPolicy

	Logger *zerolog.Logger
}

// Track binds a sound to a button and decides what each press does.
// Behavior is selected by mode; the set of modes is closed.
type Track struct {
	name   string
	mode   Mode
	source audio.Source
	output audio.Output

	// sink is nil for fire-and-forget tracks, which own no playback
	sink            audio.Sink
	loop            bool
	longPressPolicy LongPressPolicy
	loadFailed      bool

	pressed   bool
	pressedAt time.Time

	logger *zerolog.Logger
}

// New builds a track. Toggle and fire tracks load their sound right away,
// paused at the start.
func New(opts Options) (*Track, error) {
	if opts.Source == nil || opts.Output == nil {
		return nil, errors.Errorf("track %q: source and output are required", opts.Name)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	l := logger.With().
		Str(logging.LogKey.Track, opts.Name).
		Str(logging.LogKey.Mode, opts.Mode.String()).
		Logger()

	t := &Track{
		name:            opts.Name,
		mode:            opts.Mode,
		source:          opts.Source,
		output:          opts.Output,
		loop:            opts.Loop,
		longPressPolicy: opts.LongPress,
		logger:          &l,
	}

	switch opts.Mode {
	case ModeToggle, ModeFire:
		t.sink = opts.Output.NewSink()
		t.reload()
	case ModeFireForget:
	default:
		return nil, errors.Errorf("track %q: unknown mode %d", opts.Name, opts.Mode)
	}
	return t, nil
}

func (t *Track) Name() string {
	return t.name
}

func (t *Track) Mode() Mode {
	return t.mode
}

// Color is the LED color for the track's current state
func (t *Track) Color() midi.Color {
	if t.mode == ModeFireForget {
		return ColorIdle
	}
	if t.sink.IsPaused() {
		return ColorPaused
	}
	return ColorPlaying
}

// HandleEvent reacts to a press or release and returns the color to show, if any
func (t *Track) HandleEvent(kind midi.EventKind, now time.Time) (midi.Color, bool) {
	switch t.mode {
	case ModeFireForget:
		return t.fireForgetEvent(kind, now)
	case ModeToggle, ModeFire:
		return t.heldEvent(kind, now)
	}
	return 0, false
}

// HandleTick runs once per frame: it fires long presses while the button is
// still held and handles the end of the sound.
func (t *Track) HandleTick(now time.Time) (midi.Color, bool) {
	switch t.mode {
	case ModeFireForget:
		return 0, false
	case ModeToggle, ModeFire:
		if t.pressed {
			if now.Sub(t.pressedAt) < LongPress {
				return 0, false
			}
			t.pressed = false
			t.longPress()
			return t.Color(), true
		}
		if t.loadFailed || !t.sink.IsEmpty() {
			return 0, false
		}
		t.endOfStream()
		return t.Color(), true
	}
	return 0, false
}

// StopAll rewinds the track to its paused start and forgets a held press
func (t *Track) StopAll(now time.Time) (midi.Color, bool) {
	wasPressed := t.pressed
	t.pressed = false

	switch t.mode {
	case ModeFireForget:
		if !wasPressed {
			return 0, false
		}
		return ColorIdle, true
	case ModeToggle, ModeFire:
		t.reload()
		return t.Color(), true
	}
	return 0, false
}

// heldEvent is the press/release contract shared by toggle and fire tracks:
// the action is decided by how long the button was held.
func (t *Track) heldEvent(kind midi.EventKind, now time.Time) (midi.Color, bool) {
	switch kind {
	case midi.Pressed:
		t.pressed = true
		t.pressedAt = now
		return ColorPressed, true
	case midi.Released:
		if !t.pressed {
			return 0, false
		}
		t.pressed = false
		if now.Sub(t.pressedAt) >= LongPress {
			t.longPress()
		} else {
			t.shortPress()
		}
		return t.Color(), true
	}
	return 0, false
}

func (t *Track) shortPress() {
	switch t.mode {
	case ModeToggle:
		t.toggle()
	case ModeFire:
		t.fire()
	}
}

func (t *Track) longPress() {
	t.logger.Debug().Msg("Long press")
	switch t.mode {
	case ModeToggle:
		t.rewind()
	case ModeFire:
		t.reload()
	}
}

func (t *Track) endOfStream() {
	t.logger.Debug().Msg("End of stream")
	switch t.mode {
	case ModeToggle:
		t.restart()
	case ModeFire:
		t.reload()
	}
}

// reload puts a fresh copy of the sound at the start of a paused sink.
// A sink that still holds sound is replaced; an empty one is reused.
func (t *Track) reload() {
	if !t.sink.IsEmpty() {
		t.sink.Stop()
		t.sink = t.output.NewSink()
	}
	t.sink.Pause()

	stream, err := t.source.Open()
	if err != nil {
		t.loadFailed = true
		t.logger.Error().Err(err).Str("path", t.source.Path()).Msg("Could not load sound")
		return
	}
	t.loadFailed = false
	t.sink.Append(stream)
}
