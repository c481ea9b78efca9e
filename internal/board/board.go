package board

import (
	"time"

	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrOccupied is returned by Register under RegisterReject
var ErrOccupied = errors.New("button already has a track")

// Handler reacts to button transitions and frame ticks, returning the color
// its button should show when it changes.
type Handler interface {
	HandleEvent(kind midi.EventKind, now time.Time) (midi.Color, bool)
	HandleTick(now time.Time) (midi.Color, bool)
}

// Stopper is implemented by handlers that can be rewound by StopAll
type Stopper interface {
	StopAll(now time.Time) (midi.Color, bool)
}

// Board routes device events to the handler bound to each button and
// keeps the LEDs in sync with what the handlers report.
type Board struct {
	ctrl     midi.Controller
	handlers [midi.NumButtons]Handler
	policy   RegisterPolicy
	logger   *zerolog.Logger
}

// Option configures a Board
type Option func(*Board)

// WithRegisterPolicy sets what happens when a button is registered twice
func WithRegisterPolicy(p RegisterPolicy) Option {
	return func(b *Board) {
		b.policy = p
	}
}

// New creates an empty board on ctrl
func New(ctrl midi.Controller, logger *zerolog.Logger, opts ...Option) *Board {
	b := &Board{
		ctrl:   ctrl,
		logger: logging.Module(logger, "Board"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register binds h to the named button and lights it with initial.
// Unknown names return a *midi.UnknownButtonError and leave the board unchanged.
func (b *Board) Register(name string, h Handler, initial midi.Color) error {
	btn, err := midi.ParseButton(name)
	if err != nil {
		return err
	}

	idx := btn.Index()
	if b.handlers[idx] != nil {
		if b.policy == RegisterReject {
			return errors.Wrapf(ErrOccupied, "register %s", name)
		}
		b.logger.Warn().Str(logging.LogKey.Button, name).Msg("Replacing track already bound to button")
	}

	b.handlers[idx] = h
	return b.ctrl.SetLED(btn, initial)
}

// Len returns the number of bound buttons
func (b *Board) Len() int {
	n := 0
	for _, h := range b.handlers {
		if h != nil {
			n++
		}
	}
	return n
}

// Step runs one frame: poll the device once, route every event in arrival
// order, then tick every bound handler once. A device error aborts the frame.
func (b *Board) Step(now time.Time) error {
	events, err := b.ctrl.Poll()
	if err != nil {
		return err
	}

	for _, ev := range events {
		idx := ev.Button.Index()
		h := b.handlers[idx]
		if h == nil {
			b.logger.Warn().
				Str(logging.LogKey.Button, ev.Button.Name()).
				Stringer("kind", ev.Kind).
				Msg("No track bound to button")
			continue
		}
		if c, ok := h.HandleEvent(ev.Kind, now); ok {
			if err := b.ctrl.SetLED(ev.Button, c); err != nil {
				return err
			}
		}
	}

	return b.each(func(h Handler) (midi.Color, bool) {
		return h.HandleTick(now)
	})
}

// StopAll rewinds every handler that supports it and repaints its button
func (b *Board) StopAll(now time.Time) error {
	b.logger.Info().Msg("Stopping all tracks")
	return b.each(func(h Handler) (midi.Color, bool) {
		if s, ok := h.(Stopper); ok {
			return s.StopAll(now)
		}
		return 0, false
	})
}

// Clear turns every LED off
func (b *Board) Clear() error {
	return b.ctrl.ResetAll()
}

// each calls fn for every bound handler in canonical button order
func (b *Board) each(fn func(Handler) (midi.Color, bool)) error {
	for idx := range b.handlers {
		h := b.handlers[idx]
		if h == nil {
			continue
		}
		if c, ok := fn(h); ok {
			if err := b.ctrl.SetLED(midi.ByIndex(idx), c); err != nil {
				return err
			}
		}
	}
	return nil
}
