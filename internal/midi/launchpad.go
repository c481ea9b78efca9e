package midi

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/gomidi/midi/v2"
)

const (
	inboxSize          = 1024
	defaultSettleDelay = 500 * time.Millisecond
)

// startupColor lights the whole grid while the device initializes
var startupColor = RG(0, 3)

type received struct {
	raw []byte
	at  time.Time
}

// Launchpad drives a Launchpad S or Launchpad Mini over MIDI
type Launchpad struct {
	mu     sync.Mutex
	port   string
	send   func(midi.Message) error
	stop   func()
	closed bool

	inbox  chan received
	now    func() time.Time
	settle time.Duration
	logger *zerolog.Logger
}

// Option configures a Launchpad
type Option func(*Launchpad)

// WithSettleDelay sets how long the startup color stays lit
func WithSettleDelay(d time.Duration) Option {
	return func(lp *Launchpad) {
		lp.settle = d
	}
}

// WithClock sets the clock used to timestamp received events
func WithClock(now func() time.Time) Option {
	return func(lp *Launchpad) {
		lp.now = now
	}
}

// Open connects to the first device whose port names contain name, lights
// the grid, discards pending input and resets all LEDs.
func Open(name string, logger *zerolog.Logger, opts ...Option) (*Launchpad, error) {
	in, out, err := findPorts(name)
	if err != nil {
		return nil, err
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, &ConnectionError{Op: "open", Port: out.String(), Err: err}
	}

	lp := newLaunchpad(out.String(), send, logger, opts...)

	stop, err := midi.ListenTo(in, lp.receive)
	if err != nil {
		return nil, &ConnectionError{Op: "listen", Port: in.String(), Err: err}
	}
	lp.stop = stop

	if err := lp.initialize(); err != nil {
		lp.Close()
		return nil, err
	}

	lp.logger.Info().Str("in", in.String()).Str("out", out.String()).Msg("Launchpad connected")
	return lp, nil
}

func newLaunchpad(port string, send func(midi.Message) error, logger *zerolog.Logger, opts ...Option) *Launchpad {
	lp := &Launchpad{
		port:   port,
		send:   send,
		inbox:  make(chan received, inboxSize),
		now:    time.Now,
		settle: defaultSettleDelay,
		logger: logger,
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

func (lp *Launchpad) initialize() error {
	if err := lp.SetAll(startupColor); err != nil {
		return err
	}
	stale, err := lp.Poll()
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		lp.logger.Debug().Int("events", len(stale)).Msg("Discarded input received before startup")
	}
	time.Sleep(lp.settle)
	return lp.ResetAll()
}

// receive runs on the MIDI driver's goroutine
func (lp *Launchpad) receive(msg midi.Message, timestampms int32) {
	raw := append([]byte(nil), msg...)
	select {
	case lp.inbox <- received{raw: raw, at: lp.now()}:
	default:
		lp.logger.Error().Hex("message", raw).Msg("Input buffer full, dropping message")
	}
}

func (lp *Launchpad) write(msg midi.Message) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if lp.closed {
		return &ConnectionError{Op: "send", Port: lp.port, Err: ErrClosed}
	}
	if err := lp.send(msg); err != nil {
		return &ConnectionError{Op: "send", Port: lp.port, Err: err}
	}
	return nil
}

func (lp *Launchpad) SetLED(b Button, c Color) error {
	return lp.write(ledOn(b, c))
}

func (lp *Launchpad) ResetLED(b Button) error {
	return lp.write(ledOff(b))
}

// SetAll addresses every button individually, in canonical order
func (lp *Launchpad) SetAll(c Color) error {
	for _, b := range buttons {
		if err := lp.SetLED(b, c); err != nil {
			return err
		}
	}
	return nil
}

func (lp *Launchpad) ResetAll() error {
	return lp.write(resetAll())
}

func (lp *Launchpad) Poll() ([]Event, error) {
	lp.mu.Lock()
	closed := lp.closed
	lp.mu.Unlock()
	if closed {
		return nil, &ConnectionError{Op: "poll", Port: lp.port, Err: ErrClosed}
	}

	// only what is buffered now; messages arriving meanwhile wait for the next poll
	n := len(lp.inbox)
	if n == 0 {
		return nil, nil
	}

	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		m := <-lp.inbox
		b, kind, ok := decode(m.raw)
		if !ok {
			lp.logger.Warn().Hex("message", m.raw).Msg("Ignoring non-button message")
			continue
		}
		events = append(events, Event{Button: b, Kind: kind, At: m.at})
	}
	return events, nil
}

func (lp *Launchpad) Close() error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if lp.closed {
		return nil
	}
	lp.closed = true
	if lp.stop != nil {
		lp.stop()
	}
	return nil
}
