package board

import (
	"context"
	"time"

	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const jobQueueSize = 16

// Stepper advances the board by one frame
type Stepper interface {
	Step(now time.Time) error
}

// Job is work submitted from outside the loop; it runs on the loop goroutine
// right before a step.
type Job func(now time.Time) error

// Loop calls Step at a fixed rate. Everything the board touches runs on the
// goroutine calling Run.
type Loop struct {
	stepper Stepper
	frame   time.Duration
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	jobs    chan Job
	logger  *zerolog.Logger
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithLoopClock replaces the wall clock and the sleep used between frames
func WithLoopClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) LoopOption {
	return func(l *Loop) {
		l.now = now
		l.sleep = sleep
	}
}

// NewLoop creates a loop stepping s fps times per second
func NewLoop(s Stepper, fps int, logger *zerolog.Logger, opts ...LoopOption) (*Loop, error) {
	if fps <= 0 {
		return nil, errors.Errorf("fps must be positive, got %d", fps)
	}
	l := &Loop{
		stepper: s,
		frame:   time.Second / time.Duration(fps),
		now:     time.Now,
		sleep:   sleepContext,
		jobs:    make(chan Job, jobQueueSize),
		logger:  logging.Module(logger, "Loop"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Frame is the target time between steps
func (l *Loop) Frame() time.Duration {
	return l.frame
}

// Submit queues a job for the loop goroutine. It returns false when the
// queue is full.
func (l *Loop) Submit(job Job) bool {
	select {
	case l.jobs <- job:
		return true
	default:
		return false
	}
}

// Run steps until ctx is done, returning nil, or until a step fails, returning
// its error. An early frame sleeps out the remainder instead of spinning.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info().Dur("frame", l.frame).Msg("Loop started")
	defer l.logger.Info().Msg("Loop stopped")

	last := l.now()
	for {
		if ctx.Err() != nil {
			return nil
		}

		elapsed := l.now().Sub(last)
		if elapsed < l.frame {
			if err := l.sleep(ctx, l.frame-elapsed); err != nil {
				return nil
			}
			continue
		}

		now := l.now()
		if err := l.runJobs(now); err != nil {
			return errors.Wrap(err, "job")
		}
		if err := l.stepper.Step(now); err != nil {
			return errors.Wrap(err, "step")
		}
		last = l.now()
	}
}

func (l *Loop) runJobs(now time.Time) error {
	for {
		select {
		case job := <-l.jobs:
			if err := job(now); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
