package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Speaker is the Output of the default audio device
type Speaker struct {
	rate   beep.SampleRate
	logger *zerolog.Logger
}

// OpenSpeaker initializes the audio device. buffer trades latency for
// resilience against underruns.
func OpenSpeaker(sampleRate int, buffer time.Duration, logger *zerolog.Logger) (*Speaker, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, errors.Wrapf(err, "init speaker at %d Hz", sampleRate)
	}
	logger.Info().Int("sample_rate", sampleRate).Dur("buffer", buffer).Msg("Audio output ready")
	return &Speaker{rate: rate, logger: logger}, nil
}

// SampleRate is the rate every source must be resampled to
func (s *Speaker) SampleRate() beep.SampleRate {
	return s.rate
}

func (s *Speaker) NewSink() Sink {
	q := newQueue(speaker.Lock, speaker.Unlock)
	speaker.Play(q)
	return q
}

// Close stops all playback and releases the device
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
