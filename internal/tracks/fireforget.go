package tracks

import (
	"time"

	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/google/uuid"
)

// fireForgetEvent starts a voice on every press. Voices overlap freely and
// are never stopped by the track; release only restores the LED.
func (t *Track) fireForgetEvent(kind midi.EventKind, now time.Time) (midi.Color, bool) {
	switch kind {
	case midi.Pressed:
		t.pressed = true
		t.pressedAt = now
		t.spawn()
		return ColorPressed, true
	case midi.Released:
		if !t.pressed {
			return 0, false
		}
		t.pressed = false
		return ColorIdle, true
	}
	return 0, false
}

// spawn plays one detached copy of the sound
func (t *Track) spawn() {
	stream, err := t.source.Open()
	if err != nil {
		t.logger.Error().Err(err).Str("path", t.source.Path()).Msg("Could not load sound")
		return
	}

	sink := t.output.NewSink()
	sink.Append(stream)
	sink.Play()
	sink.Detach()

	t.logger.Debug().Str(logging.LogKey.Voice, uuid.New().String()).Msg("Voice started")
}
