package midi

import "github.com/rs/zerolog"

// Null is a Controller without hardware. LED writes are only logged and it
// never reports events, so a configuration can be exercised without a device.
type Null struct {
	logger *zerolog.Logger
}

// NewNull creates a Null controller
func NewNull(logger *zerolog.Logger) *Null {
	return &Null{logger: logger}
}

func (d *Null) SetLED(b Button, c Color) error {
	d.logger.Debug().Str("button", b.String()).Uint8("color", uint8(c)).Msg("LED on")
	return nil
}

func (d *Null) ResetLED(b Button) error {
	d.logger.Debug().Str("button", b.String()).Msg("LED off")
	return nil
}

func (d *Null) SetAll(c Color) error {
	d.logger.Debug().Uint8("color", uint8(c)).Msg("All LEDs on")
	return nil
}

func (d *Null) ResetAll() error {
	d.logger.Debug().Msg("All LEDs off")
	return nil
}

func (d *Null) Poll() ([]Event, error) {
	return nil, nil
}

func (d *Null) Close() error {
	return nil
}
