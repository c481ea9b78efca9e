package midi

// Controller is a grid device that reports button transitions and lights LEDs
type Controller interface {
	// SetLED lights a single button
	SetLED(b Button, c Color) error

	// ResetLED turns a single button off
	ResetLED(b Button) error

	// SetAll lights every button of the vocabulary with the same color
	SetAll(c Color) error

	// ResetAll turns every LED off with one broadcast message
	ResetAll() error

	// Poll returns the events received since the previous call, in arrival
	// order. It never blocks.
	Poll() ([]Event, error)

	// Close releases the device
	Close() error
}
