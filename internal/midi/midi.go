package midi

import (
	"strings"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

var (
	// ErrNoPort is wrapped in a ConnectionError when no port matches the device name
	ErrNoPort = errors.New("no matching port")

	// ErrClosed is wrapped in a ConnectionError when writing to a closed device
	ErrClosed = errors.New("device closed")
)

// Ports returns the names of the available MIDI input and output ports
func Ports() (ins, outs []string) {
	for _, in := range midi.GetInPorts() {
		ins = append(ins, in.String())
	}
	for _, out := range midi.GetOutPorts() {
		outs = append(outs, out.String())
	}
	return ins, outs
}

// CloseDriver cleans up the MIDI driver
func CloseDriver() {
	midi.CloseDriver()
}

// findPorts returns the first input and output port whose name contains name.
// Both directions must be present.
func findPorts(name string) (drivers.In, drivers.Out, error) {
	var in drivers.In
	for _, p := range midi.GetInPorts() {
		if strings.Contains(p.String(), name) {
			in = p
			break
		}
	}
	if in == nil {
		return nil, nil, &ConnectionError{Op: "find input", Port: name, Err: ErrNoPort}
	}

	var out drivers.Out
	for _, p := range midi.GetOutPorts() {
		if strings.Contains(p.String(), name) {
			out = p
			break
		}
	}
	if out == nil {
		return nil, nil, &ConnectionError{Op: "find output", Port: name, Err: ErrNoPort}
	}

	return in, out, nil
}
