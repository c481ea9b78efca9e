package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Wire format of the Launchpad S / Launchpad Mini
const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusControlChange = 0xb0

	velocityPressed  = 127
	velocityReleased = 0
)

// ledOn builds the message that lights a button
func ledOn(b Button, c Color) midi.Message {
	if b.Kind == KindControl {
		return midi.ControlChange(0, b.Code, uint8(c))
	}
	return midi.NoteOn(0, b.Code, uint8(c))
}

// ledOff builds the message that turns a button off
func ledOff(b Button) midi.Message {
	if b.Kind == KindControl {
		return midi.ControlChange(0, b.Code, 0)
	}
	return midi.NoteOff(0, b.Code)
}

// resetAll builds the broadcast reset: B0 00 00
func resetAll() midi.Message {
	return midi.ControlChange(0, 0, 0)
}

// decode turns a raw message into a button event. handled is false for
// messages that are not button traffic. It panics when the device sends an
// intensity other than pressed/released or a code outside the vocabulary.
func decode(raw []byte) (b Button, kind EventKind, handled bool) {
	if len(raw) < 3 {
		return Button{}, 0, false
	}
	status, code, value := raw[0], raw[1], raw[2]

	var family Kind
	switch status & 0xf0 {
	case statusNoteOn, statusNoteOff:
		family = KindNote
	case statusControlChange:
		family = KindControl
	default:
		return Button{}, 0, false
	}

	b, ok := Lookup(family, code)
	if !ok {
		panic(&ProtocolError{Status: status, Data1: code, Data2: value,
			Reason: fmt.Sprintf("%s code %d is not a button", family, code)})
	}

	switch value {
	case velocityPressed:
		return b, Pressed, true
	case velocityReleased:
		return b, Released, true
	default:
		panic(&ProtocolError{Status: status, Data1: code, Data2: value,
			Reason: fmt.Sprintf("intensity %d is neither pressed nor released", value)})
	}
}
