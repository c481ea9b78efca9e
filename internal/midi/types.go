package midi

import "time"

// Kind is the message family a button speaks on the wire
type Kind uint8

const (
	KindNote    Kind = iota // grid and right column: Note On/Off
	KindControl             // top row: Control Change 104-111
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindControl:
		return "control"
	default:
		return "unknown"
	}
}

// Button is a physical button, addressed the way the device addresses it
type Button struct {
	Kind Kind
	Code uint8
}

// Color is a Launchpad S/Mini LED intensity byte: bits 0-1 red, bits 4-5 green
type Color uint8

// RG builds a color from red and green levels (0-3 each, extra bits are masked off)
func RG(red, green uint8) Color {
	return Color((green&3)<<4 | (red & 3))
}

// Red returns the red level (0-3)
func (c Color) Red() uint8 {
	return uint8(c) & 3
}

// Green returns the green level (0-3)
func (c Color) Green() uint8 {
	return (uint8(c) >> 4) & 3
}

// Preview converts the color to 8-bit RGB for on-screen rendering
func (c Color) Preview() (r, g, b uint8) {
	return levelTo255(c.Red()), levelTo255(c.Green()), 0
}

// levelTo255 maps 0-3 to 0, 85, 170, 255
func levelTo255(level uint8) uint8 {
	return level * 85
}

const (
	Off      Color = 0x00
	DimRed   Color = 0x01
	Red      Color = 0x03
	DimGreen Color = 0x10
	Green    Color = 0x30
	Amber    Color = 0x33
	Yellow   Color = 0x32
)

// EventKind says whether a button went down or up
type EventKind uint8

const (
	Pressed EventKind = iota
	Released
)

func (k EventKind) String() string {
	if k == Pressed {
		return "pressed"
	}
	return "released"
}

// Event is a single button transition read from the device
type Event struct {
	Button Button
	Kind   EventKind
	At     time.Time
}

// Grid dimensions of the physical layout: one control row on top of eight
// grid rows, each with a ninth column of row-end buttons.
const (
	GridRows = 9
	GridCols = 9
)

// Position returns the physical (row, col) of a button. Row 0 is the control
// row, rows 1-8 are a-h, column 8 holds the row-end buttons.
func Position(b Button) (row, col int) {
	if b.Kind == KindControl {
		return 0, int(b.Code) - controlBase
	}
	return int(b.Code>>4) + 1, int(b.Code & 0x0f)
}

// ButtonAt returns the button at a physical position; (0, 8) has no button
func ButtonAt(row, col int) (Button, bool) {
	if row < 0 || row >= GridRows || col < 0 || col >= GridCols {
		return Button{}, false
	}
	if row == 0 {
		if col == 8 {
			return Button{}, false
		}
		return Button{Kind: KindControl, Code: uint8(controlBase + col)}, true
	}
	return Button{Kind: KindNote, Code: uint8((row-1)*16 + col)}, true
}
