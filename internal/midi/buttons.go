package midi

import "fmt"

// NumButtons is the size of the button vocabulary: 64 grid pads, 8 row-end
// buttons and 8 control buttons.
const NumButtons = 80

const (
	controlBase = 104
	numRows     = 8
	rowWidth    = 9 // 8 grid columns + the row-end button
	noIndex     = -1
)

var (
	// canonical order: a1..a8 oA, b1..b8 oB, ..., h1..h8 oH, o1..o8
	buttons      [NumButtons]Button
	buttonNames  [NumButtons]string
	noteIndex    [128]int8
	controlIndex [128]int8
	nameIndex    = make(map[string]int, NumButtons)
)

func init() {
	for i := range noteIndex {
		noteIndex[i] = noIndex
		controlIndex[i] = noIndex
	}

	i := 0
	for row := 0; row < numRows; row++ {
		letter := byte('a' + row)
		for col := 0; col < rowWidth; col++ {
			code := uint8(row<<4 | col)
			name := fmt.Sprintf("%c%d", letter, col+1)
			if col == 8 {
				name = fmt.Sprintf("o%c", letter-'a'+'A')
			}
			add(i, Button{Kind: KindNote, Code: code}, name)
			i++
		}
	}
	for col := 0; col < 8; col++ {
		add(i, Button{Kind: KindControl, Code: uint8(controlBase + col)}, fmt.Sprintf("o%d", col+1))
		i++
	}
}

func add(i int, b Button, name string) {
	buttons[i] = b
	buttonNames[i] = name
	nameIndex[name] = i
	switch b.Kind {
	case KindNote:
		noteIndex[b.Code] = int8(i)
	case KindControl:
		controlIndex[b.Code] = int8(i)
	}
}

// Buttons returns the full vocabulary in canonical order
func Buttons() []Button {
	out := make([]Button, NumButtons)
	copy(out, buttons[:])
	return out
}

// ByIndex returns the button at a canonical position (0-79)
func ByIndex(i int) Button {
	return buttons[i]
}

// Lookup returns the button for a wire code, if it belongs to the vocabulary
func Lookup(kind Kind, code uint8) (Button, bool) {
	idx := index(kind, code)
	if idx == noIndex {
		return Button{}, false
	}
	return buttons[idx], true
}

// ParseButton returns the button with the given name (a1..h8, oA..oH, o1..o8)
func ParseButton(name string) (Button, error) {
	idx, ok := nameIndex[name]
	if !ok {
		return Button{}, &UnknownButtonError{Name: name}
	}
	return buttons[idx], nil
}

// Index returns the canonical position of the button (0-79).
// It panics for buttons outside the vocabulary.
func (b Button) Index() int {
	idx := index(b.Kind, b.Code)
	if idx == noIndex {
		panic(&ProtocolError{Reason: fmt.Sprintf("%s code %d is not a button", b.Kind, b.Code)})
	}
	return idx
}

// Name returns the button's name. It panics for buttons outside the vocabulary.
func (b Button) Name() string {
	return buttonNames[b.Index()]
}

// Valid reports whether the button belongs to the vocabulary
func (b Button) Valid() bool {
	return index(b.Kind, b.Code) != noIndex
}

func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("%s(%d)", b.Kind, b.Code)
	}
	return b.Name()
}

func index(kind Kind, code uint8) int {
	if code >= 128 {
		return noIndex
	}
	switch kind {
	case KindNote:
		return int(noteIndex[code])
	case KindControl:
		return int(controlIndex[code])
	}
	return noIndex
}
