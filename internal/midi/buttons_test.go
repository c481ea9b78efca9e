package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonNames(t *testing.T) {
	cases := []struct {
		name string
		want Button
	}{
		{"a1", Button{KindNote, 0x00}},
		{"a8", Button{KindNote, 0x07}},
		{"oA", Button{KindNote, 0x08}},
		{"c5", Button{KindNote, 0x24}},
		{"d8", Button{KindNote, 0x37}},
		{"oD", Button{KindNote, 0x38}},
		{"h8", Button{KindNote, 0x77}},
		{"oH", Button{KindNote, 0x78}},
		{"o1", Button{KindControl, 104}},
		{"o8", Button{KindControl, 111}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseButton(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b)
			assert.Equal(t, tc.name, b.Name())
		})
	}
}

func TestVocabularyIsBijective(t *testing.T) {
	all := Buttons()
	require.Len(t, all, NumButtons)

	seenNames := map[string]bool{}
	seenButtons := map[Button]bool{}
	for i, b := range all {
		name := b.Name()
		assert.False(t, seenNames[name], "duplicate name %s", name)
		assert.False(t, seenButtons[b], "duplicate button %v", b)
		seenNames[name] = true
		seenButtons[b] = true

		back, err := ParseButton(name)
		require.NoError(t, err)
		assert.Equal(t, b, back)
		assert.Equal(t, i, b.Index())
	}
}

func TestCanonicalOrder(t *testing.T) {
	all := Buttons()
	assert.Equal(t, "a1", all[0].Name())
	assert.Equal(t, "oA", all[8].Name())
	assert.Equal(t, "b1", all[9].Name())
	assert.Equal(t, "oH", all[71].Name())
	assert.Equal(t, "o1", all[72].Name())
	assert.Equal(t, "o8", all[79].Name())
}

func TestParseButtonUnknown(t *testing.T) {
	for _, name := range []string{"", "z9", "i1", "a0", "a9", "o9", "o0", "oa", "A1", "oI"} {
		_, err := ParseButton(name)
		var unknown *UnknownButtonError
		require.True(t, errors.As(err, &unknown), "name %q", name)
		assert.Equal(t, name, unknown.Name)
	}
}

func TestLookup(t *testing.T) {
	b, ok := Lookup(KindNote, 0x12)
	require.True(t, ok)
	assert.Equal(t, "b3", b.Name())

	for _, code := range []uint8{0x09, 0x0f, 0x80, 0x7f} {
		_, ok := Lookup(KindNote, code)
		assert.False(t, ok, "note %#x", code)
	}
	for _, code := range []uint8{0, 103, 112, 200} {
		_, ok := Lookup(KindControl, code)
		assert.False(t, ok, "control %d", code)
	}
}

func TestNameOfInvalidCodePanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = Button{Kind: KindNote, Code: 0x09}.Name()
	})
	assert.Panics(t, func() {
		_ = Button{Kind: KindControl, Code: 0x10}.Index()
	})
}

func TestPositionRoundTrip(t *testing.T) {
	for _, b := range Buttons() {
		row, col := Position(b)
		back, ok := ButtonAt(row, col)
		require.True(t, ok, "%s at (%d, %d)", b, row, col)
		assert.Equal(t, b, back)
	}

	_, ok := ButtonAt(0, 8)
	assert.False(t, ok)

	b, _ := ParseButton("oC")
	row, col := Position(b)
	assert.Equal(t, 3, row)
	assert.Equal(t, 8, col)
}
