package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRG(t *testing.T) {
	assert.Equal(t, Color(0x02), RG(2, 0))
	assert.Equal(t, Color(0x20), RG(0, 2))
	assert.Equal(t, Color(0x33), RG(3, 3))
	assert.Equal(t, Color(0x03), RG(3, 0))
	assert.Equal(t, Color(0x30), RG(0, 3))
	assert.Equal(t, Off, RG(0, 0))
	assert.Equal(t, Amber, RG(3, 3))
}

func TestRGMasksOutOfRangeLevels(t *testing.T) {
	assert.Equal(t, RG(3, 3), RG(7, 7))
	assert.Equal(t, RG(0, 1), RG(4, 5))

	for red := uint8(0); red < 16; red++ {
		for green := uint8(0); green < 16; green++ {
			c := RG(red, green)
			assert.Zero(t, uint8(c)&^0x33, "RG(%d, %d)", red, green)
			assert.Equal(t, red&3, c.Red())
			assert.Equal(t, green&3, c.Green())
		}
	}
}

func TestPreview(t *testing.T) {
	r, g, b := RG(3, 1).Preview()
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(85), g)
	assert.Zero(t, b)
}
