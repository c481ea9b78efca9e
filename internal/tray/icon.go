package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"github.com/PixPMusic/gopher-soundboard/internal/midi"
)

const (
	iconSize = 32
	iconPads = 3
)

var (
	iconOnce sync.Once
	iconData []byte
)

// iconPNG draws a small 3x3 pad grid in the board's own colors
func iconPNG() []byte {
	iconOnce.Do(func() {
		iconData = drawIcon()
	})
	return iconData
}

func drawIcon() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	colors := []midi.Color{
		midi.Green, midi.Red, midi.Amber,
		midi.Red, midi.Amber, midi.Green,
		midi.Amber, midi.Green, midi.Red,
	}

	cell := iconSize / iconPads
	for i, c := range colors {
		r, g, b := c.Preview()
		x, y := (i%iconPads)*cell, (i/iconPads)*cell
		rect := image.Rect(x+1, y+1, x+cell-1, y+cell-1)
		draw.Draw(img, rect, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 0xff}), image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	// encoding an in-memory RGBA image cannot fail
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
