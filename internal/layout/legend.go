package layout

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	cellSize = 96
	inset    = 4
	padding  = 6
	fontSize = 11
	dpi      = 72
)

var (
	background = color.RGBA{R: 0x18, G: 0x18, B: 0x18, A: 0xff}
	emptyPad   = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	textColor  = color.White
)

// WritePNG renders a printable legend of the board as a PNG image
func WritePNG(w io.Writer, pads []Pad) error {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return errors.Wrap(err, "parse font")
	}

	img := image.NewRGBA(image.Rect(0, 0, midi.GridCols*cellSize, midi.GridRows*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetDPI(dpi)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(textColor))

	face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: dpi})
	defer face.Close()
	lineHeight := (face.Metrics().Ascent + face.Metrics().Descent).Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	grid := NewGrid(pads)
	for row := 0; row < midi.GridRows; row++ {
		for col := 0; col < midi.GridCols; col++ {
			b, ok := midi.ButtonAt(row, col)
			if !ok {
				continue
			}

			x0, y0 := col*cellSize, row*cellSize
			rect := image.Rect(x0+inset, y0+inset, x0+cellSize-inset, y0+cellSize-inset)

			fill := color.Color(emptyPad)
			text := []string{b.Name()}
			if p := grid[row][col]; p != nil {
				r, g, bl := p.Color.Preview()
				fill = color.RGBA{R: r, G: g, B: bl, A: 0xff}
				text = append(text, fit(face, p.Label, cellSize-2*(inset+padding)))
			}
			draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

			for i, line := range text {
				pt := freetype.Pt(rect.Min.X+padding, rect.Min.Y+padding+ascent+i*lineHeight)
				if _, err := c.DrawString(line, pt); err != nil {
					return errors.Wrapf(err, "draw %s", b.Name())
				}
			}
		}
	}

	return png.Encode(w, img)
}

// fit shortens s with an ellipsis until it is at most width pixels wide
func fit(face font.Face, s string, width int) string {
	limit := fixed.I(width)
	if font.MeasureString(face, s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if font.MeasureString(face, candidate) <= limit {
			return candidate
		}
	}
	return ""
}
