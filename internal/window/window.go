package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-soundboard/internal/config"
	"github.com/PixPMusic/gopher-soundboard/internal/layout"
	"github.com/PixPMusic/gopher-soundboard/internal/logging"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/rs/zerolog"
)

const padSize = 56

var emptyPad = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}

// LayoutWindow shows which sound is bound to each pad
type LayoutWindow struct {
	window fyne.Window
	cfg    *config.Config
	grid   *fyne.Container
	info   *widget.Label
	logger *zerolog.Logger
}

// NewLayoutWindow creates the layout window. It starts hidden.
func NewLayoutWindow(app fyne.App, cfg *config.Config, logger *zerolog.Logger) *LayoutWindow {
	win := app.NewWindow("Gopher Soundboard")

	lw := &LayoutWindow{
		window: win,
		cfg:    cfg,
		grid:   container.NewGridWithColumns(midi.GridCols),
		info:   widget.NewLabel("Tap a pad to see its sound"),
		logger: logger,
	}
	lw.refresh()

	win.SetContent(container.NewBorder(nil, lw.info, nil, nil, lw.grid))
	win.Resize(fyne.NewSize(600, 640))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	return lw
}

// Show rebuilds the grid from the current config and displays the window
func (lw *LayoutWindow) Show() {
	lw.refresh()
	lw.window.Show()
}

func (lw *LayoutWindow) refresh() {
	pads, unknown := layout.FromConfig(lw.cfg)
	for _, name := range unknown {
		lw.logger.Warn().Str(logging.LogKey.Button, name).Msg("Not a Launchpad button")
	}
	grid := layout.NewGrid(pads)

	lw.grid.RemoveAll()
	for row := 0; row < midi.GridRows; row++ {
		for col := 0; col < midi.GridCols; col++ {
			lw.grid.Add(lw.padCell(row, col, grid[row][col]))
		}
	}
	lw.grid.Refresh()
}

func (lw *LayoutWindow) padCell(row, col int, pad *layout.Pad) fyne.CanvasObject {
	b, ok := midi.ButtonAt(row, col)
	if !ok {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(padSize, padSize))
		return spacer
	}

	fill := color.Color(emptyPad)
	info := b.Name() + ": unassigned"
	if pad != nil {
		r, g, bl := pad.Color.Preview()
		fill = color.RGBA{R: r, G: g, B: bl, A: 255}
		info = b.Name() + ": " + pad.Label
	}

	rect := canvas.NewRectangle(fill)
	rect.SetMinSize(fyne.NewSize(padSize, padSize))
	rect.CornerRadius = 4

	name := canvas.NewText(b.Name(), color.White)
	name.TextSize = 10

	btn := newTappableRect(rect, func() {
		lw.info.SetText(info)
	})
	return container.NewStack(btn, container.NewPadded(name))
}

// ============ TAPPABLE RECTANGLE WIDGET ============

type tappableRect struct {
	widget.BaseWidget
	rect  *canvas.Rectangle
	onTap func()
}

func newTappableRect(rect *canvas.Rectangle, onTap func()) *tappableRect {
	t := &tappableRect{rect: rect, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableRect) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.rect)
}

func (t *tappableRect) Tapped(_ *fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *tappableRect) TappedSecondary(_ *fyne.PointEvent) {}
