package layout

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/PixPMusic/gopher-soundboard/internal/config"
	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/PixPMusic/gopher-soundboard/internal/tracks"
)

// Pad is one labelled button of a legend
type Pad struct {
	Button midi.Button
	Label  string
	Color  midi.Color
}

// Grid holds pads at their physical positions; empty positions are nil
type Grid [midi.GridRows][midi.GridCols]*Pad

// NewGrid places pads on the grid. A later pad on the same button wins.
func NewGrid(pads []Pad) *Grid {
	var g Grid
	for i := range pads {
		row, col := midi.Position(pads[i].Button)
		g[row][col] = &pads[i]
	}
	return &g
}

// FromConfig builds the pads for every configured track. Names that are not
// buttons are returned separately.
func FromConfig(cfg *config.Config) (pads []Pad, unknown []string) {
	for _, name := range cfg.TrackNames() {
		b, err := midi.ParseButton(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		tc := cfg.Tracks[name]
		pads = append(pads, Pad{
			Button: b,
			Label:  label(tc.Path),
			Color:  idleColor(tc.Mode),
		})
	}
	sort.Slice(pads, func(i, j int) bool {
		return pads[i].Button.Index() < pads[j].Button.Index()
	})
	return pads, unknown
}

func label(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func idleColor(m tracks.Mode) midi.Color {
	if m == tracks.ModeFireForget {
		return tracks.ColorIdle
	}
	return tracks.ColorPaused
}
