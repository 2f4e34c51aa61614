// Package preview renders pushed frames as a tiny per-dot image on the
// terminal, so a sim run still shows what the display would do.
package preview

import (
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-tactilus/internal/dot"
	"github.com/coreman2200/funtimes-tactilus/internal/frame"
)

// Cell geometry on screen: two columns of three dots, plus a gap column.
const (
	cellCols = 2
	cellRows = 3
)

var stateColors = map[dot.State]color.NRGBA{
	dot.HighImpedance: {R: 40, G: 40, B: 40, A: 255},
	dot.Positive:      {R: 0, G: 200, B: 0, A: 255},
	dot.Negative:      {R: 200, G: 0, B: 0, A: 255},
	dot.Brake:         {R: 200, G: 180, B: 0, A: 255},
}

// Renderer draws frames to the console.
type Renderer struct {
	cells  int
	drawer display.Drawer
	log    zerolog.Logger
}

// New returns a renderer for the given cell count.
func New(cells int, log zerolog.Logger) *Renderer {
	return &Renderer{
		cells:  cells,
		drawer: screen.New(cells * (cellCols + 1)),
		log:    log,
	}
}

// Observe satisfies controller.FrameObserver.
func (r *Renderer) Observe(f frame.Frame) {
	img := r.imageOf(f)
	if err := r.drawer.Draw(r.drawer.Bounds(), img, image.Point{}); err != nil {
		r.log.Warn().Err(err).Msg("preview draw failed")
	}
}

// imageOf lays the cells out side by side, dots 0-2 in the left column and
// 3-5 in the right, braille reading order.
func (r *Renderer) imageOf(f frame.Frame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.cells*(cellCols+1), cellRows))
	for ci := 0; ci < r.cells; ci++ {
		for di := 0; di < frame.DotsPerCell; di++ {
			s, err := frame.StateAt(f, dot.Address{Cell: ci, Dot: di})
			if err != nil {
				continue
			}
			x := ci*(cellCols+1) + di/cellRows
			y := di % cellRows
			img.SetNRGBA(x, y, stateColors[s])
		}
	}
	return img
}
