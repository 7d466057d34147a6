package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/plasma/sim"
)

// Heatmap renders the bin index's per-bin particle counts as a grayscale
// density overlay, temporally smoothed so the field doesn't flicker at
// high frame rates.
type Heatmap struct {
	alpha     float32 // EMA blend weight for the fresh counts
	intensity []float32
	counts    []float32
	cols      int
	rows      int
}

// NewHeatmap creates a heatmap with the given blend weight in (0, 1].
func NewHeatmap(alpha float32) *Heatmap {
	return &Heatmap{alpha: alpha}
}

// Blend folds the grid's current counts into the smoothed intensity field:
// intensity = (1-alpha)*intensity + alpha*counts.
func (h *Heatmap) Blend(g *sim.Grid) {
	h.counts = g.Counts(h.counts)

	if h.cols != g.Cols() || h.rows != g.Rows() {
		h.cols = g.Cols()
		h.rows = g.Rows()
		h.intensity = make([]float32, g.NumBins())
		copy(h.intensity, h.counts)
		return
	}

	n := len(h.intensity)
	vInt := blas32.Vector{N: n, Inc: 1, Data: h.intensity}
	vCnt := blas32.Vector{N: n, Inc: 1, Data: h.counts}
	blas32.Scal(1-h.alpha, vInt)
	blas32.Axpy(h.alpha, vCnt, vInt)
}

// Draw renders the intensity field scaled to the screen, normalized by the
// current maximum so the brightest bin is full white.
func (h *Heatmap) Draw(screenW, screenH int32) {
	if h.cols == 0 || h.rows == 0 {
		return
	}

	var max float32
	for _, v := range h.intensity {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}

	cellW := float32(screenW) / float32(h.cols)
	cellH := float32(screenH) / float32(h.rows)

	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			value := h.intensity[row*h.cols+col]
			if value == 0 {
				continue
			}

			gray := uint8(255 * value / max)
			color := rl.Color{R: gray, G: gray, B: gray, A: 200}

			rl.DrawRectangle(
				int32(float32(col)*cellW),
				int32(float32(row)*cellH),
				int32(cellW)+1,
				int32(cellH)+1,
				color,
			)
		}
	}
}
