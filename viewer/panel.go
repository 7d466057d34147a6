package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plasma/sim"
)

const (
	panelWidth  = 300
	panelMargin = 10
	sliderWidth = panelWidth - 90
)

// Panel is the live tuning panel: one slider per parameter the host may
// change between steps. Edits take effect on the next step.
type Panel struct {
	visible bool
}

// NewPanel creates the tuning panel, hidden by default.
func NewPanel() *Panel {
	return &Panel{}
}

// Toggle switches panel visibility.
func (pn *Panel) Toggle() {
	pn.visible = !pn.visible
}

// Draw renders the panel and applies slider edits to p.
func (pn *Panel) Draw(p *sim.Params) {
	if !pn.visible {
		return
	}

	x := float32(rl.GetScreenWidth() - panelWidth - panelMargin)
	y := float32(panelMargin)

	rows := []struct {
		label string
		value *float32
		min   float32
		max   float32
	}{
		{"speed", &p.Speed, 0, 4},
		{"attraction strength", &p.AttractionStrength, 0, 10},
		{"attraction range", &p.AttractionRange, 0, 300},
		{"repulsion strength", &p.RepulsionStrength, 0, 10},
		{"repulsion range", &p.RepulsionRange, 0, 300},
		{"center strength", &p.CenterStrength, 0, 0.01},
		{"particle radius", &p.ParticleRadius, 0, 10},
		{"collision response", &p.CollisionResponse, 0, 1},
		{"momentum", &p.Momentum, 0, 1},
		{"max acceleration", &p.MaxAcceleration, 0, 2},
		{"max velocity", &p.MaxVelocity, 0, 10},
	}

	panelHeight := int32(len(rows))*40 + 45
	rl.DrawRectangle(int32(x)-panelMargin, int32(y), panelWidth+panelMargin, panelHeight, rl.Color{R: 0, G: 0, B: 0, A: 180})

	rl.DrawText("Parameters [Tab]", int32(x), int32(y)+4, 16, rl.White)
	y += 30

	for _, row := range rows {
		rl.DrawText(row.label, int32(x), int32(y), 12, rl.Gray)
		y += 16

		got := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 16},
			"", "",
			*row.value, row.min, row.max,
		)
		rl.DrawText(fmt.Sprintf("%.4g", *row.value), int32(x+sliderWidth+8), int32(y), 14, rl.LightGray)
		*row.value = got
		y += 24
	}
}
