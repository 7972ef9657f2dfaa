package main

import (
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/sim"
)

const overlayWidth = 340

// overlay is the Dear ImGui session inspector shown with -debug.
type overlay struct {
	backend *ebitenbackend.EbitenBackend
	x       float32
}

func newOverlay(title string, width, height int) *overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini
	return &overlay{backend: backend, x: float32(width - overlayWidth)}
}

func (o *overlay) update(s *sim.Session, score sim.Scoreboard) {
	o.backend.BeginFrame()
	defer o.backend.EndFrame()

	cfg := s.Config()
	imgui.SetNextWindowPosV(imgui.NewVec2(o.x, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(overlayWidth-10, 360), imgui.CondOnce)

	if imgui.BeginV("Session", nil, 0) {
		imgui.Text(fmt.Sprintf("Play: %s", s.PlayState()))
		imgui.Text(fmt.Sprintf("Flow: %s", s.FlowState()))
		imgui.Text(fmt.Sprintf("Interval: %s (soft drop %t)", s.Interval(), s.SoftDrop()))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Tick: %d", s.Tick()))
		imgui.Text(fmt.Sprintf("Score: %d  Lines: %d", score.Score, score.Rows))

		units, controlled := 0, 0
		for _, u := range s.Units() {
			units++
			if u.Controlled {
				controlled++
			}
		}
		imgui.Text(fmt.Sprintf("Units: %d (%d controlled)", units, controlled))
		imgui.Text(fmt.Sprintf("Board: %dx%d, %d playable, landing %s", cfg.Width, cfg.Height, cfg.PlayableRows, cfg.Landing))

		imgui.Separator()
		stats := s.Stats()
		for _, p := range stats.Phases {
			imgui.Text(fmt.Sprintf("%-16s %6d  avg %s  max %s", p.Phase, p.Count, p.AvgDuration, p.MaxDuration))
		}
	}
	imgui.End()
}

func (o *overlay) draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *overlay) layout(width, height int) {
	o.backend.Layout(width, height)
}
