// Command blockfall plays a session in an ebiten window.
//
// Keys: Enter starts or restarts, Left and Right move, Down soft drops,
// Space hard drops, Escape returns to the menu and Q quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/joho/godotenv"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/trace"
)

const (
	boardOffset  = 20
	sidebarWidth = 180
)

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	wellColor       = color.RGBA{32, 32, 42, 255}
	gridLineColor   = color.RGBA{44, 44, 56, 255}
)

type Game struct {
	session  *sim.Session
	score    sim.Scoreboard
	trace    *trace.Writer
	overlay  *overlay
	cellSize float64
}

func main() {
	configPath := flag.String("config", "", "YAML tuning file. Defaults to $"+config.PathVar+", then built-in defaults.")
	cellSize := flag.Float64("cell", 28, "Cell size in pixels.")
	tracePath := flag.String("trace", "", "Write every session event to this .jsonl.zst file.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui session inspector.")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	session, err := sim.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	game := &Game{
		session:  session,
		score:    sim.Scoreboard{PerRow: cfg.ScorePerRow},
		cellSize: *cellSize,
	}
	if *tracePath != "" {
		if game.trace, err = trace.Create(*tracePath); err != nil {
			log.Fatalf("Failed to create trace: %v", err)
		}
		defer func() {
			if err := game.trace.Close(); err != nil {
				log.Printf("Failed to close trace: %v", err)
			}
		}()
	}

	width, height := game.screenSize()
	if *debug {
		game.overlay = newOverlay("blockfall", width+overlayWidth, height)
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("blockfall")
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("Session ended: %v", err)
	}
}

func (g *Game) screenSize() (int, int) {
	cfg := g.session.Config()
	w := int(float64(cfg.Width)*g.cellSize) + 2*boardOffset + sidebarWidth
	h := int(float64(cfg.PlayableRows)*g.cellSize) + 2*boardOffset
	return w, h
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, in := range g.intents() {
		if err := g.session.Apply(in); err != nil {
			return err
		}
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	if err := g.session.Advance(dt); err != nil {
		return err
	}

	events := g.session.Drain()
	g.score.Observe(events)
	if g.trace != nil && len(events) > 0 {
		if err := g.trace.Write(events); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}

	if g.overlay != nil {
		g.overlay.update(g.session, g.score)
	}
	return nil
}

// intents maps this frame's key edges to session intents.
func (g *Game) intents() []sim.Intent {
	var out []sim.Intent
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		out = append(out, sim.StartGame)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		out = append(out, sim.OpenMenu)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		out = append(out, sim.MoveLeft)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		out = append(out, sim.MoveRight)
	case inpututil.IsKeyJustReleased(ebiten.KeyLeft), inpututil.IsKeyJustReleased(ebiten.KeyRight):
		// Fall back to the other arrow if it is still held.
		switch {
		case ebiten.IsKeyPressed(ebiten.KeyLeft):
			out = append(out, sim.MoveLeft)
		case ebiten.IsKeyPressed(ebiten.KeyRight):
			out = append(out, sim.MoveRight)
		default:
			out = append(out, sim.MoveRelease)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		out = append(out, sim.SoftDropOn)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyDown) {
		out = append(out, sim.SoftDropOff)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		out = append(out, sim.HardDrop)
	}
	return out
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	cfg := g.session.Config()
	transform := g.session.Transform(g.cellSize)
	size := float32(g.cellSize)
	wellW := float32(cfg.Width) * size
	wellH := float32(cfg.PlayableRows) * size
	vector.DrawFilledRect(screen, boardOffset, boardOffset, wellW, wellH, wellColor, false)
	for x := 1; x < cfg.Width; x++ {
		fx := boardOffset + float32(x)*size
		vector.StrokeLine(screen, fx, boardOffset, fx, boardOffset+wellH, 1, gridLineColor, false)
	}

	for _, u := range g.session.Units() {
		if u.Coord.Y >= cfg.PlayableRows {
			continue
		}
		g.drawUnit(screen, transform, u)
	}

	g.drawSidebar(screen, int(wellW)+2*boardOffset)

	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

func (g *Game) drawUnit(screen *ebiten.Image, transform board.PixelTransform, u board.Unit) {
	x, y := transform.TopLeft(u.Coord)
	size := float32(transform.CellSize)
	rgb := u.Kind.Color()
	fill := color.RGBA{rgb[0], rgb[1], rgb[2], 255}
	if !u.Controlled {
		fill = color.RGBA{rgb[0] / 4 * 3, rgb[1] / 4 * 3, rgb[2] / 4 * 3, 255}
	}
	left := boardOffset + float32(x)
	top := boardOffset + float32(y)
	vector.DrawFilledRect(screen, left, top, size, size, fill, false)
	vector.StrokeRect(screen, left, top, size, size, 1, backgroundColor, false)
}

func (g *Game) drawSidebar(screen *ebiten.Image, x int) {
	y := boardOffset
	line := func(format string, args ...any) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(format, args...), x, y)
		y += 16
	}

	line("SCORE %d", g.score.Score)
	line("LINES %d", g.score.Rows)
	y += 16

	switch g.session.PlayState() {
	case sim.Menu:
		line("Press Enter to play")
	case sim.Win:
		line("YOU WIN")
		line("Enter: play again")
		line("Esc: menu")
	case sim.Lose:
		line("GAME OVER")
		line("Enter: play again")
		line("Esc: menu")
	case sim.Playing:
		line("Left/Right: move")
		line("Down: soft drop")
		line("Space: hard drop")
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv(config.PathVar)
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	return cfg.Env(os.LookupEnv)
}
