// Package sim runs a game session on top of a board: the outer play state,
// the inner flow phases, tick pacing, input intents and outbound events.
package sim

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/piece"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for top-outs and aborted ticks.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand drives the piece bag from rng instead of the configured seed.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithGrid backs the board with g. It exists for exercising grids that do not
// cover the configured dimensions.
func WithGrid(g *board.Grid) Option {
	return func(s *Session) { s.grid = g }
}

// WithLayout sets a starting position, in board.LoadText form, that is loaded
// every time a game starts.
func WithLayout(text string) Option {
	return func(s *Session) { s.layout = text }
}

// Session is the whole state of one player's game. It is driven from a single
// goroutine: intents through Apply, time through Advance.
// A Session is not safe for concurrent use.
type Session struct {
	cfg    config.Config
	log    *log.Logger
	rng    *rand.Rand
	grid   *board.Grid
	layout string

	board *board.Board
	bag   *piece.Bag

	play         PlayState
	flow         FlowState
	spawnPending bool
	softDrop     bool
	held         board.Direction

	ticker Ticker
	repeat Repeater
	queue  Queue

	tick  uint64
	lines int
	stats tickStats
}

// New creates a session in the Menu state. cfg is validated first.
func New(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s := &Session{
		cfg:    cfg,
		log:    log.Default(),
		repeat: NewRepeater(cfg.Repeat.Initial, cfg.Repeat.Rate),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil && cfg.Seed != 0 {
		s.rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	s.bag = piece.NewBag(s.rng)

	boardOpts := []board.Option{
		board.WithPlayableRows(cfg.PlayableRows),
		board.WithLandingPolicy(cfg.LandingPolicy()),
		board.WithSpawnOverwrite(cfg.SpawnOverwrite),
		board.WithObserver(observer{s}),
	}
	if s.grid != nil {
		boardOpts = append(boardOpts, board.WithGrid(s.grid))
	}
	s.board = board.New(cfg.Width, cfg.Height, boardOpts...)

	// The layout is only checked here; it is placed when a game starts.
	if s.layout != "" {
		if err := board.New(cfg.Width, cfg.Height).LoadText(s.layout); err != nil {
			return nil, fmt.Errorf("sim: layout: %w", err)
		}
	}
	return s, nil
}

// Config returns the tuning the session was created with.
func (s *Session) Config() config.Config { return s.cfg }

// PlayState returns the outer state.
func (s *Session) PlayState() PlayState { return s.play }

// FlowState returns the phase of the running game, FlowMenu outside Playing.
func (s *Session) FlowState() FlowState { return s.flow }

// Tick returns the number of ticks run since the session was created.
func (s *Session) Tick() uint64 { return s.tick }

// Lines returns the rows cleared in the current game.
func (s *Session) Lines() int { return s.lines }

// SoftDrop reports whether soft drop is held.
func (s *Session) SoftDrop() bool { return s.softDrop }

// Units iterates the units on the board.
func (s *Session) Units() iter.Seq2[board.Handle, board.Unit] {
	return s.board.Units()
}

// Text renders the bottom rows of the board, as board.Board.Text does.
func (s *Session) Text(rows int) string {
	return s.board.Text(rows)
}

// Transform returns the pixel transform for the visible rows at cellSize.
func (s *Session) Transform(cellSize float64) board.PixelTransform {
	return board.PixelTransform{Width: s.cfg.Width, Height: s.cfg.PlayableRows, CellSize: cellSize}
}

// Stats returns tick timing per flow phase.
func (s *Session) Stats() Stats {
	return s.stats.snapshot()
}

// Drain returns the events produced since the last call.
func (s *Session) Drain() []Event {
	return s.queue.Drain()
}

// Interval returns the tick length of the current phase. A held soft drop
// overrides every phase.
func (s *Session) Interval() time.Duration {
	switch {
	case s.softDrop:
		return s.cfg.Tick.SoftDrop
	case s.flow == CascadeFalling || s.flow == CheckingRows:
		return s.cfg.Tick.Cascade
	default:
		return s.cfg.Tick.Base
	}
}

// RequestPlayState moves the outer state to to if the transition is allowed
// and reports whether it happened. Entering Playing starts a fresh game.
func (s *Session) RequestPlayState(to PlayState) bool {
	from := s.play
	if !CanTransition(from, to) {
		return false
	}
	s.play = to
	s.queue.push(Event{Kind: PlayChanged, Tick: s.tick, PlayFrom: from, PlayTo: to})

	if to == Playing {
		if err := s.reset(); err != nil {
			s.log.Printf("sim: restart failed: %v", err)
			s.play = Menu
			s.queue.push(Event{Kind: PlayChanged, Tick: s.tick, PlayFrom: to, PlayTo: Menu})
			return false
		}
		s.setFlow(PlayerFalling)
		return true
	}
	s.setFlow(FlowMenu)
	return true
}

// reset clears everything a game accumulates and reloads the layout.
func (s *Session) reset() error {
	for h, u := range s.board.Units() {
		s.queue.push(Event{Kind: UnitDespawned, Tick: s.tick, Handle: h, Unit: u})
	}
	s.board.Reset()
	s.bag.Reset()
	s.ticker.Reset()
	s.repeat.Release()
	s.held = 0
	s.softDrop = false
	s.lines = 0
	s.spawnPending = true
	if s.layout != "" {
		return s.board.LoadText(s.layout)
	}
	return nil
}

func (s *Session) setFlow(to FlowState) {
	if s.flow == to {
		return
	}
	s.queue.push(Event{Kind: FlowChanged, Tick: s.tick, FlowFrom: s.flow, FlowTo: to})
	s.flow = to
}

// Apply handles one input intent. Board changes it causes are validated like
// any other move; an error means the board broke an invariant.
func (s *Session) Apply(in Intent) error {
	switch in {
	case StartGame:
		s.RequestPlayState(Playing)
		return nil
	case OpenMenu:
		s.RequestPlayState(Menu)
		return nil
	}
	if s.play != Playing {
		return nil
	}

	switch in {
	case MoveLeft, MoveRight:
		dir := board.Left
		if in == MoveRight {
			dir = board.Right
		}
		if dir != s.held {
			s.repeat.Release()
			s.held = dir
		}
		if s.repeat.Press() {
			return s.shift(dir)
		}
	case MoveRelease:
		s.repeat.Release()
		s.held = 0
	case SoftDropOn:
		s.softDrop = true
	case SoftDropOff:
		s.softDrop = false
	case HardDrop:
		if s.flow != PlayerFalling {
			return nil
		}
		rows, err := s.board.HardDrop()
		if err != nil {
			return s.invariant(err)
		}
		if rows > 0 {
			s.queue.push(Event{Kind: HardDropped, Tick: s.tick, Rows: rows})
		}
	default:
		return fmt.Errorf("sim: unknown intent %v", in)
	}
	return nil
}

func (s *Session) shift(d board.Direction) error {
	if _, err := s.board.Shift(d); err != nil {
		return s.invariant(err)
	}
	return nil
}

// Advance feeds dt of wall time into the session, firing due auto-repeat
// moves and then every due tick. The interval is re-read before each tick so
// a phase change takes effect immediately. The first failing tick stops the
// drain and its error is returned.
func (s *Session) Advance(dt time.Duration) error {
	if s.play != Playing {
		return nil
	}
	if s.held != 0 {
		for range s.repeat.Advance(dt) {
			if err := s.shift(s.held); err != nil {
				return err
			}
		}
	}

	s.ticker.Add(dt)
	for s.play == Playing {
		s.ticker.Interval = s.Interval()
		if !s.ticker.Next() {
			break
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step runs exactly one tick of the current flow phase. It does nothing
// outside Playing.
func (s *Session) Step() error {
	if s.play != Playing {
		return nil
	}
	s.tick++
	phase := s.flow
	start := time.Now()
	err := s.step()
	s.stats.record(phase, time.Since(start))
	if err != nil {
		return fmt.Errorf("sim: tick %d (%s): %w", s.tick, phase, s.invariant(err))
	}
	return nil
}

func (s *Session) step() error {
	switch s.flow {
	case PlayerFalling:
		if s.spawnPending {
			kind := s.bag.Next()
			if _, err := s.board.Spawn(kind); err != nil {
				if errors.Is(err, board.ErrSpawnBlocked) {
					s.log.Printf("sim: tick %d: top out spawning %s: %v", s.tick, kind, err)
					s.RequestPlayState(Lose)
					return nil
				}
				return err
			}
			s.spawnPending = false
		}
		moved, err := s.board.Fall()
		if err != nil {
			return err
		}
		if !moved {
			s.spawnPending = true
			s.setFlow(CheckingRows)
		}

	case CheckingRows:
		rows, err := s.board.ClearRows()
		if err != nil {
			return err
		}
		s.lines += len(rows)
		s.queue.push(Event{Kind: RowsCleared, Tick: s.tick, Rows: len(rows)})
		if len(rows) > 0 {
			s.setFlow(CascadeFalling)
		} else {
			s.setFlow(PlayerFalling)
		}
		if s.cfg.WinRows > 0 && s.lines >= s.cfg.WinRows {
			s.RequestPlayState(Win)
		}

	case CascadeFalling:
		moved, err := s.board.Fall()
		if err != nil {
			return err
		}
		if !moved {
			s.setFlow(PlayerFalling)
		}
	}
	return nil
}

// invariant logs err when it carries a broken board invariant and returns it
// unchanged.
func (s *Session) invariant(err error) error {
	var inv *board.InvariantError
	if errors.As(err, &inv) {
		s.log.Printf("sim: tick %d aborted: missing cell at %s", s.tick, inv.Coord)
	}
	return err
}

// observer turns board notifications into queued events.
type observer struct {
	s *Session
}

func (o observer) UnitSpawned(h board.Handle, u board.Unit) {
	o.s.queue.push(Event{Kind: UnitSpawned, Tick: o.s.tick, Handle: h, Unit: u})
}

func (o observer) UnitMoved(h board.Handle, u board.Unit, from board.Coord) {
	o.s.queue.push(Event{Kind: UnitMoved, Tick: o.s.tick, Handle: h, Unit: u, From: from})
}

func (o observer) UnitDespawned(h board.Handle, u board.Unit) {
	o.s.queue.push(Event{Kind: UnitDespawned, Tick: o.s.tick, Handle: h, Unit: u})
}
