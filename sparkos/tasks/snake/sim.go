package snake

import (
	"errors"
	"fmt"
)

const (
	DefaultWidth  = 30
	DefaultHeight = 30

	initialLength = 3
	minBoardSide  = 5

	// maxBoardSide keeps the board's pixel size (TileSize per cell) within int16.
	maxBoardSide = 1000
)

var (
	ErrBoardTooSmall = errors.New("snake: board too small")
	ErrBoardTooLarge = errors.New("snake: board too large")
	ErrStartOutside  = errors.New("snake: start body outside the interior")
)

// Dir is a movement direction on the grid. Y grows downwards.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Valid reports whether d is one of the four cardinal directions.
func (d Dir) Valid() bool { return d <= DirLeft }

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir { return (d + 2) % 4 }

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return fmt.Sprintf("Dir(%d)", uint8(d))
	}
}

func (d Dir) delta() Point {
	switch d {
	case DirUp:
		return Point{Y: -1}
	case DirDown:
		return Point{Y: 1}
	case DirLeft:
		return Point{X: -1}
	case DirRight:
		return Point{X: 1}
	}
	return Point{}
}

// Point is a grid cell.
type Point struct {
	X int
	Y int
}

func (p Point) add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Board is the grid size. Its outer ring of cells is the wall.
type Board struct {
	Width  int
	Height int
}

// Interior reports whether p is a playable cell (not on or beyond the wall).
func (b Board) Interior(p Point) bool {
	return p.X >= 1 && p.X <= b.Width-2 && p.Y >= 1 && p.Y <= b.Height-2
}

// Config describes a session. Zero fields take the defaults.
type Config struct {
	Width  int
	Height int

	// Start is the initial head cell; the body trails below it.
	// The zero value picks (Width*2/3, Height*2/3).
	Start Point

	// Seed drives apple placement.
	Seed uint32
}

func (c Config) withDefaults() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Start == (Point{}) {
		c.Start = Point{X: c.Width * 2 / 3, Y: c.Height * 2 / 3}
	}
	return c
}

// Status is the outcome of one tick.
type Status struct {
	Alive bool
	Score int
}

// Sim is the snake simulation. It is passive: the caller drives it with Tick.
type Sim struct {
	cfg   Config
	board Board
	apple *Apple

	body    []Point
	dir     Dir
	lastDir Dir
	score   int
	over    bool
}

// New validates cfg and returns a simulation in its initial state.
func New(cfg Config) (*Sim, error) {
	cfg = cfg.withDefaults()
	if cfg.Width < minBoardSide || cfg.Height < minBoardSide {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrBoardTooSmall, cfg.Width, cfg.Height, minBoardSide, minBoardSide)
	}
	if cfg.Width > maxBoardSide || cfg.Height > maxBoardSide {
		return nil, fmt.Errorf("%w: %dx%d (maximum %dx%d)", ErrBoardTooLarge, cfg.Width, cfg.Height, maxBoardSide, maxBoardSide)
	}
	board := Board{Width: cfg.Width, Height: cfg.Height}
	for i := 0; i < initialLength; i++ {
		p := Point{X: cfg.Start.X, Y: cfg.Start.Y + i}
		if !board.Interior(p) {
			return nil, fmt.Errorf("%w: %+v on %dx%d", ErrStartOutside, p, cfg.Width, cfg.Height)
		}
	}

	s := &Sim{
		cfg:   cfg,
		board: board,
		apple: NewApple(board, cfg.Seed),
	}
	s.reset()
	return s, nil
}

// Reset restores the initial body, direction and score. The apple generator keeps
// its state, so a restarted game sees fresh apple positions.
func (s *Sim) Reset() {
	s.reset()
}

func (s *Sim) reset() {
	s.body = s.body[:0]
	for i := 0; i < initialLength; i++ {
		s.body = append(s.body, Point{X: s.cfg.Start.X, Y: s.cfg.Start.Y + i})
	}
	s.dir = DirUp
	s.lastDir = DirUp
	s.score = 0
	s.over = false
	if !s.apple.Respawn(s.occupied) {
		s.over = true
	}
}

// SetDirection requests the direction for the next tick. It is ignored (and
// reports false) when d would reverse the direction applied on the last tick.
func (s *Sim) SetDirection(d Dir) bool {
	if !d.Valid() || d == s.lastDir.Opposite() {
		return false
	}
	s.dir = d
	return true
}

// Tick advances the game by one step.
func (s *Sim) Tick() Status {
	if s.over {
		return s.status()
	}

	s.lastDir = s.dir

	tail := s.body[len(s.body)-1]
	for i := len(s.body) - 1; i > 0; i-- {
		s.body[i] = s.body[i-1]
	}
	s.body[0] = s.body[0].add(s.dir.delta())
	head := s.body[0]

	if head == s.apple.Pos() {
		// The vacated tail cell lies one step beyond the new tail along its trailing direction.
		s.body = append(s.body, tail)
		s.score++
		if !s.apple.Respawn(s.occupied) {
			s.over = true
		}
	}

	if !s.board.Interior(head) || s.hitsBody(head) {
		s.over = true
	}
	return s.status()
}

func (s *Sim) status() Status {
	return Status{Alive: !s.over, Score: s.score}
}

func (s *Sim) hitsBody(head Point) bool {
	for _, p := range s.body[1:] {
		if p == head {
			return true
		}
	}
	return false
}

func (s *Sim) occupied(p Point) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}
	return false
}

// Body returns a copy of the snake cells, head first.
func (s *Sim) Body() []Point {
	out := make([]Point, len(s.body))
	copy(out, s.body)
	return out
}

// Head returns the head cell.
func (s *Sim) Head() Point { return s.body[0] }

// Apple returns the apple cell.
func (s *Sim) Apple() Point { return s.apple.Pos() }

// Score returns the number of apples eaten.
func (s *Sim) Score() int { return s.score }

// Alive reports whether the game is still running.
func (s *Sim) Alive() bool { return !s.over }

// Direction returns the direction the next tick will move in.
func (s *Sim) Direction() Dir { return s.dir }

// Board returns the grid size.
func (s *Sim) Board() Board { return s.board }
