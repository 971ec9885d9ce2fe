package snake

// randomTries bounds the random probes before Respawn falls back to a scan.
const randomTries = 1024

// Apple is the single food cell. It owns its placement and its generator;
// the simulation only asks it to move.
type Apple struct {
	board Board
	pos   Point
	rng   uint32
}

// NewApple returns an apple for board with a seeded generator. Call Respawn to place it.
func NewApple(board Board, seed uint32) *Apple {
	return &Apple{board: board, rng: seed}
}

// Pos returns the apple cell.
func (a *Apple) Pos() Point { return a.pos }

// Respawn moves the apple to a random interior cell for which occupied is false.
// It reports false, leaving the apple where it was, if every interior cell is occupied.
func (a *Apple) Respawn(occupied func(Point) bool) bool {
	w := a.board.Width - 2
	h := a.board.Height - 2
	if w <= 0 || h <= 0 {
		return false
	}
	for tries := 0; tries < randomTries; tries++ {
		a.rng = xorshift32(a.rng)
		x := 1 + int(a.rng%uint32(w))
		a.rng = xorshift32(a.rng)
		y := 1 + int(a.rng%uint32(h))
		p := Point{X: x, Y: y}
		if occupied == nil || !occupied(p) {
			a.pos = p
			return true
		}
	}

	// Crowded board: take the first free cell in scan order.
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			p := Point{X: x, Y: y}
			if !occupied(p) {
				a.pos = p
				return true
			}
		}
	}
	return false
}

func xorshift32(x uint32) uint32 {
	if x == 0 {
		x = 0x6d2b79f5
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}
