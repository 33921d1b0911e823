package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-collide/internal/core"
)

const (
	hudHeight    = 2  // Status line and separator
	clearTicks   = 45 // Level-cleared banner, 1.5s at 30 ticks per second
	startSegment = 3
)

// Direction is the heading of the snake.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Point is a cell on the level grid.
type Point struct {
	X, Y int
}

// Game is the snake rules engine. It is not safe for concurrent use.
type Game struct {
	rng   *rand.Rand
	tick  uint64
	score int
	eaten int // Food eaten on the current level
	level int

	moveEvery  int
	moveTicker int

	body    []Point // Head first
	dir     Direction
	nextDir Direction
	growing bool

	mapW, mapH int
	walls      map[Point]bool
	food       Point
	offsetX    int
	offsetY    int

	screenW, screenH int

	gameOver   bool
	cleared    bool
	clearTimer int
	won        bool
	paused     bool
	tooSmall   bool
}

// NewGame returns a game on the first level, sized for the given screen.
func NewGame(seed int64, screenW, screenH int) *Game {
	g := &Game{}
	g.Reset(seed, screenW, screenH)
	return g
}

// Reset restarts the campaign from the first level.
func (g *Game) Reset(seed int64, screenW, screenH int) {
	*g = Game{
		rng:     rand.New(rand.NewSource(seed)),
		screenW: screenW,
		screenH: screenH,
	}
	g.loadLevel()
}

func (g *Game) loadLevel() {
	lvl := GetLevel(g.level)
	if lvl == nil {
		return
	}
	g.moveEvery = lvl.MoveEveryTicks
	g.moveTicker = 0
	g.eaten = 0
	g.cleared = false

	g.mapH = len(lvl.Layout)
	g.mapW = 0
	for _, row := range lvl.Layout {
		g.mapW = max(g.mapW, len(row))
	}

	g.tooSmall = g.screenW < g.mapW+2 || g.screenH < g.mapH+hudHeight+1
	if g.tooSmall {
		return
	}
	g.offsetX = (g.screenW - g.mapW) / 2
	g.offsetY = hudHeight

	g.walls = make(map[Point]bool)
	for y, row := range lvl.Layout {
		for x, ch := range row {
			if ch == '#' {
				g.walls[Point{x, y}] = true
			}
		}
	}

	g.placeSnake()
	g.spawnFood()
}

// placeSnake puts a short snake heading right on a clear row.
func (g *Game) placeSnake() {
	x, y := g.mapW/4, g.mapH/2
	for range 100 {
		if g.clearRun(x, y, startSegment) {
			break
		}
		x = 2 + g.rng.Intn(max(1, g.mapW/2))
		y = 2 + g.rng.Intn(max(1, g.mapH-4))
	}

	g.body = g.body[:0]
	for i := startSegment - 1; i >= 0; i-- {
		g.body = append(g.body, Point{x + i, y})
	}
	g.dir, g.nextDir = DirRight, DirRight
	g.growing = false
}

func (g *Game) clearRun(x, y, n int) bool {
	for i := range n {
		p := Point{x + i, y}
		if g.walls[p] || p.X < 1 || p.X >= g.mapW-1 || p.Y < 1 || p.Y >= g.mapH-1 {
			return false
		}
	}
	return true
}

// spawnFood picks a random free interior cell. Food goes off the grid when
// none is left.
func (g *Game) spawnFood() {
	var free []Point
	for y := 1; y < g.mapH-1; y++ {
		for x := 1; x < g.mapW-1; x++ {
			p := Point{x, y}
			if !g.walls[p] && !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.food = Point{-1, -1}
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

func (g *Game) occupied(p Point) bool {
	for _, seg := range g.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) {
	g.tick++

	if in.Has(core.ActionConfirm) && (g.gameOver || g.won) {
		g.Reset(g.rng.Int63(), g.screenW, g.screenH)
		return
	}
	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.gameOver || g.won || g.paused || g.tooSmall {
		return
	}

	if g.cleared {
		g.clearTimer++
		if g.clearTimer >= clearTicks {
			g.advance()
		}
		return
	}

	g.steer(in)

	g.moveTicker++
	if g.moveTicker >= g.moveEvery {
		g.moveTicker = 0
		g.move()
	}
}

func (g *Game) steer(in core.InputFrame) {
	d := g.nextDir
	switch {
	case in.Has(core.ActionUp):
		d = DirUp
	case in.Has(core.ActionDown):
		d = DirDown
	case in.Has(core.ActionLeft):
		d = DirLeft
	case in.Has(core.ActionRight):
		d = DirRight
	}
	// Reversal is checked against the heading of the last move.
	if !d.opposite(g.dir) {
		g.nextDir = d
	}
}

func (g *Game) move() {
	if len(g.body) == 0 {
		return
	}
	g.dir = g.nextDir

	head := g.body[0]
	switch g.dir {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if g.walls[head] || head.X < 0 || head.X >= g.mapW || head.Y < 0 || head.Y >= g.mapH {
		g.gameOver = true
		return
	}

	// The tail cell frees up this move unless the snake is growing.
	n := len(g.body)
	if !g.growing {
		n--
	}
	for _, seg := range g.body[:n] {
		if seg == head {
			g.gameOver = true
			return
		}
	}

	g.body = append([]Point{head}, g.body...)
	if head == g.food {
		g.score++
		g.eaten++
		g.growing = true
		g.spawnFood()
		if lvl := GetLevel(g.level); lvl != nil && g.eaten >= lvl.TargetFood {
			g.cleared = true
			g.clearTimer = 0
		}
	}

	if g.growing {
		g.growing = false
	} else {
		g.body = g.body[:len(g.body)-1]
	}
}

func (g *Game) advance() {
	g.level++
	if g.level >= LevelCount() {
		g.won = true
		g.cleared = false
		return
	}
	g.loadLevel()
}

// Resize records a new screen size and recentres the level. The level
// restarts when it did not fit before.
func (g *Game) Resize(screenW, screenH int) {
	if screenW == g.screenW && screenH == g.screenH {
		return
	}
	g.screenW, g.screenH = screenW, screenH
	if g.tooSmall {
		g.loadLevel()
		return
	}
	if screenW < g.mapW+2 || screenH < g.mapH+hudHeight+1 {
		g.tooSmall = true
		return
	}
	g.offsetX = (screenW - g.mapW) / 2
}

// Render draws the HUD, the level and any banner.
func (g *Game) Render(dst *core.Screen, pal Palette) {
	w := dst.Width()
	hud := fmt.Sprintf(" Snake | score %d | level %d/%d | food %d", g.score, g.level+1, LevelCount(), g.eaten)
	if lvl := GetLevel(g.level); lvl != nil {
		hud += "/" + fmt.Sprint(lvl.TargetFood)
	}
	dst.DrawText(0, 0, hud, core.ColorDefault)
	dst.DrawLine(0, 1, w-1, 1, '-', core.ColorGray)

	if g.tooSmall {
		g.banner(dst, "Window too small", "Resize to continue")
		return
	}

	for p := range g.walls {
		dst.SetColor(g.offsetX+p.X, g.offsetY+p.Y, '#', pal.Wall)
	}
	for i, seg := range g.body {
		r := 'o'
		if i == 0 {
			r = 'O'
		}
		dst.SetColor(g.offsetX+seg.X, g.offsetY+seg.Y, r, pal.Snake)
	}
	if g.food.X >= 0 {
		dst.SetColor(g.offsetX+g.food.X, g.offsetY+g.food.Y, '*', pal.Food)
	}

	switch {
	case g.won:
		g.banner(dst, "You win!", fmt.Sprintf("Final score %d | Enter: again", g.score))
	case g.gameOver:
		g.banner(dst, "Game over", "Enter: restart | Esc: menu")
	case g.cleared:
		name := ""
		if lvl := GetLevel(g.level); lvl != nil {
			name = lvl.Name
		}
		g.banner(dst, fmt.Sprintf("Level %d cleared", g.level+1), name)
	case g.paused:
		g.banner(dst, "Paused", "Space: continue")
	}
}

func (g *Game) banner(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-5)/2, boxW, 5)
	for y := box.Y + 1; y < box.Y+box.H-1; y++ {
		for x := box.X + 1; x < box.X+box.W-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorGray)
}

// Snapshot is a copy of the game state for tests and logging.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Length   int
	Head     Point
	Dir      Direction
	Food     Point
	GameOver bool
	Won      bool
	Paused   bool
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Level:    g.level,
		Length:   len(g.body),
		Dir:      g.dir,
		Food:     g.food,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
	if len(g.body) > 0 {
		s.Head = g.body[0]
	}
	return s
}
