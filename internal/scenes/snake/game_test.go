package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-collide/internal/core"
)

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// moveOnce steps g so that the snake moves exactly one cell.
func moveOnce(g *Game, in core.InputFrame) {
	g.moveTicker = g.moveEvery - 1
	g.Step(in)
}

func TestDeterminism(t *testing.T) {
	g1 := NewGame(12345, 80, 24)
	g2 := NewGame(12345, 80, 24)

	for i := range 200 {
		in := core.NewInputFrame()
		switch i {
		case 20:
			in.Set(core.ActionDown)
		case 40:
			in.Set(core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestInitialPlacement(t *testing.T) {
	g := NewGame(1, 80, 24)
	snap := g.Snapshot()

	if snap.Length != startSegment || snap.Dir != DirRight {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Head != (Point{12, 8}) {
		t.Errorf("head = %+v, expected {12 8}", snap.Head)
	}
	if g.offsetX != 20 || g.offsetY != hudHeight {
		t.Errorf("offset = %d,%d", g.offsetX, g.offsetY)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := NewGame(42, 80, 24)

	g.Step(press(core.ActionLeft))
	if g.nextDir == DirLeft {
		t.Error("reversal from right to left was accepted")
	}

	g.Step(press(core.ActionDown))
	if g.nextDir != DirDown {
		t.Errorf("nextDir = %v, expected down", g.nextDir)
	}

	// Still heading right until the next move, so left stays blocked.
	g.Step(press(core.ActionLeft))
	if g.nextDir == DirLeft {
		t.Error("reversal checked against the buffered direction instead of the heading")
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	for _, level := range []int{0, 1, 2} {
		g := NewGame(999, 80, 24)
		g.level = level
		g.loadLevel()

		for range 100 {
			g.spawnFood()
			f := g.food
			if g.walls[f] {
				t.Errorf("level %d: food on a wall at %+v", level, f)
			}
			if g.occupied(f) {
				t.Errorf("level %d: food on the snake at %+v", level, f)
			}
			if f.X < 1 || f.X >= g.mapW-1 || f.Y < 1 || f.Y >= g.mapH-1 {
				t.Errorf("level %d: food outside the interior at %+v", level, f)
			}
		}
	}
}

func TestGrowth(t *testing.T) {
	g := NewGame(7, 80, 24)
	g.food = Point{13, 8}

	moveOnce(g, core.NewInputFrame())
	snap := g.Snapshot()
	if snap.Score != 1 || snap.Length != startSegment+1 {
		t.Fatalf("after eating: score %d length %d", snap.Score, snap.Length)
	}
	if snap.Head != (Point{13, 8}) {
		t.Errorf("head = %+v", snap.Head)
	}

	g.food = Point{1, 1}
	moveOnce(g, core.NewInputFrame())
	if got := g.Snapshot().Length; got != startSegment+1 {
		t.Errorf("length = %d after a plain move, expected %d", got, startSegment+1)
	}
}

func TestCollisions(t *testing.T) {
	tests := []struct {
		name     string
		body     []Point
		dir      Direction
		next     Direction
		gameOver bool
	}{
		{
			name:     "wall",
			body:     []Point{{38, 8}, {37, 8}, {36, 8}},
			dir:      DirRight,
			next:     DirRight,
			gameOver: true,
		},
		{
			name:     "own body",
			body:     []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}},
			dir:      DirLeft,
			next:     DirDown,
			gameOver: true,
		},
		{
			name: "tail moves out of the way",
			body: []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}},
			dir:  DirLeft,
			next: DirDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame(3, 80, 24)
			g.body = tt.body
			g.dir, g.nextDir = tt.dir, tt.next
			g.food = Point{1, 1}

			moveOnce(g, core.NewInputFrame())
			if got := g.Snapshot().GameOver; got != tt.gameOver {
				t.Errorf("game over = %v, expected %v", got, tt.gameOver)
			}
		})
	}
}

func TestLevelCompletionAndWin(t *testing.T) {
	g := NewGame(5, 80, 24)

	for level := range LevelCount() {
		if g.level != level {
			t.Fatalf("on level %d, expected %d", g.level, level)
		}
		g.eaten = GetLevel(level).TargetFood - 1
		head := g.body[0]
		g.food = Point{head.X + 1, head.Y}

		moveOnce(g, core.NewInputFrame())
		if !g.cleared {
			t.Fatalf("level %d not cleared after reaching the target", level)
		}
		for range clearTicks {
			g.Step(core.NewInputFrame())
		}
	}

	snap := g.Snapshot()
	if !snap.Won || snap.Score != LevelCount() {
		t.Fatalf("after the last level: %+v", snap)
	}

	g.Step(press(core.ActionConfirm))
	snap = g.Snapshot()
	if snap.Won || snap.Level != 0 || snap.Score != 0 {
		t.Errorf("confirm should restart the campaign, got %+v", snap)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := NewGame(9, 80, 24)
	g.gameOver = true

	g.Step(press(core.ActionPause))
	if g.paused {
		t.Error("pause should be ignored once the game is over")
	}
	g.Step(press(core.ActionConfirm))
	if g.Snapshot().GameOver {
		t.Error("confirm should restart after game over")
	}
}

func TestPause(t *testing.T) {
	g := NewGame(11, 80, 24)
	head := g.Snapshot().Head

	g.Step(press(core.ActionPause))
	for range 20 {
		g.Step(core.NewInputFrame())
	}
	if got := g.Snapshot().Head; got != head {
		t.Errorf("paused snake moved from %+v to %+v", head, got)
	}

	g.Step(press(core.ActionPause))
	for range g.moveEvery {
		g.Step(core.NewInputFrame())
	}
	if got := g.Snapshot().Head; got == head {
		t.Error("snake did not move after unpausing")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := NewGame(1, 30, 10)
	if !g.tooSmall {
		t.Fatal("30x10 should be too small for the first level")
	}
	before := g.Snapshot()
	g.Step(press(core.ActionDown))
	if g.Snapshot().Head != before.Head {
		t.Error("a game that does not fit should not move")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen, Palette{})
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small banner missing")
	}

	g.Resize(80, 24)
	if g.tooSmall || len(g.body) != startSegment {
		t.Error("growing the screen should load the level")
	}
}

func TestRender(t *testing.T) {
	g := NewGame(1, 80, 24)
	screen := core.NewScreen(80, 24)
	pal := Palette{Wall: core.ColorCyan, Snake: core.ColorYellow, Food: core.ColorRed}
	g.Render(screen, pal)

	if !strings.Contains(screen.Row(0), "Snake | score 0 | level 1/3") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	head := g.body[0]
	cell := screen.GetCell(g.offsetX+head.X, g.offsetY+head.Y)
	if cell.Rune != 'O' || cell.Color != core.ColorYellow {
		t.Errorf("head cell = %+v", cell)
	}
	if got := screen.Get(g.offsetX+g.food.X, g.offsetY+g.food.Y); got != '*' {
		t.Errorf("food cell = %q", got)
	}
	if got := screen.GetCell(g.offsetX, g.offsetY); got.Rune != '#' || got.Color != core.ColorCyan {
		t.Errorf("corner wall = %+v", got)
	}

	g.gameOver = true
	g.Render(screen, pal)
	if !strings.Contains(screen.String(), "Game over") {
		t.Error("game over banner missing")
	}
}

func TestParseLevels(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "levels: []", "no levels"},
		{"short layout", "levels:\n  - {name: a, target_food: 1, move_every_ticks: 1, layout: ['###']}", "at least 3 rows"},
		{"no target", "levels:\n  - {name: a, move_every_ticks: 1, layout: ['###', '#.#', '###']}", "target_food"},
		{"no speed", "levels:\n  - {name: a, target_food: 1, layout: ['###', '#.#', '###']}", "move_every_ticks"},
		{"bad yaml", "levels: [", "parse levels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevels([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, expected it to mention %q", err, tt.want)
			}
		})
	}

	if LevelCount() != 3 || GetLevel(0).Name != "Open Field" || GetLevel(3) != nil {
		t.Error("embedded levels not loaded as expected")
	}
}
