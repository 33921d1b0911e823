package core

import (
	"math"
	"strings"
	"sync"
)

// Cell is a single character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D cell buffer that scenes draw into.
// It decouples scene rendering from the terminal: scenes draw runes and colors
// while the platform converts the buffer to styled output.
//
// Drawing and Resize belong to the goroutine that owns the screen. Width,
// Height and Size may be called from any goroutine.
type Screen struct {
	sizeMu sync.RWMutex // Guards width and height against readers off the owner goroutine
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	s.sizeMu.RLock()
	defer s.sizeMu.RUnlock()
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	s.sizeMu.RLock()
	defer s.sizeMu.RUnlock()
	return s.height
}

// Size returns width and height from the same moment.
func (s *Screen) Size() (width, height int) {
	s.sizeMu.RLock()
	defer s.sizeMu.RUnlock()
	return s.width, s.height
}

// Bounds returns the screen area as a rectangle at the origin.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	old := s.cells
	copyW := min(s.width, width)
	copyH := min(s.height, height)

	s.sizeMu.Lock()
	s.width = width
	s.height = height
	s.sizeMu.Unlock()
	s.allocate()
	s.Clear()

	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], old[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position keeping its current color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// SetColor places a colored rune at the given position.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or a space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// DrawText writes a string horizontally starting at (x, y).
// Characters beyond the screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColor(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, c)
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(r.Right()-1, r.Y, '┐', c)
	s.SetColor(r.X, r.Bottom()-1, '└', c)
	s.SetColor(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(r.Right()-1, y, '│', c)
	}
}

// DrawLine draws a straight line between two cell positions (Bresenham).
func (s *Screen) DrawLine(x0, y0, x1, y1 int, r rune, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		s.SetColor(x0, y0, r, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// FillPolygon fills every cell whose center lies inside the polygon given in
// cell coordinates. Uses the even-odd rule so any simple polygon works.
func (s *Screen) FillPolygon(pts []Vec2, r rune, c Color) {
	if len(pts) < 3 {
		return
	}
	box := EmptyBox()
	for _, p := range pts {
		box = box.Extend(p)
	}
	x0 := Clamp(int(math.Floor(box.Min.X())), 0, s.width)
	x1 := Clamp(int(math.Ceil(box.Max.X())), 0, s.width)
	y0 := Clamp(int(math.Floor(box.Min.Y())), 0, s.height)
	y1 := Clamp(int(math.Ceil(box.Max.Y())), 0, s.height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if containsPoint(pts, float64(x)+0.5, float64(y)+0.5) {
				s.SetColor(x, y, r, c)
			}
		}
	}
}

// StrokePolygon draws the closed outline of a polygon given in cell coordinates.
func (s *Screen) StrokePolygon(pts []Vec2, r rune, c Color) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		s.DrawLine(
			int(math.Floor(a.X())), int(math.Floor(a.Y())),
			int(math.Floor(b.X())), int(math.Floor(b.Y())),
			r, c,
		)
	}
}

func containsPoint(pts []Vec2, px, py float64) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		xi, yi := pts[i].X(), pts[i].Y()
		xj, yj := pts[j].X(), pts[j].Y()
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// String converts the screen buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
