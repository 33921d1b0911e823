package sat

// Stats summarises the most recent pass.
type Stats struct {
	Tick          uint64 // Passes run so far
	PairTests     int    // Pair tests run during the last pass
	Colliding     int    // Bodies flagged colliding after the last pass
	PeakColliding int    // Highest Colliding value seen over all passes
}

// World is the simulation context for one set of bodies: the body list, the
// externally driven selection index and the axis policy. It is not safe for
// concurrent use; the driving loop owns it.
type World struct {
	Bodies []*Body

	// Selected is the index of the body the user is controlling.
	// Out-of-range values select nothing.
	Selected int

	// Mode controls which axes each pair test uses.
	Mode AxisMode

	stats Stats
}

// NewWorld creates a world over the given bodies.
func NewWorld(bodies []*Body, mode AxisMode) *World {
	return &World{
		Bodies: bodies,
		Mode:   mode,
	}
}

// Stats returns the statistics of the most recent Step.
func (w *World) Stats() Stats {
	return w.stats
}

// Step runs one collision pass in a fixed order: clear the colliding flags,
// move every body by its speed, refresh selection flags, make sure every body
// has its axes, then test each unordered pair once using the lower-index
// body's axes.
func (w *World) Step() {
	for _, b := range w.Bodies {
		b.Colliding = false
	}

	for i, b := range w.Bodies {
		b.integrate()
		b.Selected = i == w.Selected
		b.EnsureNormals()
	}

	tests := 0
	for i := 0; i < len(w.Bodies); i++ {
		a := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			b := w.Bodies[j]
			TestPair(a, b, pairAxes(w.Mode, a, b))
			tests++
		}
	}

	colliding := 0
	for _, b := range w.Bodies {
		if b.Colliding {
			colliding++
		}
	}

	w.stats.Tick++
	w.stats.PairTests = tests
	w.stats.Colliding = colliding
	w.stats.PeakColliding = max(w.stats.PeakColliding, colliding)
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.Bodies)
}

// Add appends a body to the world.
func (w *World) Add(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Remove deletes the body with the given ID and reports whether it was found.
// The selection index is kept in range.
func (w *World) Remove(id int) bool {
	for i, b := range w.Bodies {
		if b.ID != id {
			continue
		}
		w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
		if w.Selected >= len(w.Bodies) {
			w.Selected = max(len(w.Bodies)-1, 0)
		}
		return true
	}
	return false
}

// SelectedBody returns the currently selected body or nil.
func (w *World) SelectedBody() *Body {
	if w.Selected < 0 || w.Selected >= len(w.Bodies) {
		return nil
	}
	return w.Bodies[w.Selected]
}

// SelectNext moves the selection forward, wrapping at the end.
func (w *World) SelectNext() {
	if len(w.Bodies) == 0 {
		return
	}
	w.Selected = (w.Selected + 1) % len(w.Bodies)
}

// SelectPrev moves the selection backward, wrapping at the start.
func (w *World) SelectPrev() {
	if len(w.Bodies) == 0 {
		return
	}
	w.Selected = (w.Selected - 1 + len(w.Bodies)) % len(w.Bodies)
}

// NextID returns an ID one above the highest ID in use.
func (w *World) NextID() int {
	id := 0
	for _, b := range w.Bodies {
		id = max(id, b.ID+1)
	}
	return id
}
