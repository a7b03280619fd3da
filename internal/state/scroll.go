package state

type ScrollTracker struct {
	nav        *NavVisibility
	lastOffset float64
}

func NewScrollTracker(nav *NavVisibility) *ScrollTracker {
	return &ScrollTracker{nav: nav}
}

// OnScroll applies one vertical offset sample. At or above the top the bar is
// always shown, whatever the direction. A zero delta leaves it unchanged.
func (s *ScrollTracker) OnScroll(offset float64) {
	delta := offset - s.lastOffset
	switch {
	case offset <= 0:
		s.nav.SetVisible(true)
	case delta > 0:
		s.nav.SetVisible(false)
	case delta < 0:
		s.nav.SetVisible(true)
	}
	s.lastOffset = offset
}

func (s *ScrollTracker) Reset() {
	s.lastOffset = 0
}
