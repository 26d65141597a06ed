package host

// Observer reports when the trigger line enters a section. The trigger line
// sits at a fixed fraction of the viewport height below the scroll position.
// Entering a section from above and re-entering it from below both count.
type Observer struct {
	trigger float64 // fraction of viewport height from the top
	height  float64 // section height in pixels
	count   int

	active int // index of the section holding the trigger line, -1 for none
}

// NewObserver creates an observer over count sections
func NewObserver(count int, trigger float64) *Observer {
	return &Observer{trigger: trigger, count: count, active: -1}
}

// Layout sets the section height in pixels
func (o *Observer) Layout(sectionHeight float64) {
	o.height = sectionHeight
}

// Top returns the document offset of section i
func (o *Observer) Top(i int) float64 {
	return float64(i) * o.height
}

// Update checks the trigger line for scroll position pos in a viewport of
// the given height. It returns the index of a newly entered section, or
// ok=false if the line stayed in the same section or left the page.
func (o *Observer) Update(pos, viewport float64) (index int, ok bool) {
	if o.height <= 0 || o.count == 0 {
		return -1, false
	}
	line := pos + viewport*o.trigger
	i := int(line / o.height)
	if line < 0 || i >= o.count {
		o.active = -1
		return -1, false
	}
	if i == o.active {
		return i, false
	}
	o.active = i
	return i, true
}

// Active returns the section currently holding the trigger line
func (o *Observer) Active() (int, bool) {
	return o.active, o.active >= 0
}
