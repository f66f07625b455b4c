// Package scroll couples the source pane to the preview pane by scroll ratio.
//
// Coupling is one-way: the source drives the target and nothing writes back,
// so two listeners can never feed each other.
package scroll

// Region is a line-addressed scrollable area.
type Region interface {
	ScrollTop() int
	ScrollHeight() int
	ClientHeight() int
	SetScrollTop(top int)
}

// Ratio returns how far source is scrolled, in [0, 1]. A region without
// overflow has ratio 0.
func Ratio(source Region) float64 {
	span := source.ScrollHeight() - source.ClientHeight()
	if span <= 0 {
		return 0
	}

	ratio := float64(source.ScrollTop()) / float64(span)
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	}
	return ratio
}

// Offset returns the scroll position of target matching ratio.
func Offset(target Region, ratio float64) int {
	span := target.ScrollHeight() - target.ClientHeight()
	if span <= 0 {
		return 0
	}
	return int(ratio*float64(span) + 0.5)
}

// Sync moves target to the same relative position as source.
func Sync(source, target Region) {
	target.SetScrollTop(Offset(target, Ratio(source)))
}

// Coupler runs Sync only while both panes are on screen.
type Coupler struct {
	source  Region
	target  Region
	enabled bool
	last    int
}

func NewCoupler(source, target Region) *Coupler {
	return &Coupler{source: source, target: target, last: -1}
}

// SetEnabled turns coupling on when both panes are visible side by side.
func (c *Coupler) SetEnabled(enabled bool) {
	if c == nil {
		return
	}
	if enabled && !c.enabled {
		c.last = -1
	}
	c.enabled = enabled
}

func (c *Coupler) Enabled() bool {
	return c != nil && c.enabled
}

// Scrolled is called after every source scroll event. It syncs the target
// when the source position changed and reports whether it did.
func (c *Coupler) Scrolled() bool {
	if c == nil || !c.enabled || c.source == nil || c.target == nil {
		return false
	}

	top := c.source.ScrollTop()
	if top == c.last {
		return false
	}
	c.last = top
	Sync(c.source, c.target)
	return true
}

// Resync forces a sync, for example after the target content changed size.
func (c *Coupler) Resync() {
	if c == nil || !c.enabled || c.source == nil || c.target == nil {
		return
	}
	c.last = c.source.ScrollTop()
	Sync(c.source, c.target)
}
