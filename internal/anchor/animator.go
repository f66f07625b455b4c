package anchor

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/Paintersrp/markedit/internal/scroll"
)

const (
	fps       = 60
	frequency = 7.0
	damping   = 1.0
)

// FrameMsg advances the animation with the matching id.
type FrameMsg struct {
	ID int
}

// Animator springs a region's scroll position towards a goal, one frame per
// tea.Tick.
type Animator struct {
	id     int
	spring harmonica.Spring
	region scroll.Region
	pos    float64
	vel    float64
	goal   float64
	active bool
}

func NewAnimator() *Animator {
	return &Animator{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Start begins a new animation, superseding any running one.
func (a *Animator) Start(region scroll.Region, goal int) tea.Cmd {
	a.id++
	a.region = region
	a.pos = float64(region.ScrollTop())
	a.vel = 0
	a.goal = float64(goal)
	a.active = true

	if region.ScrollTop() == goal {
		a.active = false
		return nil
	}
	return a.tick()
}

// Update handles a frame. Frames from superseded animations are ignored.
func (a *Animator) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(FrameMsg)
	if !ok || !a.active || frame.ID != a.id {
		return nil
	}

	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.goal)
	if math.Abs(a.goal-a.pos) < 0.5 && math.Abs(a.vel) < 0.5 {
		a.region.SetScrollTop(int(a.goal))
		a.active = false
		return nil
	}

	a.region.SetScrollTop(int(math.Round(a.pos)))
	return a.tick()
}

// Stop abandons the running animation where it is.
func (a *Animator) Stop() {
	a.active = false
}

func (a *Animator) Animating() bool {
	return a != nil && a.active
}

func (a *Animator) tick() tea.Cmd {
	id := a.id
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return FrameMsg{ID: id}
	})
}
