package scroll

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
)

type fakeRegion struct {
	top, height, client int
}

func (f *fakeRegion) ScrollTop() int       { return f.top }
func (f *fakeRegion) ScrollHeight() int    { return f.height }
func (f *fakeRegion) ClientHeight() int    { return f.client }
func (f *fakeRegion) SetScrollTop(top int) { f.top = top }

func TestRatioWithoutOverflowIsZero(t *testing.T) {
	t.Parallel()

	source := &fakeRegion{top: 0, height: 20, client: 20}
	target := &fakeRegion{top: 7, height: 100, client: 20}

	if r := Ratio(source); r != 0 || math.IsNaN(r) {
		t.Fatalf("expected ratio 0, got %v", r)
	}

	Sync(source, target)
	if target.top != 0 {
		t.Fatalf("expected target offset 0, got %d", target.top)
	}
}

func TestSyncScalesByRatio(t *testing.T) {
	t.Parallel()

	source := &fakeRegion{top: 40, height: 100, client: 20}
	target := &fakeRegion{height: 220, client: 20}

	Sync(source, target)
	if target.top != 100 {
		t.Fatalf("expected target offset 100, got %d", target.top)
	}

	source.top = 80
	Sync(source, target)
	if target.top != 200 {
		t.Fatalf("expected bottom offset 200, got %d", target.top)
	}
}

func TestRatioClamps(t *testing.T) {
	t.Parallel()

	if r := Ratio(&fakeRegion{top: 500, height: 100, client: 20}); r != 1 {
		t.Fatalf("expected clamp to 1, got %v", r)
	}
	if r := Ratio(&fakeRegion{top: -3, height: 100, client: 20}); r != 0 {
		t.Fatalf("expected clamp to 0, got %v", r)
	}
}

func TestTargetWithoutOverflowStaysAtTop(t *testing.T) {
	t.Parallel()

	target := &fakeRegion{top: 3, height: 5, client: 20}
	Sync(&fakeRegion{top: 10, height: 40, client: 20}, target)
	if target.top != 0 {
		t.Fatalf("expected 0, got %d", target.top)
	}
}

func TestCouplerOnlySyncsWhenEnabled(t *testing.T) {
	t.Parallel()

	source := &fakeRegion{top: 40, height: 100, client: 20}
	target := &fakeRegion{height: 220, client: 20}
	c := NewCoupler(source, target)

	if c.Scrolled() || target.top != 0 {
		t.Fatalf("disabled coupler must not touch the target")
	}

	c.SetEnabled(true)
	if !c.Scrolled() || target.top != 100 {
		t.Fatalf("expected sync to 100, got %d", target.top)
	}

	target.top = 5
	if c.Scrolled() {
		t.Fatalf("unchanged source position should not resync")
	}
	if target.top != 5 {
		t.Fatalf("target should be left alone, got %d", target.top)
	}

	c.Resync()
	if target.top != 100 {
		t.Fatalf("Resync should restore 100, got %d", target.top)
	}
}

func TestTrackerFollowsCursor(t *testing.T) {
	t.Parallel()

	var tr Tracker
	tr.Follow(0, 50, 10)
	if tr.ScrollTop() != 0 {
		t.Fatalf("expected top 0, got %d", tr.ScrollTop())
	}

	tr.Follow(15, 50, 10)
	if tr.ScrollTop() != 6 {
		t.Fatalf("expected top 6 after moving below the window, got %d", tr.ScrollTop())
	}

	tr.Follow(10, 50, 10)
	if tr.ScrollTop() != 6 {
		t.Fatalf("moving inside the window should not scroll, got %d", tr.ScrollTop())
	}

	tr.Follow(2, 50, 10)
	if tr.ScrollTop() != 2 {
		t.Fatalf("expected top 2 after moving above the window, got %d", tr.ScrollTop())
	}

	tr.Follow(2, 5, 10)
	if tr.ScrollTop() != 0 {
		t.Fatalf("short documents cannot scroll, got %d", tr.ScrollTop())
	}
}

func TestViewportRegion(t *testing.T) {
	t.Parallel()

	vp := viewport.New(20, 10)
	vp.SetContent(strings.Repeat("line\n", 39) + "line")
	region := Viewport{Model: &vp}

	if region.ScrollHeight() != 40 || region.ClientHeight() != 10 {
		t.Fatalf("unexpected dimensions %d/%d", region.ScrollHeight(), region.ClientHeight())
	}

	region.SetScrollTop(15)
	if region.ScrollTop() != 15 {
		t.Fatalf("expected offset 15, got %d", region.ScrollTop())
	}

	region.SetScrollTop(100)
	if region.ScrollTop() != 30 {
		t.Fatalf("expected offset clamped to 30, got %d", region.ScrollTop())
	}
}
