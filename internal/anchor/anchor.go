// Package anchor resolves same-document links inside the preview and scrolls
// the preview to the target.
package anchor

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/markedit/internal/markdown"
	"github.com/Paintersrp/markedit/internal/scroll"
)

// VisualOffset keeps the target one line below the top edge.
const VisualOffset = 1

// Target is a scrollable container that can locate rendered elements by id.
type Target interface {
	scroll.Region
	// Offset returns the first content line of the element carrying id.
	Offset(id string) (int, bool)
}

// Decode strips the leading '#' and percent-decoding from href. Invalid
// escapes are kept verbatim.
func Decode(href string) string {
	id := strings.TrimPrefix(strings.TrimSpace(href), "#")
	if decoded, err := url.PathUnescape(id); err == nil {
		return decoded
	}
	return id
}

// Resolve returns the scroll position that brings href into view. The id is
// matched exactly first, then with the user-content prefix.
func Resolve(target Target, href string) (int, bool) {
	if target == nil {
		return 0, false
	}

	id := Decode(href)
	if id == "" {
		return 0, false
	}

	offset, ok := target.Offset(id)
	if !ok {
		offset, ok = target.Offset(markdown.UserContentPrefix + id)
	}
	if !ok {
		return 0, false
	}

	top := offset - VisualOffset
	if maxTop := target.ScrollHeight() - target.ClientHeight(); top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top, true
}

// Navigate scrolls target to href. The scroll is animated when anim is set
// and immediate otherwise. An unknown target leaves the container untouched.
func Navigate(target Target, anim *Animator, href string) tea.Cmd {
	top, ok := Resolve(target, href)
	if !ok {
		return nil
	}

	if anim == nil {
		target.SetScrollTop(top)
		return nil
	}
	return anim.Start(target, top)
}
