package preview

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Paintersrp/markedit/internal/diagram"
	"github.com/Paintersrp/markedit/internal/markdown"
)

// Render runs a single settled pass over source and returns the preview text
// without the focus gutter. When ctx ends before every diagram is converted
// the text is returned with those diagrams left empty.
func Render(ctx context.Context, renderer *markdown.Renderer, pipeline *diagram.Pipeline, opts markdown.Options, source, theme string, width int) (string, error) {
	o := New(renderer, pipeline, opts)
	defer o.Close()

	o.SetSize(width+gutterWidth, 1)
	err := o.Settle(ctx, o.Update(source, theme))
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.Printf("render: %d diagram(s) left empty: %v", o.Pending(), err)
	case err != nil:
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return o.container.Content(), nil
}
