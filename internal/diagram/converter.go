package diagram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Result struct {
	Markup string
}

// Converter turns one diagram source into displayable markup.
type Converter interface {
	Convert(ctx context.Context, id, source string) (Result, error)
}

type ConverterFunc func(ctx context.Context, id, source string) (Result, error)

func (f ConverterFunc) Convert(ctx context.Context, id, source string) (Result, error) {
	return f(ctx, id, source)
}

// NewConverter returns an ExecConverter when cfg names an external command and
// a FrameConverter otherwise.
func NewConverter(cfg *Config) Converter {
	if cfg != nil && strings.TrimSpace(cfg.Command) != "" {
		return &ExecConverter{cfg: cfg}
	}
	return &FrameConverter{cfg: cfg}
}

// ExecConverter pipes the diagram source into an external renderer and uses
// its standard output as markup.
type ExecConverter struct {
	cfg *Config
}

func NewExecConverter(cfg *Config) *ExecConverter {
	return &ExecConverter{cfg: cfg}
}

func (c *ExecConverter) Convert(ctx context.Context, id, source string) (Result, error) {
	if c == nil || c.cfg == nil || c.cfg.Command == "" {
		return Result{}, errors.New("diagram command is not configured")
	}

	cmd := exec.CommandContext(ctx, c.cfg.Command, c.cfg.expandArgs(id)...)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return Result{}, fmt.Errorf("%s: %w: %s", c.cfg.Command, err, msg)
		}
		return Result{}, fmt.Errorf("%s: %w", c.cfg.Command, err)
	}

	return Result{Markup: strings.TrimRight(stdout.String(), "\n")}, nil
}

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#334455")).
	Padding(0, 1)

var frameTitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#0AF")).
	Bold(true)

// FrameConverter draws the diagram source inside a titled box. It is the
// fallback for terminals without an external diagram renderer.
type FrameConverter struct {
	cfg *Config
}

func NewFrameConverter(cfg *Config) *FrameConverter {
	return &FrameConverter{cfg: cfg}
}

func (c *FrameConverter) Convert(ctx context.Context, id, source string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	body := strings.TrimRight(source, "\n")
	if strings.TrimSpace(body) == "" {
		return Result{}, errors.New("empty diagram")
	}

	title := "diagram"
	if c != nil && c.cfg != nil && c.cfg.Theme != "" && c.cfg.Theme != DefaultTheme {
		title = fmt.Sprintf("diagram · %s", c.cfg.Theme)
	}

	return Result{
		Markup: lipgloss.JoinVertical(
			lipgloss.Left,
			frameTitleStyle.Render(title),
			frameStyle.Render(body),
		),
	}, nil
}
