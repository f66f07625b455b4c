package diagram

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync/atomic"
	"testing"
)

func runCmd(t *testing.T, p *Pipeline, token *Token, key, source string) ResultMsg {
	t.Helper()

	msg, ok := p.Render(token, key, source)().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg")
	}
	return msg
}

func TestRenderCommitsMarkup(t *testing.T) {
	t.Parallel()

	p := NewPipeline(DefaultConfig(), ConverterFunc(func(ctx context.Context, id, source string) (Result, error) {
		return Result{Markup: "<" + source + ">"}, nil
	}))
	defer p.Close()

	token := p.NewToken()
	msg := runCmd(t, p, token, "k", "graph TD")
	if msg.Err != nil {
		t.Fatalf("unexpected error: %v", msg.Err)
	}
	if msg.Markup != "<graph TD>" || msg.Key != "k" || msg.Token != token {
		t.Fatalf("unexpected result: %#v", msg)
	}
}

func TestRenderFailureYieldsEmptyMarkup(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	p := NewPipeline(nil, ConverterFunc(func(ctx context.Context, id, source string) (Result, error) {
		return Result{Markup: "partial"}, boom
	}))
	defer p.Close()

	msg := runCmd(t, p, p.NewToken(), "k", "bad")
	if !errors.Is(msg.Err, boom) {
		t.Fatalf("expected boom, got %v", msg.Err)
	}
	if msg.Markup != "" {
		t.Fatalf("expected empty markup on failure, got %q", msg.Markup)
	}
}

func TestRenderRecoversConverterPanic(t *testing.T) {
	t.Parallel()

	p := NewPipeline(nil, ConverterFunc(func(ctx context.Context, id, source string) (Result, error) {
		panic("converter exploded")
	}))
	defer p.Close()

	msg := runCmd(t, p, p.NewToken(), "k", "x")
	if msg.Err == nil || !strings.Contains(msg.Err.Error(), "converter exploded") {
		t.Fatalf("expected recovered panic, got %v", msg.Err)
	}
}

func TestRenderSkipsCancelledToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	p := NewPipeline(nil, ConverterFunc(func(ctx context.Context, id, source string) (Result, error) {
		calls.Add(1)
		return Result{Markup: source}, nil
	}))
	defer p.Close()

	token := p.NewToken()
	token.Cancel()
	msg := runCmd(t, p, token, "k", "x")
	if !errors.Is(msg.Err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", msg.Err)
	}
	if calls.Load() != 0 {
		t.Fatalf("converter should not run for a cancelled token")
	}
}

func TestTokensAreDistinct(t *testing.T) {
	t.Parallel()

	p := NewPipeline(nil, nil)
	a, b := p.NewToken(), p.NewToken()
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct token ids")
	}
	if !a.Active() || !b.Active() {
		t.Fatalf("new tokens should be active")
	}

	p.Close()
	if a.Active() || b.Active() {
		t.Fatalf("closing the pipeline should cancel every token")
	}
	<-a.Done()
}

func TestNilTokenIsInactive(t *testing.T) {
	t.Parallel()

	var token *Token
	if token.Active() {
		t.Fatalf("nil token must be inactive")
	}
	token.Cancel()
	<-token.Done()
}

func TestIsDiagram(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Languages = append(cfg.Languages, "dot")
	for lang, want := range map[string]bool{"mermaid": true, "Mermaid": true, " dot ": true, "go": false, "": false} {
		if got := cfg.IsDiagram(lang); got != want {
			t.Fatalf("IsDiagram(%q) = %v, want %v", lang, got, want)
		}
	}

	var nilCfg *Config
	if nilCfg.IsDiagram("mermaid") {
		t.Fatalf("nil config should not claim diagrams")
	}
}

func TestFrameConverter(t *testing.T) {
	t.Parallel()

	conv := NewFrameConverter(DefaultConfig())
	res, err := conv.Convert(context.Background(), "diagram-1", "graph TD\n  A --> B\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Markup, "A --> B") {
		t.Fatalf("expected framed source, got %q", res.Markup)
	}

	if _, err := conv.Convert(context.Background(), "diagram-2", "  \n"); err == nil {
		t.Fatalf("expected empty diagram to fail")
	}
}

func TestExecConverter(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	cfg := DefaultConfig()
	cfg.Command = "cat"
	conv := NewConverter(cfg)
	if _, ok := conv.(*ExecConverter); !ok {
		t.Fatalf("expected ExecConverter when a command is configured")
	}

	res, err := conv.Convert(context.Background(), "diagram-1", "graph LR\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Markup != "graph LR" {
		t.Fatalf("unexpected markup %q", res.Markup)
	}
}

func TestExpandArgs(t *testing.T) {
	t.Parallel()

	cfg := &Config{Theme: "dark", SecurityLevel: "loose", Args: []string{"--id={id}", "-t", "{theme}", "{security}"}}
	got := strings.Join(cfg.expandArgs("diagram-7"), " ")
	if got != "--id=diagram-7 -t dark loose" {
		t.Fatalf("unexpected args %q", got)
	}
}
