// Package diagram converts fenced diagram blocks into terminal markup off the
// UI goroutine and guards against stale results.
package diagram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/singleflight"
)

// ErrSuperseded is reported for renders whose token was cancelled before the
// conversion started.
var ErrSuperseded = errors.New("diagram render superseded")

// ResultMsg carries a finished conversion back to the update loop.
type ResultMsg struct {
	Token  *Token
	Key    string
	Markup string
	Err    error
}

type Pipeline struct {
	cfg    *Config
	conv   Converter
	group  singleflight.Group
	next   atomic.Uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func NewPipeline(cfg *Config, conv Converter) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if conv == nil {
		conv = NewConverter(cfg)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{cfg: cfg, conv: conv, ctx: ctx, cancel: cancel}
}

func (p *Pipeline) Config() *Config {
	return p.cfg
}

// NewToken issues a token for a new render invocation.
func (p *Pipeline) NewToken() *Token {
	return newToken(p.ctx, p.next.Add(1))
}

// Render returns a command that converts source and reports a ResultMsg keyed
// by key. Concurrent renders of byte-identical sources share one conversion.
// Failures are logged and reported with empty markup.
func (p *Pipeline) Render(token *Token, key, source string) tea.Cmd {
	return func() tea.Msg {
		if !token.Active() {
			return ResultMsg{Token: token, Key: key, Err: ErrSuperseded}
		}

		id := fmt.Sprintf("diagram-%d", token.ID())
		v, err, _ := p.group.Do(p.cfg.Theme+"\x00"+source, func() (interface{}, error) {
			return p.convert(id, source)
		})
		if err != nil {
			log.Printf("diagram %s: %v", id, err)
			return ResultMsg{Token: token, Key: key, Err: err}
		}

		return ResultMsg{Token: token, Key: key, Markup: v.(Result).Markup}
	}
}

func (p *Pipeline) convert(id, source string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return p.conv.Convert(p.ctx, id, source)
}

// Close cancels every outstanding token and stops external conversions.
func (p *Pipeline) Close() {
	if p == nil || p.cancel == nil {
		return
	}
	p.cancel()
}
