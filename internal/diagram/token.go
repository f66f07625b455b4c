package diagram

import (
	"context"
)

// Token identifies one render invocation. A completed render may only be
// committed while its token is still active.
type Token struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func newToken(parent context.Context, id uint64) *Token {
	ctx, cancel := context.WithCancel(parent)
	return &Token{id: id, ctx: ctx, cancel: cancel}
}

func (t *Token) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

// Cancel marks the token superseded. Work already running is not aborted;
// its result is discarded at commit time.
func (t *Token) Cancel() {
	if t == nil || t.cancel == nil {
		return
	}
	t.cancel()
}

func (t *Token) Active() bool {
	return t != nil && t.ctx != nil && t.ctx.Err() == nil
}

// Done is closed once the token is cancelled.
func (t *Token) Done() <-chan struct{} {
	if t == nil || t.ctx == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.ctx.Done()
}
