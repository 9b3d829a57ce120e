// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"github.com/creachadair/picoscan/internal/buffer"
	"github.com/creachadair/picoscan/internal/engine"
)

// PushParser scans a JSON document delivered as a series of externally
// supplied chunks, for callers that cannot model their input as an
// io.Reader (for example, bytes arriving from a non-blocking callback).
// Events are delivered through a caller-supplied callback rather than
// returned in a slice, so a Write call never allocates on the parser's
// behalf.
type PushParser struct {
	proc *engine.Processor
	push *buffer.Push
	base int // absolute position of the next chunk passed to Write
}

// NewPushParser constructs a push-style parser. scratch materializes
// string and key content for tokens that cross a chunk boundary or
// contain an escape.
func NewPushParser(scratch []byte, opts ...Option) (*PushParser, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	push := buffer.NewPush(scratch)
	return &PushParser{
		proc: engine.New(cfg.depth, push, cfg.intWidth, cfg.floatMode),
		push: push,
	}, nil
}

// Write feeds chunk to the parser, calling emit for each Event produced
// along the way, in order. Chunks may be empty. Successive chunks are
// treated as logically concatenated: a token may begin in one chunk and
// close in a later one.
//
// Write stops and returns an error as soon as either emit or the parser
// itself reports one. An error from the parser is latched: Finish, and any
// later Write of a non-empty chunk, returns it again. An error returned by
// emit is passed back as is and is not latched.
func (p *PushParser) Write(chunk []byte, emit func(Event) error) error {
	if err := p.push.SetChunk(chunk, p.base); err != nil {
		return p.proc.FailCompaction(err)
	}
	p.base += len(chunk)
	for _, b := range chunk {
		if err := p.proc.Feed(b); err != nil {
			return err
		}
		if err := p.drainEmit(emit); err != nil {
			return err
		}
	}
	return nil
}

// Finish signals that no further chunks are coming, delivering any
// trailing events (at minimum EndDocument, for a document that completed
// exactly at the last byte written) through emit.
func (p *PushParser) Finish(emit func(Event) error) error {
	if err := p.proc.Finish(); err != nil {
		return err
	}
	return p.drainEmit(emit)
}

func (p *PushParser) drainEmit(emit func(Event) error) error {
	for {
		ev, ok := p.proc.Next()
		if !ok {
			return nil
		}
		if err := emit(ev); err != nil {
			return err
		}
	}
}
