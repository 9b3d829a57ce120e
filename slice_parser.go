// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"io"

	"github.com/creachadair/picoscan/internal/buffer"
	"github.com/creachadair/picoscan/internal/engine"
)

// SliceParser scans a JSON document held entirely in memory. It is the
// simplest façade: the whole input is available up front, so its content
// buffer borrows directly from it and only copies into scratch for tokens
// that contain an escape.
type SliceParser struct {
	proc *engine.Processor
	pos  int
	data []byte
	done bool
}

// NewSliceParser constructs a parser over data. scratch materializes any
// escaped string or key content; it may be nil if the caller knows data
// contains no escapes, in which case any escape encountered reports
// ScratchBufferFull.
func NewSliceParser(data, scratch []byte, opts ...Option) (*SliceParser, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	sink := buffer.NewSlice(data, scratch)
	return &SliceParser{
		proc: engine.New(cfg.depth, sink, cfg.intWidth, cfg.floatMode),
		data: data,
	}, nil
}

// Next returns the next Event, or io.EOF once EndDocument has been
// consumed. Once Next returns a non-EOF error, every subsequent call
// returns that same error.
func (p *SliceParser) Next() (Event, error) {
	if p.done {
		return Event{}, io.EOF
	}
	for {
		if ev, ok := p.proc.Next(); ok {
			if ev.Kind == KindEndDocument {
				p.done = true
			}
			return ev, nil
		}
		if p.pos >= len(p.data) {
			if err := p.proc.Finish(); err != nil {
				return Event{}, err
			}
			if ev, ok := p.proc.Next(); ok {
				if ev.Kind == KindEndDocument {
					p.done = true
				}
				return ev, nil
			}
			p.done = true
			return Event{}, io.EOF
		}
		b := p.data[p.pos]
		p.pos++
		if err := p.proc.Feed(b); err != nil {
			return Event{}, err
		}
	}
}
