// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"io"

	"github.com/creachadair/picoscan/internal/buffer"
	"github.com/creachadair/picoscan/internal/engine"
)

// Parser scans a JSON document from an io.Reader through a fixed-size work
// buffer, compacting it as needed to make room for more input. Any token
// whose contiguous span exceeds the work buffer's capacity fails with
// ScratchBufferFull.
type Parser struct {
	proc    *engine.Processor
	stream  *buffer.Stream
	r       io.Reader
	fedUpTo int
	eof     bool
	done    bool
	err     error // latched error from r
}

// NewParser constructs a parser that reads from r into work, a
// caller-provided fixed-size buffer that doubles as the tokenize-pending
// and retained-content region. scratch materializes escaped string and
// key content; it may be smaller than work.
func NewParser(r io.Reader, work, scratch []byte, opts ...Option) (*Parser, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	stream := buffer.NewStream(work, scratch)
	return &Parser{
		proc:   engine.New(cfg.depth, stream, cfg.intWidth, cfg.floatMode),
		stream: stream,
		r:      r,
	}, nil
}

// Next returns the next Event, or io.EOF once EndDocument has been
// consumed. Once Next returns a non-EOF error, every subsequent call
// returns that same error.
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
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

		if p.fedUpTo < p.stream.Base()+p.stream.Used() {
			b := p.stream.ByteAt(p.fedUpTo)
			p.fedUpTo++
			if err := p.proc.Feed(b); err != nil {
				return Event{}, err
			}
			continue
		}

		if p.eof {
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

		if len(p.stream.Avail()) == 0 {
			if err := p.stream.Compact(p.proc.RetainFrom()); err != nil {
				return Event{}, p.proc.FailCompaction(err)
			}
		}
		n, err := p.r.Read(p.stream.Avail())
		if n > 0 {
			p.stream.Commit(n)
		}
		if err == io.EOF {
			p.eof = true
		} else if err != nil {
			p.err = err
			return Event{}, err
		}
	}
}
