// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package engine

import (
	"go4.org/mem"

	"github.com/creachadair/picoscan/internal/bitstack"
	"github.com/creachadair/picoscan/internal/buffer"
	"github.com/creachadair/picoscan/internal/escape"
	"github.com/creachadair/picoscan/internal/tokenizer"
)

// Processor drives a tokenizer.Tokenizer against a buffer.Sink and
// produces the user-visible Event sequence. It is the one piece of logic
// shared by all three façades; they differ only in how they source bytes
// and which Sink they construct.
type Processor struct {
	tok *tokenizer.Tokenizer
	buf buffer.Sink
	esc escape.Decoder

	intWidth  int
	floatMode FloatMode

	out outQueue
	err error

	contentStart       int // content_start of the currently open String/Key/Number
	endDocumentEmitted bool
}

// New constructs a Processor with a depth bitstack of the given capacity,
// extracting token content through sink.
func New(depthCapacity int, sink buffer.Sink, intWidth int, floatMode FloatMode) *Processor {
	return &Processor{
		tok:       tokenizer.New(bitstack.New(depthCapacity)),
		buf:       sink,
		intWidth:  intWidth,
		floatMode: floatMode,
	}
}

// Pos reports the absolute position of the next byte Feed expects.
func (p *Processor) Pos() int { return p.tok.Pos() }

// RetainFrom reports the absolute position a driver's buffer must retain
// bytes from when compacting or rotating: the content_start of whatever
// String/Key/Number token is currently open, or the tokenizer's current
// position if none is open.
func (p *Processor) RetainFrom() int {
	if p.tok.TokenOpen() {
		return p.contentStart
	}
	return p.tok.Pos()
}

// FailCompaction latches a buffer compaction or rotation failure detected
// by the driver outside of Feed/Finish, so the terminal-error contract
// holds the same way it would for an error detected inside Feed.
func (p *Processor) FailCompaction(err error) error {
	return p.fail(Classify(p.RetainFrom(), err))
}

func (p *Processor) fail(err *Error) error {
	if p.err == nil {
		p.err = err
	}
	return p.err
}

// Feed advances the processor by one input byte. Any Events it completes
// are queued for Next; Feed itself never returns an Event directly so
// callers always drain through Next, whether or not Feed produced one.
func (p *Processor) Feed(b byte) error {
	if p.err != nil {
		return p.err
	}
	if err := p.tok.Feed(b); err != nil {
		return p.fail(Classify(p.tok.Pos(), err))
	}
	return p.drain()
}

// Finish signals end of input. It validates that no token or container was
// left open and, for a document that completed exactly at EOF, ensures
// EndDocument has been queued.
func (p *Processor) Finish() error {
	if p.err != nil {
		return p.err
	}
	if err := p.tok.Finish(); err != nil {
		return p.fail(Classify(p.tok.Pos(), err))
	}
	return p.drain()
}

// Next drains the next completed Event, if one is ready without feeding
// more input.
func (p *Processor) Next() (Event, bool) { return p.out.pop() }

// drain translates every low-level tokenizer Event currently queued into
// zero or one Processor output Events, continuing until the tokenizer's
// queue is empty. Once the queue is empty and the top-level value has
// completed, it queues EndDocument (once), so EndDocument always follows
// every event produced by the same input byte.
func (p *Processor) drain() error {
	for {
		le, ok := p.tok.Next()
		if !ok {
			if p.tok.AtDocumentEnd() && !p.endDocumentEmitted {
				p.endDocumentEmitted = true
				return p.push(Event{Kind: KindEndDocument, Pos: p.tok.Pos()})
			}
			return nil
		}
		if err := p.translate(le); err != nil {
			return err
		}
	}
}

func (p *Processor) push(e Event) error {
	if !p.out.push(e) {
		return p.fail(Classify(e.Pos, &tokenizer.InternalError{Reason: "output event queue overflow"}))
	}
	return nil
}

func (p *Processor) translate(le tokenizer.Event) error {
	switch le.Tag {
	case tokenizer.TagObjectStart:
		return p.push(Event{Kind: KindStartObject, Pos: le.Pos})
	case tokenizer.TagObjectEnd:
		return p.push(Event{Kind: KindEndObject, Pos: le.Pos})
	case tokenizer.TagArrayStart:
		return p.push(Event{Kind: KindStartArray, Pos: le.Pos})
	case tokenizer.TagArrayEnd:
		return p.push(Event{Kind: KindEndArray, Pos: le.Pos})
	case tokenizer.TagTrue:
		return p.push(Event{Kind: KindBool, Bool: true, Pos: le.Pos})
	case tokenizer.TagFalse:
		return p.push(Event{Kind: KindBool, Bool: false, Pos: le.Pos})
	case tokenizer.TagNull:
		return p.push(Event{Kind: KindNull, Pos: le.Pos})

	case tokenizer.TagKey:
		if le.Kind == tokenizer.Begin {
			p.contentStart = le.Pos
			p.buf.BeginToken(le.Pos)
			return nil
		}
		return p.endStringLike(le, true)

	case tokenizer.TagString:
		if le.Kind == tokenizer.Begin {
			p.contentStart = le.Pos
			p.buf.BeginToken(le.Pos)
			return nil
		}
		return p.endStringLike(le, false)

	case tokenizer.TagNumber:
		if le.Kind == tokenizer.Begin {
			p.contentStart = le.Pos
			p.buf.BeginToken(le.Pos)
			return nil
		}
		return p.endNumber(le)

	case tokenizer.TagEscapeSequence:
		if err := p.buf.OnEscapePoint(le.Pos); err != nil {
			return p.fail(Classify(le.Pos, err))
		}
		return nil

	case tokenizer.TagUnicodeEscape:
		if le.Kind == tokenizer.Begin {
			return nil // on_escape_point already fired for the backslash
		}
		return p.endUnicodeEscape(le)

	case tokenizer.TagEscapeQuote, tokenizer.TagEscapeBackslash, tokenizer.TagEscapeSlash,
		tokenizer.TagEscapeBackspace, tokenizer.TagEscapeFormFeed, tokenizer.TagEscapeNewline,
		tokenizer.TagEscapeReturn, tokenizer.TagEscapeTab:
		return p.endSimpleEscape(le)

	default:
		return p.fail(Classify(le.Pos, &tokenizer.InternalError{Reason: "unrecognized tokenizer tag"}))
	}
}

func (p *Processor) endSimpleEscape(le tokenizer.Event) error {
	if p.esc.Pending() {
		return p.fail(Classify(le.Pos, p.esc.NonUnicodeEscapeWhilePending()))
	}
	b := decodedSimpleByte(le.Tag)
	if err := p.buf.AppendByte(b, le.Pos); err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	return nil
}

func (p *Processor) endUnicodeEscape(le tokenizer.Event) error {
	out, err := p.esc.Unit(le.Unit)
	if err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	// AppendUTF8 is called even when out is empty (a pending high
	// surrogate produces no bytes yet) so the cursor still advances past
	// this escape's raw bytes instead of being re-flushed as literal.
	if err := p.buf.AppendUTF8(out, le.Pos); err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	return nil
}

func (p *Processor) endStringLike(le tokenizer.Event, isKey bool) error {
	if err := p.esc.AtTokenEnd(); err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	fromScratch, data, err := p.buf.Extract(le.Pos)
	if err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	p.buf.ResetScratch()
	view := String{RO: mem.B(data), FromScratch: fromScratch}
	if isKey {
		return p.push(Event{Kind: KindKey, Pos: p.contentStart, Key: view})
	}
	return p.push(Event{Kind: KindString, Pos: p.contentStart, Str: view})
}

func (p *Processor) endNumber(le tokenizer.Event) error {
	_, data, err := p.buf.Extract(le.Pos)
	if err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	p.buf.ResetScratch()
	num, err := classifyNumber(data, le.NumberIsFloat, p.intWidth, p.floatMode)
	if err == errSkipNumber {
		return nil // float-skip: no event, the caller pulls again
	}
	if err != nil {
		return p.fail(Classify(le.Pos, err))
	}
	return p.push(Event{Kind: KindNumber, Pos: p.contentStart, Num: num})
}

func decodedSimpleByte(tag tokenizer.Tag) byte {
	switch tag {
	case tokenizer.TagEscapeQuote:
		return '"'
	case tokenizer.TagEscapeBackslash:
		return '\\'
	case tokenizer.TagEscapeSlash:
		return '/'
	case tokenizer.TagEscapeBackspace:
		return '\b'
	case tokenizer.TagEscapeFormFeed:
		return '\f'
	case tokenizer.TagEscapeNewline:
		return '\n'
	case tokenizer.TagEscapeReturn:
		return '\r'
	case tokenizer.TagEscapeTab:
		return '\t'
	default:
		return 0
	}
}
