// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package buffer

// Push is the content buffer for the push façade. The caller hands it
// successive chunks via SetChunk; while a chunk is current, Push treats it
// the way Slice treats the whole input. If a token closes within one chunk
// with no escapes, Extract borrows straight from that chunk. If a token
// crosses a chunk rotation or contains an escape, Push copies into its
// scratch region instead; SetChunk itself flushes whatever literal tail of
// the outgoing chunk still belongs to an open token, before the chunk
// reference is replaced and the bytes become unreachable.
type Push struct {
	chunk       []byte
	chunkOffset int

	scratch []byte

	start        int
	cursor       int
	hasToken     bool
	usingScratch bool
	pending      bool // between OnEscapePoint and the Append call that resolves it
	scratchUsed  int
}

// NewPush constructs a Push buffer using scratch as its materialization
// area for tokens that cross chunk boundaries or contain escapes.
func NewPush(scratch []byte) *Push {
	return &Push{scratch: scratch}
}

// SetChunk installs chunk as the current chunk, whose first byte is at
// absolute position offset. If a token is open and some of its content
// still lives in the outgoing chunk, that content is flushed to scratch
// first, unless the cursor is parked at the start of an escape sequence
// still awaiting its decoded replacement (OnEscapePoint called, Append not
// yet), in which case the outgoing chunk's remaining bytes are exactly the
// escape's own raw bytes and must be dropped, not flushed as literal.
func (p *Push) SetChunk(chunk []byte, offset int) error {
	if p.hasToken && p.chunk != nil && !p.pending {
		oldEnd := p.chunkOffset + len(p.chunk)
		if p.cursor < oldEnd {
			p.usingScratch = true
			if err := p.flushFrom(p.chunk, p.chunkOffset, oldEnd); err != nil {
				return err
			}
		}
	}
	p.chunk = chunk
	p.chunkOffset = offset
	return nil
}

func (p *Push) flushFrom(src []byte, srcOffset, upto int) error {
	run := src[p.cursor-srcOffset : upto-srcOffset]
	if len(run) == 0 {
		p.cursor = upto
		return nil
	}
	if p.scratchUsed+len(run) > len(p.scratch) {
		return &ErrScratchFull{Reason: "push buffer scratch exhausted"}
	}
	copy(p.scratch[p.scratchUsed:], run)
	p.scratchUsed += len(run)
	p.cursor = upto
	return nil
}

func (p *Push) BeginToken(start int) {
	p.start = start
	p.cursor = start
	p.hasToken = true
	p.usingScratch = false
	p.pending = false
	p.scratchUsed = 0
}

func (p *Push) OnEscapePoint(pos int) error {
	p.usingScratch = true
	if err := p.flushFrom(p.chunk, p.chunkOffset, pos); err != nil {
		return err
	}
	p.pending = true
	return nil
}

func (p *Push) AppendByte(b byte, nextCursor int) error {
	if p.scratchUsed >= len(p.scratch) {
		return &ErrScratchFull{Reason: "push buffer scratch exhausted"}
	}
	p.scratch[p.scratchUsed] = b
	p.scratchUsed++
	p.cursor = nextCursor
	p.pending = false
	return nil
}

func (p *Push) AppendUTF8(b []byte, nextCursor int) error {
	if p.scratchUsed+len(b) > len(p.scratch) {
		return &ErrScratchFull{Reason: "push buffer scratch exhausted"}
	}
	copy(p.scratch[p.scratchUsed:], b)
	p.scratchUsed += len(b)
	p.cursor = nextCursor
	p.pending = false
	return nil
}

func (p *Push) Extract(end int) (fromScratch bool, data []byte, err error) {
	if !p.usingScratch {
		return false, p.chunk[p.start-p.chunkOffset : end-p.chunkOffset], nil
	}
	if err := p.flushFrom(p.chunk, p.chunkOffset, end); err != nil {
		return false, nil, err
	}
	return true, p.scratch[:p.scratchUsed], nil
}

func (p *Push) ResetScratch() {
	p.hasToken = false
	p.usingScratch = false
	p.pending = false
	p.scratchUsed = 0
}
