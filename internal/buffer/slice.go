// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package buffer

// Slice is the content buffer for the in-memory slice façade. It holds a
// reference to the whole input and an optional caller-provided scratch
// area, and copies into scratch only on the first escape of a given token
// (copy-on-escape); if no escape ever fires, Extract borrows directly from
// the input and scratch is never touched.
type Slice struct {
	input   []byte
	scratch []byte

	start       int // absolute position of the token's content start
	cursor      int // absolute position flushed through so far
	escaping    bool
	scratchUsed int
}

// NewSlice constructs a Slice buffer over input, using scratch as the
// materialization area for any escaped tokens. scratch may be nil if the
// caller knows the input contains no escapes.
func NewSlice(input, scratch []byte) *Slice {
	return &Slice{input: input, scratch: scratch}
}

func (s *Slice) BeginToken(start int) {
	s.start = start
	s.cursor = start
	s.escaping = false
	s.scratchUsed = 0
}

func (s *Slice) flush(upto int) error {
	run := s.input[s.cursor:upto]
	if s.scratchUsed+len(run) > len(s.scratch) {
		return &ErrScratchFull{Reason: "scratch buffer too small for an escaped string"}
	}
	copy(s.scratch[s.scratchUsed:], run)
	s.scratchUsed += len(run)
	s.cursor = upto
	return nil
}

func (s *Slice) OnEscapePoint(pos int) error {
	s.escaping = true
	return s.flush(pos)
}

func (s *Slice) AppendByte(b byte, nextCursor int) error {
	if s.scratchUsed >= len(s.scratch) {
		return &ErrScratchFull{Reason: "scratch buffer exhausted"}
	}
	s.scratch[s.scratchUsed] = b
	s.scratchUsed++
	s.cursor = nextCursor
	return nil
}

func (s *Slice) AppendUTF8(b []byte, nextCursor int) error {
	if s.scratchUsed+len(b) > len(s.scratch) {
		return &ErrScratchFull{Reason: "scratch buffer exhausted"}
	}
	copy(s.scratch[s.scratchUsed:], b)
	s.scratchUsed += len(b)
	s.cursor = nextCursor
	return nil
}

func (s *Slice) Extract(end int) (fromScratch bool, data []byte, err error) {
	if !s.escaping {
		return false, s.input[s.start:end], nil
	}
	if err := s.flush(end); err != nil {
		return false, nil, err
	}
	return true, s.scratch[:s.scratchUsed], nil
}

func (s *Slice) ResetScratch() {
	s.escaping = false
	s.scratchUsed = 0
}
