// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package buffer

// Stream is the content buffer for the pull-reader façade. It owns a
// fixed-capacity work area that the driver refills from an io.Reader and
// periodically compacts to make room for more input. Compaction slides the
// buffered bytes down and advances the base so that absolute positions keep
// working across the shift; it refuses to discard any byte still needed by
// an open token.
//
// Like Slice, Stream borrows directly from its work area when a token
// closes without an escape, and copies into scratch only once an escape is
// seen.
type Stream struct {
	work []byte // fixed-capacity work area
	base int    // absolute position of work[0]
	used int     // work[:used] holds currently buffered input

	scratch []byte

	start       int
	cursor      int
	hasToken    bool
	escaping    bool
	scratchUsed int
}

// NewStream constructs a Stream buffer with the given fixed-size work area
// and scratch area for escaped content.
func NewStream(work, scratch []byte) *Stream {
	return &Stream{work: work, scratch: scratch}
}

// Base reports the absolute position of work[0].
func (s *Stream) Base() int { return s.base }

// Used reports how many bytes of the work area currently hold valid,
// unconsumed input.
func (s *Stream) Used() int { return s.used }

// Avail returns the unused tail of the work area, for the driver to read
// new input into.
func (s *Stream) Avail() []byte { return s.work[s.used:] }

// Commit records that n freshly read bytes now occupy the front of Avail.
func (s *Stream) Commit(n int) { s.used += n }

// ByteAt returns the byte at absolute position pos, which must currently
// be buffered (base <= pos < base+used).
func (s *Stream) ByteAt(pos int) byte { return s.work[pos-s.base] }

// Compact discards every buffered byte before absolute position retain and
// slides the rest (starting with the byte at retain) down to the front of
// the work area. retain is normally the content_start of the
// currently open token, or the driver's current read position if no token
// is open. Compact is a no-op if there is nothing before retain to discard;
// it fails with ErrScratchFull if the work area is already full and no
// byte before retain can be freed.
func (s *Stream) Compact(retain int) error {
	local := retain - s.base
	if local <= 0 {
		if s.used >= len(s.work) {
			return &ErrScratchFull{Reason: "work buffer full; open token content cannot be discarded"}
		}
		return nil
	}
	if local > s.used {
		local = s.used
	}
	copy(s.work, s.work[local:s.used])
	s.used -= local
	s.base += local
	return nil
}

func (s *Stream) BeginToken(start int) {
	s.start = start
	s.cursor = start
	s.hasToken = true
	s.escaping = false
	s.scratchUsed = 0
}

func (s *Stream) flush(upto int) error {
	run := s.work[s.cursor-s.base : upto-s.base]
	if len(run) == 0 {
		s.cursor = upto
		return nil
	}
	if s.scratchUsed+len(run) > len(s.scratch) {
		return &ErrScratchFull{Reason: "scratch buffer too small for an escaped string"}
	}
	copy(s.scratch[s.scratchUsed:], run)
	s.scratchUsed += len(run)
	s.cursor = upto
	return nil
}

func (s *Stream) OnEscapePoint(pos int) error {
	s.escaping = true
	return s.flush(pos)
}

func (s *Stream) AppendByte(b byte, nextCursor int) error {
	if s.scratchUsed >= len(s.scratch) {
		return &ErrScratchFull{Reason: "scratch buffer exhausted"}
	}
	s.scratch[s.scratchUsed] = b
	s.scratchUsed++
	s.cursor = nextCursor
	return nil
}

func (s *Stream) AppendUTF8(b []byte, nextCursor int) error {
	if s.scratchUsed+len(b) > len(s.scratch) {
		return &ErrScratchFull{Reason: "scratch buffer exhausted"}
	}
	copy(s.scratch[s.scratchUsed:], b)
	s.scratchUsed += len(b)
	s.cursor = nextCursor
	return nil
}

func (s *Stream) Extract(end int) (fromScratch bool, data []byte, err error) {
	if !s.escaping {
		return false, s.work[s.start-s.base : end-s.base], nil
	}
	if err := s.flush(end); err != nil {
		return false, nil, err
	}
	return true, s.scratch[:s.scratchUsed], nil
}

func (s *Stream) ResetScratch() {
	s.hasToken = false
	s.escaping = false
	s.scratchUsed = 0
}
