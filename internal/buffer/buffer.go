// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package buffer implements the three content-buffer variants the event
// processor extracts string, key, and number content through: a
// slice-backed copy-on-escape buffer, a compacting streaming buffer, and an
// accumulating push buffer. All three satisfy the Sink interface, so the
// processor is written once against Sink and each façade picks the
// concrete type that matches its input model.
package buffer

import "fmt"

// ErrScratchFull reports that a buffer ran out of room to materialize
// unescaped content: the streaming buffer's work area could not be
// compacted without discarding bytes belonging to the open token, or a
// buffer's scratch region filled up outright.
type ErrScratchFull struct {
	Reason string
}

func (e *ErrScratchFull) Error() string { return fmt.Sprintf("scratch buffer full: %s", e.Reason) }

// A Sink receives the content of one token (string, key, or number) as the
// event processor discovers it, and extracts the finished content as
// either a borrow of the original input or a borrow of internal scratch.
//
// All positions are absolute byte offsets from the start of the document,
// not buffer-local offsets; implementations translate to their own local
// coordinates (this is what lets token positions survive streaming
// compaction and push-buffer chunk rotation).
//
// Sink tracks an internal "flushed-through" cursor for the open token,
// starting at BeginToken's start. OnEscapePoint and Extract both flush the
// literal run between that cursor and the position they are given, so a
// token with several escapes interleaved with literal runs accumulates
// correctly without the caller re-deriving run boundaries.
type Sink interface {
	// BeginToken records the absolute start position of a new token's
	// content (just past an opening quote, or at a number's first digit).
	BeginToken(start int)

	// OnEscapePoint is called the moment an escape sequence is discovered
	// at absolute position pos (the backslash). It flushes the literal run
	// since the cursor into scratch, lazily copying for the first escape
	// of the token and appending for any escape after the first, and leaves
	// the cursor at pos, ready for the caller to decode and append the
	// escape's replacement bytes.
	OnEscapePoint(pos int) error

	// AppendByte appends one decoded byte (from a simple escape) to
	// scratch and advances the cursor past the escape's raw bytes to
	// nextCursor. Only valid after OnEscapePoint.
	AppendByte(b byte, nextCursor int) error

	// AppendUTF8 appends decoded UTF-8 bytes (from one or two \uXXXX
	// escapes) to scratch and advances the cursor to nextCursor. b may be
	// empty (a lone high surrogate produces no output yet); the cursor
	// still advances so the consumed escape bytes are not re-flushed as
	// literal. Only valid after OnEscapePoint.
	AppendUTF8(b []byte, nextCursor int) error

	// Extract returns the finished token's content, ending at the
	// absolute position end (exclusive). If any escape fired during this
	// token, it first flushes the trailing literal run [cursor, end) and
	// returns the scratch span (fromScratch = true); otherwise it returns
	// a borrow of the original input, [start, end).
	Extract(end int) (fromScratch bool, data []byte, err error)

	// ResetScratch clears scratch bookkeeping so the next token starts
	// fresh. Called immediately after each Extract.
	ResetScratch()
}
