// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tokenizer

import "fmt"

// Error reports a byte-granularity JSON syntax violation detected by the
// tokenizer: an unexpected byte, an invalid escape, or a malformed number
// (including a number cut short by the end of input). Other input that ends
// mid-token is reported as UnexpectedEndOfInput.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s (offset %d)", e.Msg, e.Pos) }

func syntaxErrorf(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// UnexpectedEndOfInput reports that Finish was called (or the reader ran
// out of bytes) while a token or container was still open.
type UnexpectedEndOfInput struct {
	Pos int
}

func (e *UnexpectedEndOfInput) Error() string {
	return fmt.Sprintf("unexpected end of input (offset %d)", e.Pos)
}

// InternalError reports a violation of the tokenizer's own invariants
// (e.g. the event queue overflowing). It should be unreachable on any
// input, well-formed or not.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string { return "internal error: " + e.Reason }
