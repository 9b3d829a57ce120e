// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package engine

import (
	"fmt"

	"github.com/creachadair/picoscan/internal/bitstack"
	"github.com/creachadair/picoscan/internal/buffer"
	"github.com/creachadair/picoscan/internal/escape"
	"github.com/creachadair/picoscan/internal/tokenizer"
)

// Kind classifies a parsing failure. The specific names are illustrative,
// not load-bearing: several distinct lower-level error types are
// consolidated under one Kind where the original design does not require
// a caller to tell them apart (e.g. every byte-granularity syntax
// violation the tokenizer detects is one TokenizerError, regardless of
// which production failed).
type Kind int

const (
	KindUnexpectedState Kind = iota
	KindDepthExceeded
	KindMismatchedContainer
	KindUnexpectedEndOfInput
	KindTokenizerError
	KindInvalidUnicodeCodepoint
	KindInvalidNumber
	KindFloatNotAllowed
	KindScratchBufferFull
)

func (k Kind) String() string {
	switch k {
	case KindDepthExceeded:
		return "DepthExceeded"
	case KindMismatchedContainer:
		return "MismatchedContainer"
	case KindUnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case KindTokenizerError:
		return "TokenizerError"
	case KindInvalidUnicodeCodepoint:
		return "InvalidUnicodeCodepoint"
	case KindInvalidNumber:
		return "InvalidNumber"
	case KindFloatNotAllowed:
		return "FloatNotAllowed"
	case KindScratchBufferFull:
		return "ScratchBufferFull"
	default:
		return "UnexpectedState"
	}
}

// Error is the public shape of every failure this module reports: an
// absolute document offset, a Kind a caller can branch on, and the
// lower-level error that triggered it.
type Error struct {
	Offset int
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps a lower-level error from bitstack, escape, tokenizer, or
// buffer into an *Error carrying the offset at which the processor
// detected it and a Kind the caller can switch on. It never modifies err;
// Err always unwraps to exactly the value the internal package produced.
func Classify(offset int, err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Offset: offset, Kind: classifyKind(err), Err: err}
}

func classifyKind(err error) Kind {
	switch err.(type) {
	case *bitstack.ErrDepthExceeded:
		return KindDepthExceeded
	case *bitstack.ErrMismatchedContainer:
		return KindMismatchedContainer
	case *tokenizer.UnexpectedEndOfInput:
		return KindUnexpectedEndOfInput
	case *tokenizer.Error:
		return KindTokenizerError
	case *tokenizer.InternalError:
		return KindUnexpectedState
	case *escape.InvalidCodepointError:
		return KindInvalidUnicodeCodepoint
	case *buffer.ErrScratchFull:
		return KindScratchBufferFull
	case *InvalidNumberError:
		return KindInvalidNumber
	case FloatNotAllowedError:
		return KindFloatNotAllowed
	default:
		return KindUnexpectedState
	}
}
