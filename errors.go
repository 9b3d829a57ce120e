// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import "github.com/creachadair/picoscan/internal/engine"

// Error is the concrete type of every parse failure a façade reports: an
// absolute document offset, a Kind a caller can branch on, and the
// lower-level error (from internal/bitstack, internal/escape,
// internal/tokenizer, internal/buffer, or the number policy) that
// triggered it. Unwrap returns that lower-level error. Errors from a
// Parser's io.Reader or a PushParser's emit callback are returned as is.
//
// After any façade returns an Error, it is in a terminal state: every
// subsequent Next (for a PushParser: Finish, or Write of a non-empty
// chunk) returns the identical Error value without re-scanning.
type Error = engine.Error

// Kind classifies an Error.
type Kind = engine.Kind

const (
	KindUnexpectedState         = engine.KindUnexpectedState
	KindDepthExceeded           = engine.KindDepthExceeded
	KindMismatchedContainer     = engine.KindMismatchedContainer
	KindUnexpectedEndOfInput    = engine.KindUnexpectedEndOfInput
	KindTokenizerError          = engine.KindTokenizerError
	KindInvalidUnicodeCodepoint = engine.KindInvalidUnicodeCodepoint
	KindInvalidNumber           = engine.KindInvalidNumber
	KindFloatNotAllowed         = engine.KindFloatNotAllowed
	KindScratchBufferFull       = engine.KindScratchBufferFull
)
