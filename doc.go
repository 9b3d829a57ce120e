// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package picoscan implements a pull-style JSON scanner built for
// resource-constrained and freestanding environments: no heap allocation
// in the scanning core apart from one string conversion per decoded number
// token, no recursion, no panics on any input, and bounded
// stack usage governed by a fixed-capacity nesting depth.
//
// Unlike a DOM parser, picoscan never builds a tree. It emits a lazy
// sequence of syntactic Events, such as StartObject, Key, String, Number,
// Bool, Null, EndArray, and EndDocument, obtained by driving an internal
// byte-level tokenizer and a fixed-capacity depth bitstack. The caller
// pulls one event at a time; each pull drives exactly enough input through
// the tokenizer to produce it.
//
// # Façades
//
// Three façades share the same event processor and differ only in how
// they source bytes:
//
//	p, err := picoscan.NewSliceParser(data, scratch)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    ev, err := p.Next()
//	    if err == io.EOF {
//	        break
//	    } else if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Printf("event: %v", ev)
//	}
//
// NewParser wraps an io.Reader and a caller-provided work buffer, reading
// and compacting as needed. NewPushParser instead accepts data in chunks
// via Write, for callers that receive JSON from an external source that
// cannot be modeled as an io.Reader (e.g. a byte stream arriving from an
// interrupt handler or a non-blocking socket callback).
//
// # String views
//
// A String returned inside a Key or String event borrows either the
// original input (no escapes were present in the token) or the façade's
// scratch buffer (the token contained one or more escapes, now
// materialized). Either way the view is valid only until the next call to
// Next; callers that need to retain it must copy it first with StringCopy.
//
// # Errors
//
// Every parse failure is a *Error carrying an absolute document offset and
// a Kind the caller can switch on; an error from a Parser's io.Reader is
// returned as is. Once a façade returns an error, it is in
// a terminal state: every subsequent call to Next returns that same error
// again, never re-entering the tokenizer.
//
// A caller that wants a line and column for a report, rather than a raw
// offset, can run Span.Locate over the original input:
//
//	loc := picoscan.Span{Pos: err.Offset, End: err.Offset + 1}.Locate(data)
//	log.Printf("%d:%d: %v", loc.First.Line, loc.First.Column, err)
//
// Locate is deliberately not called on the error path automatically: it
// walks the input counting newlines, and the scanning core never pays that
// cost unless a caller asks for it.
package picoscan
