// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package engine implements the event processor: it drives a
// tokenizer.Tokenizer against a buffer.Sink and turns the low-level events
// one into the other into the user-visible event sequence. It is shared by
// all three parser façades, which differ only in which Sink and which byte
// source they hand it.
package engine

import "go4.org/mem"

// EventKind names the shape of a user-visible Event.
type EventKind int

const (
	KindStartObject EventKind = iota
	KindEndObject
	KindStartArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
	KindEndDocument
)

func (k EventKind) String() string {
	switch k {
	case KindStartObject:
		return "StartObject"
	case KindEndObject:
		return "EndObject"
	case KindStartArray:
		return "StartArray"
	case KindEndArray:
		return "EndArray"
	case KindKey:
		return "Key"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindEndDocument:
		return "EndDocument"
	default:
		return "Invalid"
	}
}

// String is a view onto the content of a Key or String event: either a
// borrow of the original input (FromScratch false, no escapes were
// present) or a borrow of a content buffer's scratch region (FromScratch
// true, materialized from one or more escapes). Like any borrow from a
// work or push buffer, it is valid only until the next pull.
type String struct {
	mem.RO
	FromScratch bool
}

// NumberOutcome classifies how a Number token was decoded, per the active
// configuration. FloatSkipped has no corresponding value here: a skipped
// float token never reaches the caller as an event at all.
type NumberOutcome int

const (
	OutcomeInteger NumberOutcome = iota
	OutcomeFloat
	OutcomeIntegerOverflow
	OutcomeFloatDisabled
	OutcomeFloatTruncated
)

func (o NumberOutcome) String() string {
	switch o {
	case OutcomeInteger:
		return "Integer"
	case OutcomeFloat:
		return "Float"
	case OutcomeIntegerOverflow:
		return "IntegerOverflow"
	case OutcomeFloatDisabled:
		return "FloatDisabled"
	case OutcomeFloatTruncated:
		return "FloatTruncated"
	default:
		return "Invalid"
	}
}

// Number carries a decoded number token: the raw digit span (a borrow of
// whichever content buffer extracted it: the original input, a streaming
// work area, or a push buffer's scratch when the number crossed a chunk
// boundary) plus the decoded outcome selected by configuration.
type Number struct {
	Raw     mem.RO
	Outcome NumberOutcome
	Int     int64
	Float   float64
}

// Event is one user-visible parsing event.
type Event struct {
	Kind EventKind
	Pos  int // absolute position where this event's token began

	Key  String
	Str  String
	Num  Number
	Bool bool
}
