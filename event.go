// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import "github.com/creachadair/picoscan/internal/engine"

// Event is one user-visible parsing event: a tagged value carrying exactly
// the fields its Kind calls for (Key for KindKey, Str for KindString, Num
// for KindNumber, Bool for KindBool). Pos is the absolute document offset
// at which the event's token began.
//
// A String view inside Key or Str is valid only until the next call to
// Next on whichever façade produced it; copy it (StringCopy) before
// advancing if it must outlive the call.
type Event = engine.Event

// EventKind names the shape of an Event.
type EventKind = engine.EventKind

const (
	KindStartObject  = engine.KindStartObject
	KindEndObject    = engine.KindEndObject
	KindStartArray   = engine.KindStartArray
	KindEndArray     = engine.KindEndArray
	KindKey          = engine.KindKey
	KindString       = engine.KindString
	KindNumber       = engine.KindNumber
	KindBool         = engine.KindBool
	KindNull         = engine.KindNull
	KindEndDocument  = engine.KindEndDocument
)

// String is a view onto Key or String content: either a borrow of the
// original input (no escapes were present) or a borrow of a content
// buffer's scratch region (materialized from one or more escapes).
type String = engine.String

// Number carries a decoded number token: the raw digit span plus the
// decoded outcome selected by the active FloatMode and integer width.
type Number = engine.Number

// NumberOutcome classifies how a Number token was decoded.
type NumberOutcome = engine.NumberOutcome

const (
	OutcomeInteger         = engine.OutcomeInteger
	OutcomeFloat           = engine.OutcomeFloat
	OutcomeIntegerOverflow = engine.OutcomeIntegerOverflow
	OutcomeFloatDisabled   = engine.OutcomeFloatDisabled
	OutcomeFloatTruncated  = engine.OutcomeFloatTruncated
)
