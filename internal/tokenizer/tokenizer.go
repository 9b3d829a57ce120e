// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tokenizer implements the byte-at-a-time JSON lexical state
// machine: it consumes one input byte (or an end-of-input signal) per call
// and queues zero or more low-level Events describing what it saw. It never
// reads ahead, never recurses, and never allocates beyond its own fixed
// fields plus the depth bitstack it is given.
package tokenizer

import (
	"github.com/creachadair/picoscan/internal/bitstack"
)

// mode tracks what kind of byte the tokenizer is prepared to see next,
// given the container (if any) on top of the depth bitstack. It replaces a
// per-level state stack: popping a container always leaves the tokenizer
// expecting a comma or close at the new top level, so one scalar suffices.
type mode byte

const (
	mStart       mode = iota // top level, expect a value
	mArrayFirst              // just opened "[", expect a value or "]"
	mArrayValue              // after ",", expect a value
	mArrayNext               // after a value, expect "," or "]"
	mObjectFirst             // just opened "{", expect a key string or "}"
	mObjectKey               // after ",", expect a key string
	mColon                   // key string closed, expect ":"
	mObjectValue             // after ":", expect a value
	mObjectNext              // after a value, expect "," or "}"
	mDocEnd                  // the single top-level value is complete
)

type numPhase byte

const (
	numInt numPhase = iota
	numFrac
	numExp
)

type escState byte

const (
	escNone escState = iota
	escSeenBackslash
	escInUnicode
)

// A Tokenizer turns a byte stream into low-level Events. Construct one with
// New, feed it bytes with Feed, signal end of input with Finish, and drain
// Events with Next.
type Tokenizer struct {
	depth *bitstack.Stack
	mode  mode
	pos   int
	q     queue
	err   error

	inString    bool
	stringIsKey bool
	stringStart int
	esc         escState
	hexDigits   [4]byte
	hexCount    int

	inNumber        bool
	numberStart     int
	numPhase        numPhase
	numSawDot       bool
	numSawExpSign   bool
	numLastWasDigit bool
	numLeadingZero  bool
	numIntDigits    int

	inLiteral bool
	litWant   string
	litIdx    int
	litTag    Tag
	litStart  int
}

// New constructs a Tokenizer that tracks containment on depth.
func New(depth *bitstack.Stack) *Tokenizer {
	return &Tokenizer{depth: depth}
}

// Pos reports the absolute position of the next byte Feed expects.
func (t *Tokenizer) Pos() int { return t.pos }

// TokenOpen reports whether a String, Key, or Number token is currently
// open, the condition under which a driver's content buffer must retain
// bytes back to that token's content_start across a compaction or chunk
// rotation. Literal tokens (true/false/null) never touch the content
// buffer, so they do not count.
func (t *Tokenizer) TokenOpen() bool { return t.inString || t.inNumber }

// AtDocumentEnd reports whether the single top-level value has completed:
// true once the document's outermost container has closed, or its bare
// top-level primitive/number/string has closed, and false while any token
// or container remains open.
func (t *Tokenizer) AtDocumentEnd() bool { return t.mode == mDocEnd }

// Err reports the first error encountered, or nil.
func (t *Tokenizer) Err() error { return t.err }

// Next drains the next queued low-level Event, if any is available without
// feeding more input.
func (t *Tokenizer) Next() (Event, bool) { return t.q.pop() }

func (t *Tokenizer) fail(err error) error {
	if t.err == nil {
		t.err = err
	}
	return t.err
}

func (t *Tokenizer) emit(e Event) error {
	if !t.q.push(e) {
		return t.fail(&InternalError{Reason: "event queue overflow"})
	}
	return nil
}

// Feed advances the tokenizer by one input byte. It returns the first error
// encountered, which is latched: once Feed has failed, it keeps returning
// the same error and makes no further progress.
func (t *Tokenizer) Feed(b byte) error {
	if t.err != nil {
		return t.err
	}
	if err := t.step(b); err != nil {
		return t.fail(err)
	}
	t.pos++
	return nil
}

// Finish signals that no more bytes are coming. It flushes a pending number
// termination and reports an error if any token or container was left open.
func (t *Tokenizer) Finish() error {
	if t.err != nil {
		return t.err
	}
	if t.inNumber {
		if err := t.endNumber(false); err != nil {
			return t.fail(err)
		}
	}
	switch {
	case t.inString:
		return t.fail(&UnexpectedEndOfInput{Pos: t.pos})
	case t.inLiteral:
		return t.fail(&UnexpectedEndOfInput{Pos: t.pos})
	case t.mode != mDocEnd:
		return t.fail(&UnexpectedEndOfInput{Pos: t.pos})
	case !t.depth.Empty():
		return t.fail(&UnexpectedEndOfInput{Pos: t.pos})
	}
	return nil
}

// step processes one byte, possibly queuing events and possibly
// re-dispatching the same byte after closing an in-progress number.
func (t *Tokenizer) step(b byte) error {
	if t.inString {
		return t.stepString(b)
	}
	if t.inNumber {
		return t.stepNumber(b)
	}
	if t.inLiteral {
		return t.stepLiteral(b)
	}
	return t.dispatch(b)
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// dispatch handles a byte when no multi-byte token is currently open.
func (t *Tokenizer) dispatch(b byte) error {
	if isWhitespace(b) {
		return nil
	}

	switch t.mode {
	case mStart, mArrayValue, mObjectValue:
		return t.startValue(b)
	case mArrayFirst:
		if b == ']' {
			return t.closeContainer(false)
		}
		return t.startValue(b)
	case mArrayNext:
		switch b {
		case ',':
			t.mode = mArrayValue
			return nil
		case ']':
			return t.closeContainer(false)
		default:
			return syntaxErrorf(t.pos, "expected ',' or ']', got %q", b)
		}
	case mObjectFirst:
		if b == '}' {
			return t.closeContainer(true)
		}
		if b == '"' {
			return t.startString(true)
		}
		return syntaxErrorf(t.pos, "expected a key string or '}', got %q", b)
	case mObjectKey:
		if b == '"' {
			return t.startString(true)
		}
		return syntaxErrorf(t.pos, "expected a key string, got %q", b)
	case mColon:
		if b == ':' {
			t.mode = mObjectValue
			return nil
		}
		return syntaxErrorf(t.pos, "expected ':', got %q", b)
	case mObjectNext:
		switch b {
		case ',':
			t.mode = mObjectKey
			return nil
		case '}':
			return t.closeContainer(true)
		default:
			return syntaxErrorf(t.pos, "expected ',' or '}', got %q", b)
		}
	case mDocEnd:
		return syntaxErrorf(t.pos, "unexpected %q after top-level value", b)
	default:
		return &InternalError{Reason: "unreachable tokenizer mode"}
	}
}

// startValue begins scanning whatever value-shaped token starts with b,
// which the caller has already established is permitted in the current
// mode.
func (t *Tokenizer) startValue(b byte) error {
	switch {
	case b == '{':
		if err := t.depth.Push(true); err != nil {
			return err
		}
		t.mode = mObjectFirst
		return t.emit(Event{Kind: Atomic, Tag: TagObjectStart, Pos: t.pos})
	case b == '[':
		if err := t.depth.Push(false); err != nil {
			return err
		}
		t.mode = mArrayFirst
		return t.emit(Event{Kind: Atomic, Tag: TagArrayStart, Pos: t.pos})
	case b == '"':
		return t.startString(false)
	case b == '-' || isDigit(b):
		return t.startNumber(b)
	case b == 't':
		return t.startLiteral(b, "rue", TagTrue)
	case b == 'f':
		return t.startLiteral(b, "alse", TagFalse)
	case b == 'n':
		return t.startLiteral(b, "ull", TagNull)
	default:
		return syntaxErrorf(t.pos, "unexpected %q looking for a value", b)
	}
}

// closeContainer pops the bitstack for a '}' or ']' byte and advances mode
// to whatever the enclosing context expects next.
func (t *Tokenizer) closeContainer(isObject bool) error {
	if err := t.depth.Pop(isObject); err != nil {
		return err
	}
	tag := TagArrayEnd
	if isObject {
		tag = TagObjectEnd
	}
	if err := t.emit(Event{Kind: Atomic, Tag: tag, Pos: t.pos}); err != nil {
		return err
	}
	t.afterValue()
	return nil
}

// afterValue sets mode for what follows a value (primitive, string, or
// closed container) that has just completed.
func (t *Tokenizer) afterValue() {
	if t.depth.Empty() {
		t.mode = mDocEnd
		return
	}
	isObject, _ := t.depth.Peek()
	if isObject {
		t.mode = mObjectNext
	} else {
		t.mode = mArrayNext
	}
}

// --- literals (true/false/null) ---

func (t *Tokenizer) startLiteral(first byte, rest string, tag Tag) error {
	t.inLiteral = true
	t.litWant = rest
	t.litIdx = 0
	t.litTag = tag
	t.litStart = t.pos
	_ = first
	return nil
}

func (t *Tokenizer) stepLiteral(b byte) error {
	if t.litIdx >= len(t.litWant) || b != t.litWant[t.litIdx] {
		return syntaxErrorf(t.pos, "invalid literal near %q", b)
	}
	t.litIdx++
	if t.litIdx < len(t.litWant) {
		return nil
	}
	t.inLiteral = false
	if err := t.emit(Event{Kind: Atomic, Tag: t.litTag, Pos: t.litStart}); err != nil {
		return err
	}
	t.afterValue()
	return nil
}

// --- strings and keys ---

func (t *Tokenizer) startString(isKey bool) error {
	t.inString = true
	t.stringIsKey = isKey
	t.stringStart = t.pos
	t.esc = escNone
	t.hexCount = 0
	tag := TagString
	if isKey {
		tag = TagKey
	}
	return t.emit(Event{Kind: Begin, Tag: tag, Pos: t.pos + 1})
}

func (t *Tokenizer) stepString(b byte) error {
	switch t.esc {
	case escInUnicode:
		v, ok := hexValue(b)
		if !ok {
			return syntaxErrorf(t.pos, "invalid hex digit %q in \\u escape", b)
		}
		t.hexDigits[t.hexCount] = byte(v)
		t.hexCount++
		if t.hexCount < 4 {
			return nil
		}
		unit := uint16(t.hexDigits[0])<<12 | uint16(t.hexDigits[1])<<8 | uint16(t.hexDigits[2])<<4 | uint16(t.hexDigits[3])
		t.esc = escNone
		return t.emit(Event{Kind: End, Tag: TagUnicodeEscape, Pos: t.pos + 1, Unit: unit})

	case escSeenBackslash:
		t.esc = escNone
		if tag, ok := simpleEscapeTag(b); ok {
			return t.emit(Event{Kind: End, Tag: tag, Pos: t.pos + 1})
		}
		if b == 'u' {
			t.esc = escInUnicode
			t.hexCount = 0
			return t.emit(Event{Kind: Begin, Tag: TagUnicodeEscape, Pos: t.pos + 1})
		}
		return syntaxErrorf(t.pos, "invalid escape character %q", b)

	default: // escNone
		switch {
		case b == '"':
			t.inString = false
			tag := TagString
			if t.stringIsKey {
				tag = TagKey
			}
			if err := t.emit(Event{Kind: End, Tag: tag, Pos: t.pos}); err != nil {
				return err
			}
			if t.stringIsKey {
				t.mode = mColon
			} else {
				t.afterValue()
			}
			return nil
		case b == '\\':
			t.esc = escSeenBackslash
			return t.emit(Event{Kind: Begin, Tag: TagEscapeSequence, Pos: t.pos})
		case b < 0x20:
			return syntaxErrorf(t.pos, "unescaped control character %#02x in string", b)
		default:
			return nil // ordinary byte, stays borrowed in the input span
		}
	}
}

func hexValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

func simpleEscapeTag(b byte) (Tag, bool) {
	switch b {
	case '"':
		return TagEscapeQuote, true
	case '\\':
		return TagEscapeBackslash, true
	case '/':
		return TagEscapeSlash, true
	case 'b':
		return TagEscapeBackspace, true
	case 'f':
		return TagEscapeFormFeed, true
	case 'n':
		return TagEscapeNewline, true
	case 'r':
		return TagEscapeReturn, true
	case 't':
		return TagEscapeTab, true
	default:
		return TagInvalid, false
	}
}

// --- numbers ---

func (t *Tokenizer) startNumber(b byte) error {
	t.inNumber = true
	t.numberStart = t.pos
	t.numPhase = numInt
	t.numSawDot = false
	t.numSawExpSign = false
	t.numIntDigits = 0
	t.numLeadingZero = false
	t.numLastWasDigit = b != '-'
	if isDigit(b) {
		t.numIntDigits = 1
		t.numLeadingZero = b == '0'
	}
	return t.emit(Event{Kind: Begin, Tag: TagNumber, Pos: t.numberStart})
}

// stepNumber consumes one byte of an in-progress number, or, if b cannot
// continue the number, closes it and re-dispatches b as the start of
// whatever comes next.
func (t *Tokenizer) stepNumber(b byte) error {
	switch {
	case isDigit(b) && t.numPhase == numInt:
		if t.numLeadingZero && t.numIntDigits >= 1 {
			return syntaxErrorf(t.pos, "extra leading zero in number")
		}
		if t.numIntDigits == 0 {
			t.numLeadingZero = b == '0'
		}
		t.numIntDigits++
		t.numLastWasDigit = true
		return nil
	case isDigit(b):
		t.numLastWasDigit = true
		return nil
	case b == '.' && t.numPhase == numInt && t.numIntDigits >= 1 && !t.numSawDot:
		t.numSawDot = true
		t.numPhase = numFrac
		t.numLastWasDigit = false
		return nil
	case (b == 'e' || b == 'E') && t.numPhase != numExp && t.numLastWasDigit:
		t.numPhase = numExp
		t.numSawExpSign = false
		t.numLastWasDigit = false
		return nil
	case (b == '+' || b == '-') && t.numPhase == numExp && !t.numSawExpSign && !t.numLastWasDigit:
		t.numSawExpSign = true
		return nil
	default:
		// A terminating '}' or ']' immediately yields its own Atomic event
		// right behind the Number's End in the queue; ',' and ':' are
		// consumed silently (mode bookkeeping only) and whitespace produces
		// no event at all, so only the two container closers count as
		// "from a structural byte" for FromStructuralByte's purposes.
		if err := t.endNumber(b == '}' || b == ']'); err != nil {
			return err
		}
		return t.step(b)
	}
}

// endNumber closes the in-progress number. fromStructuralByte is true when
// the byte that terminated it (not yet consumed) will itself immediately
// produce another queued event; false when called from Finish, or when the
// terminator is whitespace, ',', or ':'.
func (t *Tokenizer) endNumber(fromStructuralByte bool) error {
	if !t.numLastWasDigit {
		return syntaxErrorf(t.pos, "malformed number")
	}
	t.inNumber = false
	isFloat := t.numSawDot || t.numPhase == numExp
	structural := fromStructuralByte
	if err := t.emit(Event{
		Kind:               End,
		Tag:                TagNumber,
		Pos:                t.pos,
		NumberIsFloat:      isFloat,
		FromStructuralByte: structural,
	}); err != nil {
		return err
	}
	t.afterValue()
	return nil
}
