// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes JSON string escape sequences incrementally: the
// eight simple escapes ("\n", "\t", ...) and "\uXXXX" Unicode escapes,
// including combining a UTF-16 surrogate pair into its UTF-8 encoding.
//
// Unlike a whole-buffer unescaper, a Decoder is fed one escape at a time as
// the tokenizer discovers it, so it can sit behind a byte-at-a-time state
// machine without holding more than a few bytes of its own state.
package escape

import (
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Simple maps the byte following a backslash to its decoded value, for the
// eight escapes JSON defines outside of \u. ok is false for any other byte.
func Simple(b byte) (decoded byte, ok bool) {
	switch b {
	case '"', '\\', '/':
		return b, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

// HexDigit returns the numeric value of a case-insensitive ASCII hex digit.
func HexDigit(b byte) (v int, ok bool) {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0'), true
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10, true
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

const (
	highSurrogateStart = 0xD800
	highSurrogateEnd   = 0xDBFF
	lowSurrogateStart  = 0xDC00
	lowSurrogateEnd    = 0xDFFF
)

func isHighSurrogate(u uint16) bool { return u >= highSurrogateStart && u <= highSurrogateEnd }
func isLowSurrogate(u uint16) bool  { return u >= lowSurrogateStart && u <= lowSurrogateEnd }

// InvalidCodepointError reports a violation of the surrogate-pairing rule:
// a lone high surrogate, a lone low surrogate, a high surrogate followed by
// a non-surrogate or by a non-Unicode escape, or a pending high surrogate
// still open at the end of a token.
type InvalidCodepointError struct {
	Reason string
}

func (e *InvalidCodepointError) Error() string {
	return fmt.Sprintf("invalid Unicode codepoint: %s", e.Reason)
}

// A Decoder assembles successive \uXXXX code units into UTF-8 bytes,
// stashing a high surrogate until its matching low surrogate arrives.
//
// The zero value is ready to use.
type Decoder struct {
	pendingHigh uint16
	hasPending  bool
}

// Pending reports whether a high surrogate is awaiting its pair.
func (d *Decoder) Pending() bool { return d.hasPending }

// Reset clears any pending high surrogate, discarding it without error.
// Unlike AtTokenEnd, it does not report an unpaired surrogate.
func (d *Decoder) Reset() { d.hasPending = false }

// Unit feeds one decoded \uXXXX code unit to the decoder. If it completes a
// surrogate pair (or stands alone as a non-surrogate scalar), it returns the
// UTF-8 encoding to append and len(out) > 0. If it opens a pending high
// surrogate, it returns a zero-length slice and no error; the caller must
// supply the matching low surrogate via the next call to Unit.
func (d *Decoder) Unit(u uint16) (out []byte, err error) {
	if d.hasPending {
		high := d.pendingHigh
		d.hasPending = false
		if !isLowSurrogate(u) {
			return nil, &InvalidCodepointError{Reason: "high surrogate not followed by a low surrogate"}
		}
		cp := ((rune(high) - highSurrogateStart) << 10) | (rune(u) - lowSurrogateStart) + 0x10000
		return encodeRune(cp), nil
	}
	switch {
	case isHighSurrogate(u):
		d.pendingHigh = u
		d.hasPending = true
		return nil, nil
	case isLowSurrogate(u):
		return nil, &InvalidCodepointError{Reason: "lone low surrogate"}
	default:
		return encodeRune(rune(u)), nil
	}
}

// AtTokenEnd must be called when the string or key token containing any
// \uXXXX escapes closes. It reports InvalidCodepointError if a high
// surrogate was left unpaired.
func (d *Decoder) AtTokenEnd() error {
	if d.hasPending {
		d.hasPending = false
		return &InvalidCodepointError{Reason: "unpaired high surrogate at end of token"}
	}
	return nil
}

// NonUnicodeEscapeWhilePending reports the error for the case where a
// pending high surrogate is interrupted by a non-\u escape (e.g. "\n")
// instead of its low surrogate. Callers should check Pending and call this
// instead of processing the simple escape.
func (d *Decoder) NonUnicodeEscapeWhilePending() error {
	d.hasPending = false
	return &InvalidCodepointError{Reason: "high surrogate followed by a non-Unicode escape"}
}

func encodeRune(r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return buf[:n]
}

// Quote encodes src as the body of a JSON string literal: the control
// characters, the backslash, the double quote, U+2028, U+2029, and U+FFFD
// (including each invalid UTF-8 byte, which decodes as U+FFFD) are escaped,
// and everything else passes through unchanged. It is the encode-direction
// mirror of Simple, used for debug output and error messages rather than
// for anything on the decoding path.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r < utf8.RuneSelf:
			buf = appendEscapedByte(buf, byte(r))
		case r == '\ufffd', r == '\u2028', r == '\u2029':
			buf = append(buf, fmt.Sprintf(`\u%04x`, r)...)
		default:
			buf = append(buf, encodeRune(r)...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

func appendEscapedByte(buf []byte, b byte) []byte {
	switch b {
	case '"', '\\':
		return append(buf, '\\', b)
	case '\b':
		return append(buf, '\\', 'b')
	case '\f':
		return append(buf, '\\', 'f')
	case '\n':
		return append(buf, '\\', 'n')
	case '\r':
		return append(buf, '\\', 'r')
	case '\t':
		return append(buf, '\\', 't')
	default:
		if b < ' ' {
			return append(buf, fmt.Sprintf(`\u%04x`, b)...)
		}
		return append(buf, b)
	}
}
