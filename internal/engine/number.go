// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package engine

import (
	"fmt"
	"strconv"

	"go4.org/mem"
)

// FloatMode selects how the number policy handles a token with a decimal
// point or exponent, mirroring the original implementation's Cargo feature
// flags (float on/off, float-error, float-skip, float-truncate).
type FloatMode int

const (
	// FloatDisabled is the default: a float-shaped token is accepted but
	// decoded only as FloatDisabled (the raw span is preserved, no f64
	// conversion is attempted).
	FloatDisabled FloatMode = iota
	// FloatEnabled parses float-shaped tokens as float64.
	FloatEnabled
	// FloatError rejects any float-shaped token with FloatNotAllowed.
	FloatError
	// FloatSkip suppresses the Number event entirely for float-shaped
	// tokens; the processor must pull the next event instead.
	FloatSkip
	// FloatTruncate accepts "int.frac" (no exponent) by dropping the
	// fractional digits and decoding the integer part; scientific notation
	// is rejected with InvalidNumber.
	FloatTruncate
)

// FloatNotAllowedError reports a float-shaped number token under
// FloatError.
type FloatNotAllowedError struct{}

func (FloatNotAllowedError) Error() string { return "float numbers are not allowed by configuration" }

// InvalidNumberError reports a number token the policy cannot decode under
// the active configuration (e.g. scientific notation under FloatTruncate).
type InvalidNumberError struct {
	Reason string
}

func (e *InvalidNumberError) Error() string { return "invalid number: " + e.Reason }

// errSkipNumber is a sentinel returned by classifyNumber when FloatSkip
// determines the token should produce no event at all.
var errSkipNumber = fmt.Errorf("picoscan/internal/engine: number skipped")

// classifyNumber decodes a raw digit span (never containing an escape) into
// a Number value, per the configured integer width and float mode. raw is a
// borrow from whichever content buffer extracted it and must not be
// retained past the caller's current pull.
func classifyNumber(raw []byte, isFloat bool, intWidth int, floatMode FloatMode) (Number, error) {
	view := mem.B(raw)
	n := Number{Raw: view}

	if !isFloat {
		i, err := strconv.ParseInt(string(raw), 10, intWidth)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				n.Outcome = OutcomeIntegerOverflow
				return n, nil
			}
			return Number{}, &InvalidNumberError{Reason: err.Error()}
		}
		n.Outcome = OutcomeInteger
		n.Int = i
		return n, nil
	}

	switch floatMode {
	case FloatEnabled:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return Number{}, &InvalidNumberError{Reason: err.Error()}
		}
		n.Outcome = OutcomeFloat
		n.Float = f
		return n, nil

	case FloatError:
		return Number{}, FloatNotAllowedError{}

	case FloatSkip:
		return Number{}, errSkipNumber

	case FloatTruncate:
		intPart, ok := truncateToInteger(raw)
		if !ok {
			return Number{}, &InvalidNumberError{Reason: "scientific notation is not permitted under float-truncate"}
		}
		i, err := strconv.ParseInt(intPart, 10, intWidth)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				n.Outcome = OutcomeIntegerOverflow
				return n, nil
			}
			return Number{}, &InvalidNumberError{Reason: err.Error()}
		}
		n.Outcome = OutcomeFloatTruncated
		n.Int = i
		return n, nil

	default: // FloatDisabled
		n.Outcome = OutcomeFloatDisabled
		return n, nil
	}
}

// truncateToInteger returns the digits before the decimal point of raw, or
// ok=false if raw carries an exponent (which float-truncate rejects).
func truncateToInteger(raw []byte) (string, bool) {
	dot := -1
	for i, b := range raw {
		switch b {
		case 'e', 'E':
			return "", false
		case '.':
			dot = i
		}
	}
	if dot < 0 {
		return string(raw), true
	}
	return string(raw[:dot]), true
}
