// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package picoscan

import (
	"fmt"

	"go4.org/mem"

	"github.com/creachadair/picoscan/internal/escape"
)

// Quote renders src as a double-quoted JSON string literal, for use in
// debug output and error messages (for example, echoing a Key back into a
// diagnostic). The scanner itself never re-encodes anything it reads, so
// this is the one place the module writes JSON rather than reading it.
func Quote(src mem.RO) string {
	body := escape.Quote(src)
	out := make([]byte, 0, len(body)+2)
	out = append(out, '"')
	out = append(out, body...)
	out = append(out, '"')
	return string(out)
}

// Describe renders err as a one-line diagnostic that quotes the offending
// byte of data, for callers that want more context in a log line than
// Error.Error alone gives them. data must be the same input the façade that
// returned err was reading from.
func Describe(err *Error, data []byte) string {
	end := err.Offset + 1
	if end > len(data) {
		end = len(data)
	}
	return fmt.Sprintf("%v (near %s)", err, Quote(mem.B(data[err.Offset:end])))
}
