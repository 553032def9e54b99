// Package control holds the mirrored machine state and the line parser that feeds it.
package control

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is returned when a line does not carry three integers.
var ErrMalformed = errors.New("malformed message")

// FieldCount is the number of integers in a message line.
const FieldCount = 3

// Scan reads "position,brightnessA,brightnessB" from line. Like a %d,%d,%d
// conversion it stops at the first field that does not match and reports how
// many fields were read; anything after the third integer is ignored.
func Scan(line string) (vals [FieldCount]int, n int) {
	rest := line
	for n < FieldCount {
		if n > 0 {
			if len(rest) == 0 || rest[0] != ',' {
				return vals, n
			}
			rest = rest[1:]
		}
		v, tail, ok := scanInt(rest)
		if !ok {
			return vals, n
		}
		vals[n] = v
		rest = tail
		n++
	}
	return vals, n
}

// scanInt reads an optionally signed decimal integer after leading white space.
func scanInt(s string) (int, string, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, s, false
	}
	v, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, s, false
	}
	return v, s[i:], true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Parse scans line into the current values of st. Fields are stored in order
// until the first one that fails to scan; the remaining fields keep their
// values. Only current values are touched. A short scan returns an error
// wrapping ErrMalformed; the state is still usable.
func Parse(line string, st *State) error {
	vals, n := Scan(line)

	fields := [FieldCount]*int{&st.Position, &st.BrightnessA, &st.BrightnessB}
	for i := 0; i < n; i++ {
		*fields[i] = vals[i]
	}

	if n < FieldCount {
		return fmt.Errorf("%w: %q: scanned %d of %d fields", ErrMalformed, line, n, FieldCount)
	}
	return nil
}
