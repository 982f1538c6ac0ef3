package demangle

import "math"

// cursor is a position-tracked view into the mangled-name bytes. It is
// passed by value: every parse procedure receives one and returns an
// updated copy, so a failed speculative attempt never mutates the
// caller's view. Adapted from the teacher's internal/stream.Reader, which
// tracked a single mutable offset into a PDB stream; here the same shape
// becomes an immutable value so backtracking is just "discard the result".
type cursor struct {
	data []byte
	base int // absolute index of data[0] in the original input
}

func newCursor(data []byte) cursor {
	return cursor{data: data, base: 0}
}

// index returns the absolute byte offset of the cursor's first remaining
// byte within the original input.
func (c cursor) index() int { return c.base }

// len returns the number of bytes remaining.
func (c cursor) len() int { return len(c.data) }

func (c cursor) isEmpty() bool { return len(c.data) == 0 }

// peek returns the next byte without consuming it.
func (c cursor) peek() (byte, bool) {
	if len(c.data) == 0 {
		return 0, false
	}
	return c.data[0], true
}

// peekAt returns the byte n positions ahead without consuming anything.
func (c cursor) peekAt(n int) (byte, bool) {
	if n < 0 || n >= len(c.data) {
		return 0, false
	}
	return c.data[n], true
}

// trySplitAt splits the cursor into its first n bytes and the remainder.
// It returns false when fewer than n bytes remain.
func (c cursor) trySplitAt(n int) (head []byte, tail cursor, ok bool) {
	if n < 0 || n > len(c.data) {
		return nil, cursor{}, false
	}
	return c.data[:n], cursor{data: c.data[n:], base: c.base + n}, true
}

// rangeFrom advances the cursor by n bytes. n must be <= len(c.data).
func (c cursor) rangeFrom(n int) cursor {
	if n > len(c.data) {
		n = len(c.data)
	}
	return cursor{data: c.data[n:], base: c.base + n}
}

// consume succeeds iff the cursor's prefix matches expected exactly,
// returning the advanced cursor. It distinguishes a byte mismatch
// (ErrUnexpectedText) from simple exhaustion (ErrUnexpectedEnd).
func (c cursor) consume(expected []byte) (cursor, error) {
	if len(c.data) < len(expected) {
		return cursor{}, ErrUnexpectedEnd
	}
	for i, b := range expected {
		if c.data[i] != b {
			return cursor{}, ErrUnexpectedText
		}
	}
	return c.rangeFrom(len(expected)), nil
}

// consumeByte consumes a single expected byte.
func (c cursor) consumeByte(expected byte) (cursor, error) {
	if len(c.data) == 0 {
		return cursor{}, ErrUnexpectedEnd
	}
	if c.data[0] != expected {
		return cursor{}, ErrUnexpectedText
	}
	return c.rangeFrom(1), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isUpperAlphaNum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z')
}

// parseDecimalNumber parses the <number> production: an optional leading
// 'n' negates, followed by one-or-more decimal digits. A leading zero is
// forbidden unless the value itself is zero ("00", "01" are errors).
func parseDecimalNumber(c cursor) (int, cursor, error) {
	neg := false
	rest := c
	if b, ok := rest.peek(); ok && b == 'n' {
		neg = true
		rest = rest.rangeFrom(1)
	}

	start := rest
	digits := 0
	for {
		b, ok := rest.peek()
		if !ok || !isDigit(b) {
			break
		}
		rest = rest.rangeFrom(1)
		digits++
	}
	if digits == 0 {
		if rest.isEmpty() {
			return 0, cursor{}, ErrUnexpectedEnd
		}
		return 0, cursor{}, ErrUnexpectedText
	}

	raw, _, _ := start.trySplitAt(digits)
	if digits > 1 && raw[0] == '0' {
		return 0, cursor{}, ErrUnexpectedText
	}

	var value int64
	for _, b := range raw {
		d := int64(b - '0')
		if value > (math.MaxInt64-d)/10 {
			return 0, cursor{}, ErrOverflow
		}
		value = value*10 + d
	}
	if neg {
		value = -value
	}
	if value > int64(int(^uint(0)>>1)) || value < int64(-int(^uint(0)>>1)-1) {
		return 0, cursor{}, ErrOverflow
	}
	return int(value), rest, nil
}

// parseSeqID parses a base-36 <seq-id>: digits 0-9A-Z (uppercase only), the
// same no-leading-zero rule as parseDecimalNumber. An empty seq-id (no
// digits consumed) is valid and represents 0, matching "S_" meaning index 0
// — callers that need to distinguish "no digits" from "digit 0" should
// peek before calling.
func parseSeqID(c cursor) (int, cursor, error) {
	rest := c
	start := rest
	digits := 0
	for {
		b, ok := rest.peek()
		if !ok || !isUpperAlphaNum(b) {
			break
		}
		rest = rest.rangeFrom(1)
		digits++
	}
	if digits == 0 {
		return 0, c, nil
	}
	raw, _, _ := start.trySplitAt(digits)
	if digits > 1 && raw[0] == '0' {
		return 0, cursor{}, ErrUnexpectedText
	}
	var value int64
	for _, b := range raw {
		var d int64
		switch {
		case b >= '0' && b <= '9':
			d = int64(b - '0')
		default:
			d = int64(b-'A') + 10
		}
		value = value*36 + d
		if value > 1<<31 {
			return 0, cursor{}, ErrOverflow
		}
	}
	return int(value), rest, nil
}
