package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ConsumeAndPeek(t *testing.T) {
	c := newCursor([]byte("abc"))
	b, ok := c.peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)

	c2, err := c.consume([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, 2, c2.index())
	assert.Equal(t, 1, c2.len())

	_, err = c.consume([]byte("xy"))
	assert.ErrorIs(t, err, ErrUnexpectedText)

	_, err = c.consume([]byte("abcd"))
	assert.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestCursor_ConsumeByte(t *testing.T) {
	c := newCursor([]byte("Z"))
	c2, err := c.consumeByte('Z')
	require.NoError(t, err)
	assert.True(t, c2.isEmpty())

	_, err = newCursor(nil).consumeByte('Z')
	assert.ErrorIs(t, err, ErrUnexpectedEnd)

	_, err = newCursor([]byte("Y")).consumeByte('Z')
	assert.ErrorIs(t, err, ErrUnexpectedText)
}

func TestParseDecimalNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue int
		wantRest  string
		wantErr   error
	}{
		{"single digit", "3foo", 3, "foo", nil},
		{"multi digit", "123_", 123, "_", nil},
		{"negative", "n5x", -5, "x", nil},
		{"zero", "0z", 0, "z", nil},
		{"leading zero rejected", "012", 0, "", ErrUnexpectedText},
		{"no digits", "x", 0, "", ErrUnexpectedText},
		{"empty", "", 0, "", ErrUnexpectedEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, rest, err := parseDecimalNumber(newCursor([]byte(tt.input)))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, v)
			remaining, _, _ := rest.trySplitAt(rest.len())
			assert.Equal(t, tt.wantRest, string(remaining))
		})
	}
}

func TestParseDecimalNumber_Overflow(t *testing.T) {
	_, _, err := parseDecimalNumber(newCursor([]byte("99999999999999999999999999")))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestParseSeqID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantValue   int
		wantDigits  bool
		wantRest    string
	}{
		{"empty means absent", "_rest", 0, false, "_rest"},
		{"zero digit", "0_rest", 0, true, "_rest"},
		{"single digit", "2_rest", 2, true, "_rest"},
		{"alpha digit", "A_rest", 10, true, "_rest"},
		{"multi digit base36", "10_rest", 36, true, "_rest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := newCursor([]byte(tt.input))
			v, rest, err := parseSeqID(start)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, tt.wantDigits, rest.index() != start.index())
			remaining, _, _ := rest.trySplitAt(rest.len())
			assert.Equal(t, tt.wantRest, string(remaining))
		})
	}
}

func TestParseSeqID_LeadingZeroRejected(t *testing.T) {
	_, _, err := parseSeqID(newCursor([]byte("01_")))
	assert.ErrorIs(t, err, ErrUnexpectedText)
}

func TestParseSeqID_Overflow(t *testing.T) {
	_, _, err := parseSeqID(newCursor([]byte("ZZZZZZZZZZZZ_")))
	assert.ErrorIs(t, err, ErrOverflow)
}
