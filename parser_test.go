package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParse_LeadingMarkerVariants(t *testing.T) {
	for _, prefix := range []string{"_Z", "__Z"} {
		t.Run(prefix, func(t *testing.T) {
			res, err := Parse([]byte(prefix + "3foo"))
			require.NoError(t, err)
			require.NotNil(t, res.Root)
			assert.Equal(t, MangledEncoding, res.Root.Kind)
			assert.Empty(t, res.Remainder)
		})
	}
}

func TestParse_BareTypeFallback(t *testing.T) {
	res, err := Parse([]byte("i"))
	require.NoError(t, err)
	assert.Equal(t, MangledBareType, res.Root.Kind)
	assert.True(t, res.Root.Type.IsBuiltin())
}

func TestParse_TrailingRemainderPreserved(t *testing.T) {
	res, err := Parse([]byte("_Z3fooTRAILINGJUNK"))
	require.NoError(t, err)
	assert.Equal(t, MangledEncoding, res.Root.Kind)
	assert.NotEmpty(t, res.Remainder)
}

func TestParse_UnresolvableBackReferenceLeavesRemainder(t *testing.T) {
	// "S9_" is a substitution back-reference to index 10, but nothing has
	// been stored yet. It cannot complete the function's bare-function-type,
	// so the encoding is committed as Data and the bytes are left unconsumed
	// rather than surfacing a parse error.
	res, err := Parse([]byte("_Z3fooS9_"))
	require.NoError(t, err)
	assert.Equal(t, EncodingData, res.Root.Encoding.Kind)
	assert.Equal(t, "S9_", string(res.Remainder))
}

func TestParse_WellKnownSubstitution(t *testing.T) {
	res, err := Parse([]byte("_Z3fooSt"))
	require.NoError(t, err)
	assert.Equal(t, MangledEncoding, res.Root.Kind)
}

func TestParse_NestedNameWithTemplate(t *testing.T) {
	res, err := Parse([]byte("_ZN3foo3barIiEEvT_"))
	require.NoError(t, err)
	enc := res.Root.Encoding
	require.Equal(t, EncodingFunction, enc.Kind)
	assert.Equal(t, NameNested, enc.Name.Kind)
}

func TestParse_SubstitutionBackReferenceResolves(t *testing.T) {
	// The first parameter "Pi" is stored as a Type at index 0 (the name
	// "3foo" and the builtin "i" are not stored), then "S_" inside the
	// second parameter refers back to it: foo(int*, int*&).
	res, err := Parse([]byte("_Z3fooPiRS_"))
	require.NoError(t, err)
	assert.Equal(t, MangledEncoding, res.Root.Kind)
	assert.Empty(t, res.Remainder)
}
