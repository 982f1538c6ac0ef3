package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionStore_TypeRoundTrip(t *testing.T) {
	s := newSubstitutionStore()
	want := &Type{Kind: TypeBuiltin, Builtin: &BuiltinType{Kind: BuiltinStandard, Standard: BTInt}}
	h := s.insertType(want)

	assert.True(t, h.IsBackReference())
	assert.Equal(t, 0, h.Index())

	got, err := s.getType(h)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestSubstitutionStore_BadBackReference(t *testing.T) {
	s := newSubstitutionStore()
	s.insertType(&Type{Kind: TypeBuiltin, Builtin: &BuiltinType{Kind: BuiltinStandard, Standard: BTInt}})

	_, err := s.getType(backReferenceHandle(5))
	assert.ErrorIs(t, err, ErrBadBackReference)
}

func TestSubstitutionStore_KindMismatch(t *testing.T) {
	s := newSubstitutionStore()
	h := s.insertPrefix(&Prefix{Kind: PrefixWellKnown, WellKnown: WKStd})

	_, err := s.getType(h)
	assert.ErrorIs(t, err, ErrBadBackReference)
}

func TestSubstitutionStore_BuiltinHandleBypassesStore(t *testing.T) {
	s := newSubstitutionStore()
	b := &BuiltinType{Kind: BuiltinStandard, Standard: BTBool}
	h := builtinHandle(b)

	assert.True(t, h.IsBuiltin())
	assert.Equal(t, 0, s.len())

	got, err := s.getType(h)
	require.NoError(t, err)
	assert.Equal(t, TypeBuiltin, got.Kind)
	assert.Same(t, b, got.Builtin)
}

func TestSubstitutionStore_WellKnownComponent(t *testing.T) {
	s := newSubstitutionStore()
	h := wellKnownHandle(WKStdString)

	assert.True(t, h.IsWellKnown())

	got, err := s.getType(h)
	require.NoError(t, err)
	assert.Equal(t, TypeClassEnum, got.Kind)
	assert.Equal(t, "std::string", got.ClassEnum.Name)

	p, err := s.getPrefix(h)
	require.NoError(t, err)
	assert.Equal(t, PrefixWellKnown, p.Kind)
	assert.Equal(t, WKStdString, p.WellKnown)
}

func TestSubstitutionStore_UnscopedTemplateNameWellKnown(t *testing.T) {
	s := newSubstitutionStore()
	n, err := s.getUnscopedTemplateName(wellKnownHandle(WKStdAllocator))
	require.NoError(t, err)
	assert.Equal(t, NameStd, n.Name.Kind)
	assert.Equal(t, "std::allocator", n.Name.Std.SourceName.Literal)
}

func TestSubstitutionStore_InsertionOrderPreserved(t *testing.T) {
	s := newSubstitutionStore()
	h0 := s.insertType(&Type{Kind: TypeBuiltin, Builtin: &BuiltinType{Kind: BuiltinStandard, Standard: BTInt}})
	h1 := s.insertType(&Type{Kind: TypeBuiltin, Builtin: &BuiltinType{Kind: BuiltinStandard, Standard: BTBool}})

	assert.Equal(t, 0, h0.Index())
	assert.Equal(t, 1, h1.Index())
	assert.Equal(t, 2, s.len())
	assert.True(t, s.contains(0))
	assert.True(t, s.contains(1))
	assert.False(t, s.contains(2))
}
