package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intBuiltin() Handle {
	return builtinHandle(&BuiltinType{Kind: BuiltinStandard, Standard: BTInt})
}

func TestRenderTypeParts_PointerToFunction(t *testing.T) {
	store := newSubstitutionStore()
	i := intBuiltin()
	ft := &FunctionType{Params: &BareFunctionType{Params: []Handle{i, i}}}
	ftH := store.insertType(&Type{Kind: TypeFunction, Function: ft})
	ptrH := store.insertType(&Type{Kind: TypePointer, Inner: ftH})

	r := newRenderer(nil, store)
	got, err := r.renderTypeFull(ptrH)
	require.NoError(t, err)
	assert.Equal(t, "int (*)(int)", got)
}

func TestRenderTypeParts_PointerToArray(t *testing.T) {
	store := newSubstitutionStore()
	i := intBuiltin()
	at := &ArrayType{HasNumber: true, Number: 10, ElementType: i}
	atH := store.insertType(&Type{Kind: TypeArray, Array: at})
	ptrH := store.insertType(&Type{Kind: TypePointer, Inner: atH})

	r := newRenderer(nil, store)
	got, err := r.renderTypeFull(ptrH)
	require.NoError(t, err)
	assert.Equal(t, "int (*)[10]", got)
}

func TestRenderTypeParts_PointerToPointer(t *testing.T) {
	store := newSubstitutionStore()
	i := intBuiltin()
	p1 := store.insertType(&Type{Kind: TypePointer, Inner: i})
	p2 := store.insertType(&Type{Kind: TypePointer, Inner: p1})

	r := newRenderer(nil, store)
	got, err := r.renderTypeFull(p2)
	require.NoError(t, err)
	assert.Equal(t, "int**", got)
}

func TestRenderTypeParts_ConstPointer(t *testing.T) {
	store := newSubstitutionStore()
	i := intBuiltin()
	q := store.insertType(&Type{Kind: TypeQualified, Qualified: CvQualifiers{Const: true}, Inner: i})
	ptr := store.insertType(&Type{Kind: TypePointer, Inner: q})

	r := newRenderer(nil, store)
	got, err := r.renderTypeFull(ptr)
	require.NoError(t, err)
	assert.Equal(t, "int const*", got)
}

func TestQualifierSuffix_Order(t *testing.T) {
	got := qualifierSuffix(CvQualifiers{Const: true, Volatile: true, Restrict: true})
	assert.Equal(t, " const volatile restrict", got)
}

func TestQualifierSuffix_Empty(t *testing.T) {
	assert.Equal(t, "", qualifierSuffix(CvQualifiers{}))
}

func TestRefQualifierSuffix(t *testing.T) {
	assert.Equal(t, "", refQualifierSuffix(RefNone))
	assert.Equal(t, " &", refQualifierSuffix(RefLvalue))
	assert.Equal(t, " &&", refQualifierSuffix(RefRvalue))
}

func TestOperatorSpacing(t *testing.T) {
	assert.Equal(t, " new", operatorSpacing("new"))
	assert.Equal(t, "()", operatorSpacing("()"))
	assert.Equal(t, "[]", operatorSpacing("[]"))
	assert.Equal(t, "+", operatorSpacing("+"))
}

func TestLastComponent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"foo", "foo"},
		{"foo::bar", "bar"},
		{"foo::bar::baz", "baz"},
		{"foo<a::b>::bar", "bar"},
		{"foo::bar<a::b>", "bar<a::b>"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, lastComponent(tt.in))
		})
	}
}

func TestItoa(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}

func TestRenderParamList_VoidCollapses(t *testing.T) {
	store := newSubstitutionStore()
	v := builtinHandle(&BuiltinType{Kind: BuiltinStandard, Standard: BTVoid})
	r := newRenderer(nil, store)

	got, err := r.renderParamList([]Handle{v})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRenderParamList_MultipleTypes(t *testing.T) {
	store := newSubstitutionStore()
	i := intBuiltin()
	b := builtinHandle(&BuiltinType{Kind: BuiltinStandard, Standard: BTBool})
	r := newRenderer(nil, store)

	got, err := r.renderParamList([]Handle{i, b})
	require.NoError(t, err)
	assert.Equal(t, "int, bool", got)
}

func TestResolveTemplateParam_RecursiveGuard(t *testing.T) {
	store := newSubstitutionStore()
	r := newRenderer(nil, store)

	args := &TemplateArgs{}
	args.Args = []TemplateArg{{Kind: TemplateArgExpression}}
	r.scopes.pushTemplateArgs(args)

	require.NoError(t, r.pushGuard(args, 0))
	_, err := r.resolveTemplateParam(&TemplateParam{Index: 0})
	assert.ErrorIs(t, err, ErrRecursiveDemangling)
}
