package demangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemangleString_BasicSymbols(t *testing.T) {
	tests := []struct {
		name     string
		mangled  string
		expected string
	}{
		{"plain function", "_Z3foo", "foo"},
		{"single int param", "_Z3fooi", "foo(int)"},
		{"void params collapse", "_Z3foov", "foo()"},
		{"nested method no args", "_ZN3foo3barEv", "foo::bar()"},
		{"template method", "_ZN3foo3barIiEEvT_", "void foo::bar<int>(int)"},
		{"pointer to const int", "_Z3fooPKi", "foo(int const*)"},
		{"typeinfo", "_ZTI3foo", "typeinfo for foo"},
		{"static guard", "_ZGV3foo", "{static initialization guard(foo)}"},
		{"operator new", "_Znwm", "operator new(unsigned long)"},
		{"std qualified name", "_ZSt3foo", "std::foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DemangleString(tt.mangled)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDemangleString_SpecialNames(t *testing.T) {
	tests := []struct {
		name     string
		mangled  string
		expected string
	}{
		{"vtable", "_ZTV3foo", "{vtable(foo)}"},
		{"VTT", "_ZTT3foo", "{vtt(foo)}"},
		{"typeinfo name", "_ZTS3foo", "{typeinfo name(foo)}"},
		{"non-virtual thunk", "_ZTh0_3foo", "{virtual override thunk({offset(0)}, foo)}"},
		{"virtual thunk", "_ZTv0_0_3foo", "{virtual override thunk({virtual offset(0, 0)}, foo)}"},
		{"covariant thunk", "_ZTch0_h4_3foo", "{virtual override thunk({offset(0)}, {offset(4)}, foo)}"},
		{"guard temporary, no seq", "_ZGR3foo_", "{static initialization guard temporary(foo, 0)}"},
		{"guard temporary, with seq", "_ZGR3foo0_", "{static initialization guard temporary(foo, 1)}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DemangleString(tt.mangled)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDemangleString_Nullptr(t *testing.T) {
	got, err := DemangleString("_Z1fILDnEEvv")
	require.NoError(t, err)
	assert.Contains(t, got, "nullptr")
}

func TestDemangleString_EmptyInput(t *testing.T) {
	_, err := DemangleString("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestDemangleString_RecursiveTemplateArg(t *testing.T) {
	// Hand-crafted: "3foo" name with an unscoped-template-name whose sole
	// argument is T_ (index 0), a direct self-reference.
	_, err := DemangleString("_Z3fooIT_EvS0_")
	require.Error(t, err)
	var renderErr *RenderError
	if assert.ErrorAs(t, err, &renderErr) {
		assert.ErrorIs(t, renderErr, ErrRecursiveDemangling)
	}
}

func TestDemangleString_BareTypeFallback(t *testing.T) {
	got, err := DemangleString("i")
	require.NoError(t, err)
	assert.Equal(t, "int", got)
}
