// Package demangle implements the Itanium C++ ABI name-mangling grammar:
// parsing a mangled symbol into an AST (Parse) and rendering that AST back
// into readable C++ (Render). Demangle composes the two for the common
// case of turning a mangled byte string directly into its demangled form.
package demangle

// Demangle parses and renders mangled in one step. It accepts the same
// input forms as Parse (the `_Z`/`__Z` encodings, and a bare <type> as a
// libiberty-compatible fallback).
func Demangle(mangled []byte) (string, error) {
	result, err := Parse(mangled)
	if err != nil {
		return "", err
	}
	return Render(result)
}

// DemangleString is a convenience wrapper over Demangle for callers that
// already have a string rather than a byte slice.
func DemangleString(mangled string) (string, error) {
	return Demangle([]byte(mangled))
}
