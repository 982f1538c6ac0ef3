package demangle

import (
	"errors"
	"fmt"
)

// Sentinel errors. These form the closed error-kind set the parser and
// renderer are allowed to produce; every failure path resolves to one of
// these, optionally wrapped in a *ParseError or *RenderError for context.
var (
	// ErrUnexpectedEnd indicates the input was exhausted mid-production.
	ErrUnexpectedEnd = errors.New("demangle: unexpected end of input")

	// ErrUnexpectedText indicates bytes were present but matched no
	// alternative of the current production.
	ErrUnexpectedText = errors.New("demangle: unexpected text")

	// ErrOverflow indicates a decimal number overflowed the machine
	// signed-word range, or a base-36 seq-id exceeded 2^31.
	ErrOverflow = errors.New("demangle: number overflow")

	// ErrBadBackReference indicates a <substitution> sequence-id pointed
	// past the end of the substitution store.
	ErrBadBackReference = errors.New("demangle: invalid substitution back-reference")

	// ErrBadTemplateArgReference indicates a T_ / T<n>_ reference that no
	// enclosing argument scope could resolve.
	ErrBadTemplateArgReference = errors.New("demangle: invalid template-argument reference")

	// ErrBadFunctionArgReference indicates an fp_ / fL<n>p... reference
	// that no enclosing argument scope could resolve.
	ErrBadFunctionArgReference = errors.New("demangle: invalid function-argument reference")

	// ErrRecursiveDemangling indicates the renderer detected a cycle in
	// the back-reference graph while walking the tree.
	ErrRecursiveDemangling = errors.New("demangle: recursive back-reference detected")

	// ErrEmptyInput indicates the caller passed a zero-length name.
	ErrEmptyInput = errors.New("demangle: empty input")
)

// ParseError wraps a parse-time sentinel error with the byte offset at
// which the failing production began and a description of what was being
// attempted, mirroring the teacher's *pdb.ParseError.
type ParseError struct {
	Production string // grammar nonterminal being parsed, e.g. "NestedName"
	Offset     int    // absolute byte offset into the original input
	Err        error  // one of the sentinel errors above
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("demangle: parsing %s at offset %d: %v", e.Production, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderError wraps a render-time sentinel error with the node kind that
// was being rendered when the failure occurred.
type RenderError struct {
	NodeKind string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("demangle: rendering %s: %v", e.NodeKind, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
