package demangle

// substitutableKind identifies which family of node a store slot holds.
// The store's typed accessors (getType, getPrefix, ...) use it to reject a
// handle of the wrong family with ErrBadBackReference, and the renderer
// dispatches on it where a handle may hold more than one family. The
// parser does not check a back-reference's family when it parses a
// <substitution> (see the "Open Questions" note in DESIGN.md / spec.md §9).
type substitutableKind int

const (
	subKindType substitutableKind = iota
	subKindPrefix
	subKindUnscopedTemplateName
	subKindTemplateTemplateParam
	subKindUnresolvedType
)

// substitutable is the sum type of node families that live in the
// substitution store rather than being embedded by value.
type substitutable struct {
	kind                substitutableKind
	typ                 *Type
	prefix              *Prefix
	unscopedTemplate    *UnscopedTemplateName
	templateTemplate    *TemplateTemplateParam
	unresolvedType      *UnresolvedType
}

// handleKind distinguishes the three ways a Handle can resolve.
type handleKind int

const (
	handleBackReference handleKind = iota
	handleWellKnown
	handleBuiltin // Type handles only
)

// WellKnownComponent enumerates the seven standard library abbreviations
// the grammar encodes directly (S?) rather than through the generic
// back-reference machinery.
type WellKnownComponent int

const (
	WKStd WellKnownComponent = iota
	WKStdAllocator
	WKStdBasicString
	WKStdString
	WKStdIstream
	WKStdOstream
	WKStdIostream
)

func (w WellKnownComponent) String() string {
	switch w {
	case WKStd:
		return "std"
	case WKStdAllocator:
		return "std::allocator"
	case WKStdBasicString:
		return "std::basic_string"
	case WKStdString:
		return "std::string"
	case WKStdIstream:
		return "std::basic_istream<char, std::char_traits<char> >"
	case WKStdOstream:
		return "std::ostream"
	case WKStdIostream:
		return "std::basic_iostream<char, std::char_traits<char> >"
	default:
		return "<unknown well-known component>"
	}
}

var wellKnownCodes = map[string]WellKnownComponent{
	"St": WKStd,
	"Sa": WKStdAllocator,
	"Sb": WKStdBasicString,
	"Ss": WKStdString,
	"Si": WKStdIstream,
	"So": WKStdOstream,
	"Sd": WKStdIostream,
}

// Handle is a stable reference to a substitutable node: either an index
// into the substitution store, a well-known component (never stored), or
// (Type handles only) an inline builtin type that likewise never occupies
// a store slot.
type Handle struct {
	kind    handleKind
	index   int
	wellKnown WellKnownComponent
	builtin *BuiltinType
}

func backReferenceHandle(index int) Handle { return Handle{kind: handleBackReference, index: index} }
func wellKnownHandle(w WellKnownComponent) Handle { return Handle{kind: handleWellKnown, wellKnown: w} }
func builtinHandle(b *BuiltinType) Handle { return Handle{kind: handleBuiltin, builtin: b} }

func (h Handle) IsBackReference() bool { return h.kind == handleBackReference }
func (h Handle) IsWellKnown() bool     { return h.kind == handleWellKnown }
func (h Handle) IsBuiltin() bool       { return h.kind == handleBuiltin }
func (h Handle) Index() int            { return h.index }
func (h Handle) WellKnown() WellKnownComponent { return h.wellKnown }
func (h Handle) Builtin() *BuiltinType { return h.builtin }
