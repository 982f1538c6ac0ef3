package demangle

// This file holds the `<type>`-family AST nodes.

// TypeKind distinguishes `<type>` alternatives.
type TypeKind int

const (
	TypeBuiltin TypeKind = iota
	TypeFunction
	TypeClassEnum
	TypeArray
	TypePointerToMember
	TypeTemplateParam
	TypeTemplateTemplate
	TypeDecltype
	TypeQualified
	TypePointer
	TypeLvalueRef
	TypeRvalueRef
	TypeComplex
	TypeImaginary
	TypeVendorExtension
	TypePackExpansion
)

// Type is the `<type>` production. It is always reached through a Handle;
// the parser never embeds one by value inside another node (spec.md §3.2).
type Type struct {
	Kind TypeKind

	Builtin *BuiltinType // TypeBuiltin
	Function *FunctionType // TypeFunction
	ClassEnum *ClassEnumType // TypeClassEnum
	Array *ArrayType // TypeArray
	PointerToMember *PointerToMemberType // TypePointerToMember
	TemplateParam *TemplateParam // TypeTemplateParam

	TemplateTemplateHandle Handle        // TypeTemplateTemplate
	TemplateTemplateArgs   *TemplateArgs // TypeTemplateTemplate

	Decltype *Decltype // TypeDecltype

	Qualified CvQualifiers // TypeQualified
	Inner     Handle       // TypeQualified / TypePointer / TypeLvalueRef /
	                       // TypeRvalueRef / TypeComplex / TypeImaginary /
	                       // TypePackExpansion: the wrapped type

	VendorName *SourceName   // TypeVendorExtension
	VendorArgs *TemplateArgs // TypeVendorExtension, optional
}

// BuiltinTypeKind distinguishes standard vs. vendor-extension builtins.
type BuiltinTypeKind int

const (
	BuiltinStandard BuiltinTypeKind = iota
	BuiltinExtension
)

type BuiltinType struct {
	Kind      BuiltinTypeKind
	Standard  StandardBuiltinType
	Extension *SourceName
}

// StandardBuiltinType enumerates the ABI's fixed vocabulary of one- and
// two-letter builtin type codes (spec.md §3.1, supplemented per
// SPEC_FULL.md §C.2 from original_source/src/ast.rs).
type StandardBuiltinType int

const (
	BTVoid StandardBuiltinType = iota
	BTWchar
	BTBool
	BTChar
	BTSignedChar
	BTUnsignedChar
	BTShort
	BTUnsignedShort
	BTInt
	BTUnsignedInt
	BTLong
	BTUnsignedLong
	BTLongLong
	BTUnsignedLongLong
	BTInt128
	BTUint128
	BTFloat
	BTDouble
	BTLongDouble
	BTFloat128
	BTEllipsis
	BTDecimalFloat64
	BTDecimalFloat128
	BTDecimalFloat32
	BTDecimalFloat16
	BTChar32
	BTChar16
	BTAuto
	BTDecltypeAuto
	BTNullptr
)

type builtinEntry struct {
	code string
	text string
}

var standardBuiltinTable = []builtinEntry{
	BTVoid:             {"v", "void"},
	BTWchar:            {"w", "wchar_t"},
	BTBool:             {"b", "bool"},
	BTChar:             {"c", "char"},
	BTSignedChar:       {"a", "signed char"},
	BTUnsignedChar:     {"h", "unsigned char"},
	BTShort:            {"s", "short"},
	BTUnsignedShort:    {"t", "unsigned short"},
	BTInt:              {"i", "int"},
	BTUnsignedInt:      {"j", "unsigned int"},
	BTLong:             {"l", "long"},
	BTUnsignedLong:     {"m", "unsigned long"},
	BTLongLong:         {"x", "long long"},
	BTUnsignedLongLong: {"y", "unsigned long long"},
	BTInt128:           {"n", "__int128"},
	BTUint128:          {"o", "unsigned __int128"},
	BTFloat:            {"f", "float"},
	BTDouble:           {"d", "double"},
	BTLongDouble:       {"e", "long double"},
	BTFloat128:         {"g", "__float128"},
	BTEllipsis:         {"z", "..."},
	BTDecimalFloat64:   {"Dd", "_Decimal64"},
	BTDecimalFloat128:  {"De", "_Decimal128"},
	BTDecimalFloat32:   {"Df", "_Decimal32"},
	BTDecimalFloat16:   {"Dh", "_Decimal16"},
	BTChar32:           {"Di", "char32_t"},
	BTChar16:           {"Ds", "char16_t"},
	BTAuto:             {"Da", "auto"},
	BTDecltypeAuto:     {"Dc", "decltype(auto)"},
	BTNullptr:          {"Dn", "std::nullptr_t"},
}

// standardBuiltinByCode maps the one/two-letter code to its enum value.
// parseBuiltinType looks up a two-letter code before a one-letter one.
var standardBuiltinByCode = func() map[string]StandardBuiltinType {
	m := make(map[string]StandardBuiltinType, len(standardBuiltinTable))
	for i, e := range standardBuiltinTable {
		m[e.code] = StandardBuiltinType(i)
	}
	return m
}()

func (b StandardBuiltinType) String() string { return standardBuiltinTable[b].text }

// FunctionType is the `<function-type>` production. Transaction-safety and
// extern "C" markers are parsed but intentionally not printed, matching
// spec.md §9's acknowledged gap; they are retained on the node so a future
// renderer extension could surface them without a parser change.
type FunctionType struct {
	CV              CvQualifiers
	Ref             RefQualifierKind
	TransactionSafe bool
	ExternC         bool
	Params          *BareFunctionType
}

// BareFunctionType is the `<bare-function-type>` production: a sequence of
// parameter type handles. When the encoding's name carries template
// arguments, element 0 is the return type (spec.md §8.1).
type BareFunctionType struct {
	Params []Handle
}

// ClassEnumElaboration distinguishes the Ts/Tu/Te elaborated-type-specifier
// prefixes from a bare <name>.
type ClassEnumElaboration int

const (
	ElaborationNone ClassEnumElaboration = iota
	ElaborationStruct
	ElaborationUnion
	ElaborationEnum
)

// ClassEnumType is the `<class-enum-type>` production.
type ClassEnumType struct {
	Elaboration ClassEnumElaboration
	QName       *Name  // nil for well-known-component synthesized types
	Name        string // used when QName is nil (well-known components)
}

// ArrayType is the `<array-type>` production. Dimension is either a
// literal decimal bound (HasNumber) or a dependent <expression> bound, or
// neither for `T[]`.
type ArrayType struct {
	HasNumber  bool
	Number     int
	Dimension  *Expression // non-nil for a dependent bound, mutually
	                       // exclusive with HasNumber
	ElementType Handle
}

// PointerToMemberType is the `<pointer-to-member-type>` production.
type PointerToMemberType struct {
	ClassType  Handle
	MemberType Handle
}

// Decltype is the `<decltype>` production: `Dt <expr> E` (id-expression or
// member access) or `DT <expr> E` (general expression). The distinction
// only affects grammar ambiguity resolution upstream, not rendering.
type Decltype struct {
	Expression *Expression
}
