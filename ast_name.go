package demangle

// This file holds the `<name>`-family AST nodes: everything from
// `<mangled-name>` down through `<unqualified-name>`. Each nonterminal is a
// fixed-size tagged struct (a Kind discriminant plus the fields relevant to
// each variant) rather than an interface, so that store slots and AST
// fields are all plain values — the same shape the teacher's nodes.go used
// for its smaller MSVC node set, generalized to the Itanium grammar's
// larger and more deeply mutually-recursive family.

// MangledNameKind distinguishes the two <mangled-name> forms.
type MangledNameKind int

const (
	MangledEncoding MangledNameKind = iota
	MangledBareType                 // libiberty tolerance: a bare <type>
)

// MangledName is the parser's root result.
type MangledName struct {
	Kind     MangledNameKind
	Encoding *Encoding
	Type     Handle
}

// EncodingKind distinguishes the three top-level entities a mangled name
// can denote.
type EncodingKind int

const (
	EncodingFunction EncodingKind = iota
	EncodingData
	EncodingSpecial
)

// Encoding is the `<encoding>` production.
type Encoding struct {
	Kind     EncodingKind
	Name     *Name
	Function *BareFunctionType // only when Kind == EncodingFunction
	Special  *SpecialName      // only when Kind == EncodingSpecial
}

// NameKind distinguishes `<name>` alternatives.
type NameKind int

const (
	NameNested NameKind = iota
	NameUnscoped
	NameUnscopedTemplate
	NameLocal
	NameStd
)

// Name is the `<name>` production.
type Name struct {
	Kind      NameKind
	Nested    *NestedName
	Unscoped  *UnqualifiedName
	Template  Handle // UnscopedTemplateName handle, Kind == NameUnscopedTemplate
	Args      *TemplateArgs
	Local     *LocalName
	Std       *UnqualifiedName // Kind == NameStd ("St" <unqualified-name>)
}

// CvQualifiers models const/volatile/restrict, always printed in that
// fixed order per spec.md §4.D.4 / §8.1.
type CvQualifiers struct {
	Restrict bool
	Volatile bool
	Const    bool
}

func (q CvQualifiers) none() bool { return !q.Restrict && !q.Volatile && !q.Const }

// RefQualifierKind is the C++11 member-function ref-qualifier.
type RefQualifierKind int

const (
	RefNone RefQualifierKind = iota
	RefLvalue
	RefRvalue
)

// NestedName is the `<nested-name>` production: N [CV] [ref] <prefix> E.
type NestedName struct {
	CV     CvQualifiers
	Ref    RefQualifierKind
	Prefix Handle // Prefix handle; terminal variant must be Nested or Template
}

// PrefixKind distinguishes `<prefix>` alternatives.
type PrefixKind int

const (
	PrefixUnqualified PrefixKind = iota
	PrefixNested
	PrefixTemplate
	PrefixTemplateParam
	PrefixDecltype
	PrefixDataMember
	PrefixWellKnown // only used internally when resolving a WellKnown handle
)

// Prefix is the `<prefix>` production, built iteratively per spec.md §4.C.4.
type Prefix struct {
	Kind          PrefixKind
	Unqualified   *UnqualifiedName
	Parent        Handle // prefix handle, for Nested/Template/DataMember
	Name          *UnqualifiedName
	TemplateArgs  *TemplateArgs
	TemplateParam *TemplateParam
	Decltype      *Decltype
	DataMember    *SourceName
	WellKnown     WellKnownComponent
}

// templatable reports whether this prefix variant can have <template-args>
// applied directly (spec.md §4.C.4's "template-able" rule).
func (p *Prefix) templatable() bool {
	switch p.Kind {
	case PrefixUnqualified, PrefixNested, PrefixTemplateParam:
		return true
	default:
		return false
	}
}

// UnqualifiedNameKind distinguishes `<unqualified-name>` alternatives.
type UnqualifiedNameKind int

const (
	UnqualifiedSourceName UnqualifiedNameKind = iota
	UnqualifiedOperator
	UnqualifiedCtorDtor
	UnqualifiedUnnamedType
)

// UnqualifiedName is the `<unqualified-name>` production.
type UnqualifiedName struct {
	Kind       UnqualifiedNameKind
	SourceName *SourceName
	Operator   *OperatorNameNode
	CtorDtor   *CtorDtorName
	UnnamedIdx int // anonymous-type ordinal, rendered "{unnamed type#N}"
}

// SourceName is the `<source-name>` production: a decimal length followed
// by that many raw identifier bytes, rendered by copying the bytes — never
// by re-allocating a string (spec.md §3.3). Literal is populated eagerly
// for well-known/synthetic names (where there is no backing input range);
// Start/End index the original input for everything the parser reads.
type SourceName struct {
	Start, End int
	Literal    string // when non-empty, rendered instead of the Start/End range
}

func (s *SourceName) bytes(input []byte) []byte {
	if s.Literal != "" || (s.Start == 0 && s.End == 0) {
		return []byte(s.Literal)
	}
	return input[s.Start:s.End]
}

// CtorDtorNameKind enumerates the six constructor/destructor flavors.
type CtorDtorNameKind int

const (
	CtorComplete CtorDtorNameKind = iota
	CtorBase
	CtorCompleteAllocating
	DtorDeleting
	DtorComplete
	DtorBase
)

type CtorDtorName struct {
	Kind CtorDtorNameKind
}

func (c CtorDtorName) phrase() string {
	switch c.Kind {
	case CtorComplete:
		return "complete object constructor"
	case CtorBase:
		return "base object constructor"
	case CtorCompleteAllocating:
		return "complete object allocating constructor"
	case DtorDeleting:
		return "deleting destructor"
	case DtorComplete:
		return "complete object destructor"
	case DtorBase:
		return "base object destructor"
	default:
		return "<unknown ctor/dtor>"
	}
}

var ctorDtorCodes = map[string]CtorDtorNameKind{
	"C1": CtorComplete,
	"C2": CtorBase,
	"C3": CtorCompleteAllocating,
	"D0": DtorDeleting,
	"D1": DtorComplete,
	"D2": DtorBase,
}

// UnscopedTemplateName is a substitutable wrapper around a Name used as
// the template-name in `<unscoped-template-name> <template-args>`.
type UnscopedTemplateName struct {
	Name *Name
}

// LocalNameKind distinguishes `<local-name>` alternatives (spec.md §4.C.7).
type LocalNameKind int

const (
	LocalString LocalNameKind = iota
	LocalDefaultArg
	LocalNormal
)

type LocalName struct {
	Kind          LocalNameKind
	Encoding      *Encoding
	Discriminator int  // -1 if absent
	ParamNumber   int  // -1 if absent, LocalDefaultArg only
	Name          *Name // LocalDefaultArg / LocalNormal
}

// TemplateParam is a `<template-param>` reference: T_ means index 0, T0_
// means index 1, and so on (spec.md mirrors the substitution numbering).
type TemplateParam struct {
	Index int
}

// TemplateTemplateParam is the substitutable `<template-template-param>`:
// either a TemplateParam or a substitution back-reference to one.
type TemplateTemplateParam struct {
	Param *TemplateParam
}

// TemplateArgs is the `<template-args>` production: I <template-arg>+ E.
type TemplateArgs struct {
	Args []TemplateArg
}

// TemplateArgKind distinguishes `<template-arg>` alternatives.
type TemplateArgKind int

const (
	TemplateArgType TemplateArgKind = iota
	TemplateArgExpression
	TemplateArgExprPrimary
	TemplateArgPack
)

type TemplateArg struct {
	Kind       TemplateArgKind
	Type       Handle
	Expression *Expression
	ExprPrimary *ExprPrimary
	Pack       []TemplateArg
}
