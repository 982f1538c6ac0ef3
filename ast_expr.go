package demangle

// This file holds the `<expression>` family plus the unresolved-name
// machinery it depends on (`<unresolved-name>`, `<unresolved-type>`,
// `<base-unresolved-name>`, `<destructor-name>`, `<simple-id>`) and the
// `<expr-primary>` literal leaf.

// ExprKind enumerates every expression form this demangler parses. The
// acknowledged gaps from spec.md §9 (conversion-operator `cv` as an
// <operator-name>, `li` user-defined literals, vendor operators) are not
// members of this set.
type ExprKind int

const (
	ExprUnary ExprKind = iota
	ExprBinary
	ExprTernary
	ExprPrefixInc // pp_
	ExprPrefixDec // mm_
	ExprCall
	ExprConversion1    // cv <type> <expr>
	ExprConversionMulti // cv <type> _ <expr>* E
	ExprStaticCast
	ExprDynamicCast
	ExprConstCast
	ExprReinterpretCast
	ExprTypeidType
	ExprTypeidExpr
	ExprSizeofType
	ExprSizeofExpr
	ExprAlignofType
	ExprAlignofExpr
	ExprNoexcept
	ExprDot   // dt <expr> <unresolved-name>
	ExprArrow // pt <expr> <unresolved-name>
	ExprDotStar // ds <expr> <expr>
	ExprSizeofParamPack          // sZ <template-param|function-param>
	ExprSizeofCapturedTemplatePack // sP <template-arg>* E
	ExprPackExpansion            // sp <expr>
	ExprThrow // tw <expr>
	ExprRethrow // tr
	ExprNew
	ExprNewArray
	ExprDelete
	ExprDeleteArray
	ExprInitList // il <braced-expression>* E
	ExprPrimaryLiteral
	ExprTemplateParamRef
	ExprFunctionParamRef
	ExprUnresolvedName
)

// FunctionParamRef models `fp_`, `fL<n>p<CV><m>_`, and `fpT` (the implicit
// `this`).
type FunctionParamRef struct {
	IsThis bool
	CV     CvQualifiers
	Level  int // 0 for the innermost enclosing function
	Number int // 0-based parameter index
}

// Expression is the `<expression>` production.
type Expression struct {
	Kind ExprKind

	Operator *OperatorNameNode // Unary/Binary/Ternary
	Operands []Expression      // 1, 2, or 3 entries matching Kind

	Callee *Expression  // ExprCall
	Args   []Expression // ExprCall, ExprNew/ExprNewArray placement args,
	                     // ExprInitList, ExprSizeofCapturedTemplatePack (as
	                     // TemplateArg via Pack below)

	ConversionType Handle // ExprConversion1/Multi, casts, typeid/sizeof/alignof-of-type
	Sub            *Expression // single-operand forms

	Left, Right *Expression // ExprDotStar

	UnresolvedName *UnresolvedName // ExprDot/ExprArrow member name, ExprUnresolvedName

	Pack []TemplateArg // ExprSizeofCapturedTemplatePack

	Global    bool // ExprNew/ExprNewArray/ExprDelete/ExprDeleteArray: "::" prefix (gs)
	NewType   Handle
	NewInit   []Expression // nil when no parenthesized/braced initializer
	HasInit   bool

	TemplateParam   *TemplateParam    // ExprTemplateParamRef, ExprSizeofParamPack
	FunctionParam   *FunctionParamRef // ExprFunctionParamRef, ExprSizeofParamPack
	SizeofPackIsFunc bool             // ExprSizeofParamPack: which of the two fields above is set

	Literal *ExprPrimary // ExprPrimaryLiteral
}

// ExprPrimary is the `<expr-primary>` literal leaf. Per spec.md §3.1, the
// literal value is never copied out of the input: it is kept as a
// byte-range and re-rendered verbatim at render time, except for
// `nullptr`, which always prints as "nullptr" regardless of the (empty)
// backing bytes.
type ExprPrimary struct {
	Type         Handle
	IsNullptr    bool
	ValueStart   int
	ValueEnd     int
	IsExternal   bool // `L <mangled-name> E` form: an address-of-function/variable literal
	External     *MangledName
}

// UnresolvedTypeKind distinguishes `<unresolved-type>` alternatives. It is
// substitutable (spec.md §3.2).
type UnresolvedTypeKind int

const (
	UnresolvedTypeTemplateParam UnresolvedTypeKind = iota
	UnresolvedTypeDecltype
)

type UnresolvedType struct {
	Kind          UnresolvedTypeKind
	TemplateParam *TemplateParam
	TemplateArgs  *TemplateArgs // optional, applies to TemplateParam form
	Decltype      *Decltype
}

// SimpleId is the `<simple-id>` production: a source-name with optional
// template arguments, used where a name may or may not be a template.
type SimpleId struct {
	Name *SourceName
	Args *TemplateArgs
}

// DestructorNameKind distinguishes the two `<destructor-name>` forms.
type DestructorNameKind int

const (
	DestructorUnresolvedType DestructorNameKind = iota
	DestructorSimpleId
)

type DestructorName struct {
	Kind       DestructorNameKind
	Unresolved Handle
	SimpleId   *SimpleId
}

// BaseUnresolvedNameKind distinguishes `<base-unresolved-name>`
// alternatives.
type BaseUnresolvedNameKind int

const (
	BaseUnresolvedSimpleId BaseUnresolvedNameKind = iota
	BaseUnresolvedDestructor
	BaseUnresolvedOperator
)

type BaseUnresolvedName struct {
	Kind       BaseUnresolvedNameKind
	SimpleId   *SimpleId
	Destructor *DestructorName
	Operator   *OperatorNameNode
	OpArgs     *TemplateArgs // optional, BaseUnresolvedOperator only
}

// UnresolvedName is the `<unresolved-name>` production. The fully general
// grammar allows a chain of `<unresolved-qualifier-level>`s between `sr`
// and the final `E`; this implementation supports the common single-level
// `sr <unresolved-type> <base-unresolved-name>` and
// `sr <unresolved-type> <template-args> <base-unresolved-name>` forms plus
// the qualifier-free form. Multi-level qualifier chains
// (`sr <level>+ E <base-unresolved-name>`) are an acknowledged parsing gap
// (see DESIGN.md).
type UnresolvedName struct {
	Global     bool // leading "gs"
	Qualifier  Handle // UnresolvedType handle; meaningful only when HasQualifier is true
	HasQualifier bool
	QualifierArgs *TemplateArgs
	Base       *BaseUnresolvedName
}
