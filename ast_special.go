package demangle

// This file holds `<operator-name>`, `<special-name>`, and `<call-offset>`.

// OperatorKind enumerates the ~48 vocabulary operator codes from
// original_source/src/ast.rs (SPEC_FULL.md §C.1). The conversion operator
// (`cv <type>`), user-defined literal operator (`li <source-name>`), and
// vendor-extended operators (`v<digit><source-name>`) are acknowledged
// gaps per spec.md §9 and are not members of this enum.
type OperatorKind int

const (
	OpNew OperatorKind = iota
	OpNewArray
	OpDelete
	OpDeleteArray
	OpUnaryPlus
	OpNeg
	OpAddressOf
	OpDeref
	OpBitNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpBitAnd
	OpBitOr
	OpBitXor
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpRemAssign
	OpBitAndAssign
	OpBitOrAssign
	OpBitXorAssign
	OpShl
	OpShr
	OpShlAssign
	OpShrAssign
	OpEq
	OpNe
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
	OpNot
	OpLogicalAnd
	OpLogicalOr
	OpPostInc
	OpPostDec
	OpComma
	OpDerefMemberPtr
	OpDerefMember
	OpCall
	OpIndex
	OpQuestion
)

type operatorEntry struct {
	code  string
	token string
	arity int // 1, 2, or 3 (3 == ternary, only OpQuestion)
}

var operatorTable = []operatorEntry{
	OpNew:            {"nw", "new", 1},
	OpNewArray:       {"na", "new[]", 1},
	OpDelete:         {"dl", "delete", 1},
	OpDeleteArray:    {"da", "delete[]", 1},
	OpUnaryPlus:      {"ps", "+", 1},
	OpNeg:            {"ng", "-", 1},
	OpAddressOf:      {"ad", "&", 1},
	OpDeref:          {"de", "*", 1},
	OpBitNot:         {"co", "~", 1},
	OpAdd:            {"pl", "+", 2},
	OpSub:            {"mi", "-", 2},
	OpMul:            {"ml", "*", 2},
	OpDiv:            {"dv", "/", 2},
	OpRem:            {"rm", "%", 2},
	OpBitAnd:         {"an", "&", 2},
	OpBitOr:          {"or", "|", 2},
	OpBitXor:         {"eo", "^", 2},
	OpAssign:         {"aS", "=", 2},
	OpAddAssign:      {"pL", "+=", 2},
	OpSubAssign:      {"mI", "-=", 2},
	OpMulAssign:      {"mL", "*=", 2},
	OpDivAssign:      {"dV", "/=", 2},
	OpRemAssign:      {"rM", "%=", 2},
	OpBitAndAssign:   {"aN", "&=", 2},
	OpBitOrAssign:    {"oR", "|=", 2},
	OpBitXorAssign:   {"eO", "^=", 2},
	OpShl:            {"ls", "<<", 2},
	OpShr:            {"rs", ">>", 2},
	OpShlAssign:      {"lS", "<<=", 2},
	OpShrAssign:      {"rS", ">>=", 2},
	OpEq:             {"eq", "==", 2},
	OpNe:             {"ne", "!=", 2},
	OpLess:           {"lt", "<", 2},
	OpGreater:        {"gt", ">", 2},
	OpLessEq:         {"le", "<=", 2},
	OpGreaterEq:      {"ge", ">=", 2},
	OpNot:            {"nt", "!", 1},
	OpLogicalAnd:     {"aa", "&&", 2},
	OpLogicalOr:      {"oo", "||", 2},
	OpPostInc:        {"pp", "++", 1},
	OpPostDec:        {"mm", "--", 1},
	OpComma:          {"cm", ",", 2},
	OpDerefMemberPtr: {"pm", "->*", 2},
	OpDerefMember:    {"pt", "->", 2},
	OpCall:           {"cl", "()", 2},
	OpIndex:          {"ix", "[]", 2},
	OpQuestion:       {"qu", "?:", 3},
}

// operatorByCode maps a two-byte tag to its OperatorKind; built once.
var operatorByCode = func() map[string]OperatorKind {
	m := make(map[string]OperatorKind, len(operatorTable))
	for i, e := range operatorTable {
		m[e.code] = OperatorKind(i)
	}
	return m
}()

// OperatorNameNode is the `<operator-name>` production.
type OperatorNameNode struct {
	Kind OperatorKind
}

func (o OperatorNameNode) token() string { return operatorTable[o.Kind].token }
func (o OperatorNameNode) arity() int    { return operatorTable[o.Kind].arity }

// NvOffset is a plain `<number>` non-virtual call offset.
type NvOffset struct{ Value int }

// VOffset is a `<number> _ <number>` virtual call offset (this-adjustment,
// vcall-offset).
type VOffset struct {
	ThisAdjustment int
	VCallOffset    int
}

// CallOffsetKind distinguishes `<call-offset>` alternatives.
type CallOffsetKind int

const (
	CallOffsetNonVirtual CallOffsetKind = iota
	CallOffsetVirtual
)

type CallOffset struct {
	Kind       CallOffsetKind
	NonVirtual NvOffset
	Virtual    VOffset
}

// SpecialNameKind distinguishes `<special-name>` alternatives (spec.md
// §3.1, expanded per SPEC_FULL.md §C.4).
type SpecialNameKind int

const (
	SpecialVirtualTable SpecialNameKind = iota
	SpecialVtt
	SpecialTypeinfo
	SpecialTypeinfoName
	SpecialVirtualOverrideThunk
	SpecialVirtualOverrideThunkCovariant
	SpecialGuard
	SpecialGuardTemporary
)

type SpecialName struct {
	Kind SpecialNameKind

	Type Handle // Virtual{Table,Vtt,Typeinfo,TypeinfoName}

	ThisOffset   CallOffset // VirtualOverrideThunk(Covariant)
	ResultOffset CallOffset // VirtualOverrideThunkCovariant only
	Base         *Encoding  // VirtualOverrideThunk(Covariant)

	Guard     *Name // Guard / GuardTemporary
	GuardSeq  int   // GuardTemporary: 0 for the first temporary
}
