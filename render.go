package demangle

import "strings"

// Renderer walks the AST produced by Parse and writes the demangled form.
// It is single-use, like Parser: construct one per Render call.
type Renderer struct {
	input  []byte
	store  *substitutionStore
	scopes *scopeStack
	guard  []guardEntry
}

type guardEntry struct {
	args  *TemplateArgs
	index int
}

func newRenderer(input []byte, store *substitutionStore) *Renderer {
	return &Renderer{input: input, store: store, scopes: newScopeStack()}
}

// pushGuard records that template argument (args, index) is currently
// being resolved. If it already is, the reference is circular — spec.md
// §4.D's ErrRecursiveDemangling — and rendering must stop rather than
// loop forever chasing a self-referential template argument.
func (r *Renderer) pushGuard(args *TemplateArgs, index int) error {
	for _, g := range r.guard {
		if g.args == args && g.index == index {
			return ErrRecursiveDemangling
		}
	}
	r.guard = append(r.guard, guardEntry{args, index})
	return nil
}

func (r *Renderer) popGuard() { r.guard = r.guard[:len(r.guard)-1] }

// Render renders a successful Parse result to its demangled string form.
func Render(result *ParseResult) (string, error) {
	r := newRenderer(result.input, result.store)
	s, err := r.renderMangledName(result.Root)
	if err != nil {
		return "", &RenderError{NodeKind: "MangledName", Err: err}
	}
	return s, nil
}

func (r *Renderer) renderMangledName(m *MangledName) (string, error) {
	switch m.Kind {
	case MangledEncoding:
		return r.renderEncoding(m.Encoding)
	case MangledBareType:
		return r.renderTypeFull(m.Type)
	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderEncoding(enc *Encoding) (string, error) {
	switch enc.Kind {
	case EncodingData:
		return r.renderName(enc.Name)
	case EncodingSpecial:
		return r.renderSpecialName(enc.Special)
	case EncodingFunction:
		return r.renderFunctionEncoding(enc)
	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderFunctionEncoding(enc *Encoding) (string, error) {
	args := r.templateArgsOf(enc.Name)
	if args != nil {
		r.scopes.pushTemplateArgs(args)
		defer r.scopes.popTemplateArgs()
	}

	params := enc.Function.Params
	isTemplate := args != nil
	paramStart := 0
	retStr := ""
	if isTemplate && len(params) > 0 {
		paramStart = 1
		rt, err := r.renderTypeFull(params[0])
		if err != nil {
			return "", err
		}
		retStr = rt
	}

	r.scopes.pushParams(params[paramStart:])
	defer r.scopes.popParams()

	name, err := r.renderName(enc.Name)
	if err != nil {
		return "", err
	}
	paramsStr, err := r.renderParamList(params[paramStart:])
	if err != nil {
		return "", err
	}

	cv, ref := r.memberQualifiers(enc.Name)

	var b strings.Builder
	if retStr != "" {
		b.WriteString(retStr)
		ensureSpaceInto(&b)
	}
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(paramsStr)
	b.WriteByte(')')
	b.WriteString(qualifierSuffix(cv))
	b.WriteString(refQualifierSuffix(ref))
	return b.String(), nil
}

// renderParamList renders a parameter type list, collapsing the
// single-"void" encoding of an empty parameter list to "" (spec.md's
// void-param `()` special case).
func (r *Renderer) renderParamList(params []Handle) (string, error) {
	if len(params) == 1 {
		t, err := r.store.getType(params[0])
		if err == nil && t.Kind == TypeBuiltin && t.Builtin != nil &&
			t.Builtin.Kind == BuiltinStandard && t.Builtin.Standard == BTVoid {
			return "", nil
		}
	}
	parts := make([]string, 0, len(params))
	for _, h := range params {
		s, err := r.renderTypeFull(h)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

// templateArgsOf finds the innermost <template-args> attached to a <name>,
// used both to decide whether a function encoding carries an explicit
// return type and to seed the scope stack for T_ resolution.
func (r *Renderer) templateArgsOf(name *Name) *TemplateArgs {
	switch name.Kind {
	case NameUnscopedTemplate:
		return name.Args
	case NameNested:
		return r.templateArgsOfPrefix(name.Nested.Prefix)
	default:
		return nil
	}
}

func (r *Renderer) templateArgsOfPrefix(h Handle) *TemplateArgs {
	prefix, err := r.store.getPrefix(h)
	if err != nil {
		return nil
	}
	if prefix.Kind == PrefixTemplate {
		return prefix.TemplateArgs
	}
	return nil
}

// memberQualifiers extracts a nested-name's own CV/ref qualifiers, which
// spec.md attaches to the <nested-name> node itself but which render as a
// suffix on the enclosing function's parameter list, not as part of the
// qualified name text.
func (r *Renderer) memberQualifiers(name *Name) (CvQualifiers, RefQualifierKind) {
	if name.Kind != NameNested {
		return CvQualifiers{}, RefNone
	}
	return name.Nested.CV, name.Nested.Ref
}

// qualifierSuffix renders const/volatile/restrict in the fixed order
// spec.md §4.D.4 and §8.1 prescribe.
func qualifierSuffix(q CvQualifiers) string {
	var b strings.Builder
	if q.Const {
		b.WriteString(" const")
	}
	if q.Volatile {
		b.WriteString(" volatile")
	}
	if q.Restrict {
		b.WriteString(" restrict")
	}
	return b.String()
}

func refQualifierSuffix(r RefQualifierKind) string {
	switch r {
	case RefLvalue:
		return " &"
	case RefRvalue:
		return " &&"
	default:
		return ""
	}
}

// ensureSpace appends a separating space unless s is empty or already
// ends in a space, '*' or '&' (so "int*" and "int (*" are followed
// directly by what comes next).
func ensureSpace(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, "*") || strings.HasSuffix(s, "&") {
		return s
	}
	return s + " "
}

func ensureSpaceInto(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, " ") {
		return
	}
	b.WriteByte(' ')
}
