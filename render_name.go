package demangle

import "strings"

func (r *Renderer) renderName(n *Name) (string, error) {
	switch n.Kind {
	case NameNested:
		return r.renderPrefixChain(n.Nested.Prefix)
	case NameUnscoped:
		return r.renderUnqualifiedName(n.Unscoped, "")
	case NameStd:
		s, err := r.renderUnqualifiedName(n.Std, "")
		if err != nil {
			return "", err
		}
		return "std::" + s, nil
	case NameUnscopedTemplate:
		base, err := r.renderUnscopedTemplateNameHandle(n.Template)
		if err != nil {
			return "", err
		}
		args, err := r.renderTemplateArgList(n.Args)
		if err != nil {
			return "", err
		}
		return base + "<" + args + ">", nil
	case NameLocal:
		return r.renderLocalName(n.Local)
	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderUnscopedTemplateNameHandle(h Handle) (string, error) {
	utn, err := r.store.getUnscopedTemplateName(h)
	if err != nil {
		return "", err
	}
	return r.renderName(utn.Name)
}

// renderPrefixChain renders a <prefix> handle chain as a "::"-joined
// qualified name, threading the enclosing class name into constructor and
// destructor unqualified names (which, per spec.md §3.1, are rendered
// using the class they construct/destroy rather than a literal token).
func (r *Renderer) renderPrefixChain(h Handle) (string, error) {
	prefix, err := r.store.getPrefix(h)
	if err != nil {
		return "", err
	}
	switch prefix.Kind {
	case PrefixUnqualified:
		return r.renderUnqualifiedName(prefix.Unqualified, "")
	case PrefixNested:
		parent, err := r.renderPrefixChain(prefix.Parent)
		if err != nil {
			return "", err
		}
		name, err := r.renderUnqualifiedName(prefix.Name, lastComponent(parent))
		if err != nil {
			return "", err
		}
		return parent + "::" + name, nil
	case PrefixTemplate:
		parent, err := r.renderPrefixChain(prefix.Parent)
		if err != nil {
			return "", err
		}
		args, err := r.renderTemplateArgList(prefix.TemplateArgs)
		if err != nil {
			return "", err
		}
		return parent + "<" + args + ">", nil
	case PrefixTemplateParam:
		return r.renderTemplateParamAsName(prefix.TemplateParam)
	case PrefixDecltype:
		expr, err := r.renderExpressionString(prefix.Decltype.Expression)
		if err != nil {
			return "", err
		}
		return "decltype(" + expr + ")", nil
	case PrefixDataMember:
		parent, err := r.renderPrefixChain(prefix.Parent)
		if err != nil {
			return "", err
		}
		return parent + "::" + string(prefix.DataMember.bytes(r.input)), nil
	case PrefixWellKnown:
		return wellKnownName(prefix.WellKnown), nil
	default:
		return "", ErrUnexpectedText
	}
}

// renderUnqualifiedName renders a single unqualified-name component.
// className is the immediately enclosing scope's last component, used
// only to render constructor/destructor names; pass "" when there is none.
func (r *Renderer) renderUnqualifiedName(u *UnqualifiedName, className string) (string, error) {
	switch u.Kind {
	case UnqualifiedSourceName:
		return string(u.SourceName.bytes(r.input)), nil
	case UnqualifiedOperator:
		return r.renderOperatorName(u.Operator)
	case UnqualifiedCtorDtor:
		if className == "" {
			return u.CtorDtor.phrase(), nil
		}
		switch u.CtorDtor.Kind {
		case DtorDeleting, DtorComplete, DtorBase:
			return "~" + className, nil
		default:
			return className, nil
		}
	case UnqualifiedUnnamedType:
		return "{unnamed type#" + itoa(u.UnnamedIdx) + "}", nil
	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderOperatorName(op *OperatorNameNode) (string, error) {
	return "operator" + operatorSpacing(op.token()), nil
}

// operatorSpacing adds a separating space between "operator" and an
// alphabetic token such as "new"/"delete" ("operator new"); symbolic
// tokens, including "()" and "[]", follow "operator" directly
// ("operator+", "operator()").
func operatorSpacing(token string) string {
	if token == "()" || token == "[]" {
		return token
	}
	if len(token) > 0 && isAsciiAlpha(token[0]) {
		return " " + token
	}
	return token
}

func isAsciiAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (r *Renderer) renderLocalName(l *LocalName) (string, error) {
	enc, err := r.renderEncoding(l.Encoding)
	if err != nil {
		return "", err
	}
	switch l.Kind {
	case LocalString:
		return enc + "::string literal", nil
	case LocalDefaultArg:
		name, err := r.renderName(l.Name)
		if err != nil {
			return "", err
		}
		return enc + "::" + name, nil
	default:
		name, err := r.renderName(l.Name)
		if err != nil {
			return "", err
		}
		return enc + "::" + name, nil
	}
}

func (r *Renderer) renderTemplateArgList(args *TemplateArgs) (string, error) {
	if args == nil {
		return "", nil
	}
	parts := make([]string, 0, len(args.Args))
	for _, a := range args.Args {
		s, err := r.renderTemplateArg(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func (r *Renderer) renderTemplateArg(a TemplateArg) (string, error) {
	switch a.Kind {
	case TemplateArgType:
		return r.renderTypeFull(a.Type)
	case TemplateArgExpression:
		return r.renderExpressionString(a.Expression)
	case TemplateArgExprPrimary:
		return r.renderExprPrimary(a.ExprPrimary)
	case TemplateArgPack:
		parts := make([]string, 0, len(a.Pack))
		for _, p := range a.Pack {
			s, err := r.renderTemplateArg(p)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), nil
	default:
		return "", ErrUnexpectedText
	}
}

// resolveTemplateParam looks up a <template-param> against the innermost
// scope frame, guarding against a self-referential argument.
func (r *Renderer) resolveTemplateParam(tp *TemplateParam) (*TemplateArg, error) {
	args := r.scopes.currentTemplateArgs()
	if args == nil || tp.Index < 0 || tp.Index >= len(args.Args) {
		return nil, ErrBadTemplateArgReference
	}
	if err := r.pushGuard(args, tp.Index); err != nil {
		return nil, err
	}
	defer r.popGuard()
	return &args.Args[tp.Index], nil
}

func (r *Renderer) renderTemplateParamAsName(tp *TemplateParam) (string, error) {
	arg, err := r.resolveTemplateParam(tp)
	if err != nil {
		return "", err
	}
	if err := r.pushGuard(r.scopes.currentTemplateArgs(), tp.Index); err != nil {
		return "", err
	}
	defer r.popGuard()
	return r.renderTemplateArg(*arg)
}

// lastComponent returns the right-hand side of the last top-level "::" in
// a rendered qualified name, ignoring separators nested inside template
// argument lists or parameter lists.
func lastComponent(s string) string {
	depth := 0
	for i := len(s) - 1; i > 0; i-- {
		switch s[i] {
		case '>', ')':
			depth++
		case '<', '(':
			depth--
		case ':':
			if depth == 0 && s[i-1] == ':' {
				return s[i+1:]
			}
		}
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
