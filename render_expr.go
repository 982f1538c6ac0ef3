package demangle

import "strings"

func (r *Renderer) renderExpressionString(e *Expression) (string, error) {
	switch e.Kind {
	case ExprUnary:
		sub, err := r.renderExpressionString(&e.Operands[0])
		if err != nil {
			return "", err
		}
		return e.Operator.token() + sub, nil

	case ExprBinary:
		left, err := r.renderExpressionString(&e.Operands[0])
		if err != nil {
			return "", err
		}
		right, err := r.renderExpressionString(&e.Operands[1])
		if err != nil {
			return "", err
		}
		return left + " " + e.Operator.token() + " " + right, nil

	case ExprTernary:
		a, err := r.renderExpressionString(&e.Operands[0])
		if err != nil {
			return "", err
		}
		b, err := r.renderExpressionString(&e.Operands[1])
		if err != nil {
			return "", err
		}
		c, err := r.renderExpressionString(&e.Operands[2])
		if err != nil {
			return "", err
		}
		return a + " ? " + b + " : " + c, nil

	case ExprPrefixInc:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "++" + sub, nil

	case ExprPrefixDec:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "--" + sub, nil

	case ExprCall:
		callee, err := r.renderExpressionString(e.Callee)
		if err != nil {
			return "", err
		}
		args, err := r.renderExpressionList(e.Args)
		if err != nil {
			return "", err
		}
		return callee + "(" + args + ")", nil

	case ExprConversion1:
		t, err := r.renderTypeFull(e.ConversionType)
		if err != nil {
			return "", err
		}
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "(" + t + ")(" + sub + ")", nil

	case ExprConversionMulti:
		t, err := r.renderTypeFull(e.ConversionType)
		if err != nil {
			return "", err
		}
		args, err := r.renderExpressionList(e.Args)
		if err != nil {
			return "", err
		}
		return t + "(" + args + ")", nil

	case ExprStaticCast, ExprDynamicCast, ExprConstCast, ExprReinterpretCast:
		return r.renderCast(e)

	case ExprTypeidType:
		t, err := r.renderTypeFull(e.ConversionType)
		if err != nil {
			return "", err
		}
		return "typeid(" + t + ")", nil

	case ExprTypeidExpr:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "typeid(" + sub + ")", nil

	case ExprSizeofType:
		t, err := r.renderTypeFull(e.ConversionType)
		if err != nil {
			return "", err
		}
		return "sizeof(" + t + ")", nil

	case ExprSizeofExpr:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "sizeof(" + sub + ")", nil

	case ExprAlignofType:
		t, err := r.renderTypeFull(e.ConversionType)
		if err != nil {
			return "", err
		}
		return "alignof(" + t + ")", nil

	case ExprAlignofExpr:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "alignof(" + sub + ")", nil

	case ExprNoexcept:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "noexcept(" + sub + ")", nil

	case ExprDot:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		name, err := r.renderUnresolvedName(e.UnresolvedName)
		if err != nil {
			return "", err
		}
		return sub + "." + name, nil

	case ExprArrow:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		name, err := r.renderUnresolvedName(e.UnresolvedName)
		if err != nil {
			return "", err
		}
		return sub + "->" + name, nil

	case ExprDotStar:
		left, err := r.renderExpressionString(e.Left)
		if err != nil {
			return "", err
		}
		right, err := r.renderExpressionString(e.Right)
		if err != nil {
			return "", err
		}
		return left + ".*" + right, nil

	case ExprSizeofParamPack:
		if e.SizeofPackIsFunc {
			return "sizeof...(" + "parameter pack" + ")", nil
		}
		name, err := r.renderTemplateParamAsName(e.TemplateParam)
		if err != nil {
			return "", err
		}
		return "sizeof...(" + name + ")", nil

	case ExprSizeofCapturedTemplatePack:
		parts := make([]string, 0, len(e.Pack))
		for _, a := range e.Pack {
			s, err := r.renderTemplateArg(a)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "sizeof...(" + strings.Join(parts, ", ") + ")", nil

	case ExprPackExpansion:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return sub + "...", nil

	case ExprThrow:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return "throw " + sub, nil

	case ExprRethrow:
		return "throw", nil

	case ExprNew, ExprNewArray:
		return r.renderNew(e)

	case ExprDelete:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return newGlobalPrefix(e.Global) + "delete " + sub, nil

	case ExprDeleteArray:
		sub, err := r.renderExpressionString(e.Sub)
		if err != nil {
			return "", err
		}
		return newGlobalPrefix(e.Global) + "delete[] " + sub, nil

	case ExprInitList:
		args, err := r.renderExpressionList(e.Args)
		if err != nil {
			return "", err
		}
		return "{" + args + "}", nil

	case ExprPrimaryLiteral:
		return r.renderExprPrimary(e.Literal)

	case ExprTemplateParamRef:
		return r.renderTemplateParamAsName(e.TemplateParam)

	case ExprFunctionParamRef:
		return r.renderFunctionParamRef(e.FunctionParam)

	case ExprUnresolvedName:
		return r.renderUnresolvedName(e.UnresolvedName)

	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderExpressionList(exprs []Expression) (string, error) {
	parts := make([]string, 0, len(exprs))
	for i := range exprs {
		s, err := r.renderExpressionString(&exprs[i])
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

func (r *Renderer) renderCast(e *Expression) (string, error) {
	var keyword string
	switch e.Kind {
	case ExprStaticCast:
		keyword = "static_cast"
	case ExprDynamicCast:
		keyword = "dynamic_cast"
	case ExprConstCast:
		keyword = "const_cast"
	case ExprReinterpretCast:
		keyword = "reinterpret_cast"
	}
	t, err := r.renderTypeFull(e.ConversionType)
	if err != nil {
		return "", err
	}
	sub, err := r.renderExpressionString(e.Sub)
	if err != nil {
		return "", err
	}
	return keyword + "<" + t + ">(" + sub + ")", nil
}

func newGlobalPrefix(global bool) string {
	if global {
		return "::"
	}
	return ""
}

func (r *Renderer) renderNew(e *Expression) (string, error) {
	keyword := "new"
	if e.Kind == ExprNewArray {
		keyword = "new[]"
	}
	var b strings.Builder
	b.WriteString(newGlobalPrefix(e.Global))
	b.WriteString(keyword)
	if len(e.Args) > 0 {
		args, err := r.renderExpressionList(e.Args)
		if err != nil {
			return "", err
		}
		b.WriteByte('(')
		b.WriteString(args)
		b.WriteByte(')')
	}
	b.WriteByte(' ')
	t, err := r.renderTypeFull(e.NewType)
	if err != nil {
		return "", err
	}
	b.WriteString(t)
	if e.HasInit {
		init, err := r.renderExpressionList(e.NewInit)
		if err != nil {
			return "", err
		}
		b.WriteByte('(')
		b.WriteString(init)
		b.WriteByte(')')
	}
	return b.String(), nil
}

func (r *Renderer) renderFunctionParamRef(fp *FunctionParamRef) (string, error) {
	if fp.IsThis {
		return "this", nil
	}
	params := r.scopes.currentParams()
	if fp.Level != 0 || params == nil || fp.Number < 0 || fp.Number >= len(params) {
		return "", ErrBadFunctionArgReference
	}
	return "parm#" + itoa(fp.Number+1), nil
}

// renderExprPrimary implements <expr-primary>: nullptr always prints
// literally; an address-of-entity literal re-renders the inner mangled
// name; everything else echoes the recorded byte range verbatim, with a
// leading '-' translated from the grammar's 'n' sign marker.
func (r *Renderer) renderExprPrimary(ep *ExprPrimary) (string, error) {
	if ep.IsExternal {
		return r.renderMangledName(ep.External)
	}
	if ep.IsNullptr {
		return "nullptr", nil
	}
	raw := string(r.input[ep.ValueStart:ep.ValueEnd])
	t, err := r.store.getType(ep.Type)
	if err != nil {
		return "", err
	}
	text := raw
	if strings.HasPrefix(text, "n") {
		text = "-" + text[1:]
	}
	if t.Kind == TypeBuiltin && t.Builtin != nil && t.Builtin.Kind == BuiltinStandard && t.Builtin.Standard == BTBool {
		switch raw {
		case "0":
			return "false", nil
		case "1":
			return "true", nil
		}
	}
	return text, nil
}

func (r *Renderer) renderUnresolvedName(un *UnresolvedName) (string, error) {
	var b strings.Builder
	if un.Global {
		b.WriteString("::")
	}
	if un.HasQualifier {
		q, err := r.renderUnresolvedTypeHandle(un.Qualifier)
		if err != nil {
			return "", err
		}
		b.WriteString(q)
		if un.QualifierArgs != nil {
			args, err := r.renderTemplateArgList(un.QualifierArgs)
			if err != nil {
				return "", err
			}
			b.WriteString("<")
			b.WriteString(args)
			b.WriteString(">")
		}
		b.WriteString("::")
	}
	base, err := r.renderBaseUnresolvedName(un.Base)
	if err != nil {
		return "", err
	}
	b.WriteString(base)
	return b.String(), nil
}

func (r *Renderer) renderUnresolvedTypeHandle(h Handle) (string, error) {
	if h.IsWellKnown() {
		return wellKnownName(h.WellKnown()), nil
	}
	if h.IsBuiltin() {
		return r.renderTypeFull(h)
	}
	entry, ok := r.store.get(h.Index())
	if !ok {
		return "", ErrBadBackReference
	}
	if entry.kind != subKindUnresolvedType {
		return r.renderTypeFull(h)
	}
	ut := entry.unresolvedType
	switch ut.Kind {
	case UnresolvedTypeTemplateParam:
		name, err := r.renderTemplateParamAsName(ut.TemplateParam)
		if err != nil {
			return "", err
		}
		if ut.TemplateArgs != nil {
			args, err := r.renderTemplateArgList(ut.TemplateArgs)
			if err != nil {
				return "", err
			}
			return name + "<" + args + ">", nil
		}
		return name, nil
	case UnresolvedTypeDecltype:
		expr, err := r.renderExpressionString(ut.Decltype.Expression)
		if err != nil {
			return "", err
		}
		return "decltype(" + expr + ")", nil
	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderBaseUnresolvedName(b *BaseUnresolvedName) (string, error) {
	switch b.Kind {
	case BaseUnresolvedSimpleId:
		return r.renderSimpleId(b.SimpleId)
	case BaseUnresolvedDestructor:
		return r.renderDestructorName(b.Destructor)
	case BaseUnresolvedOperator:
		name, err := r.renderOperatorName(b.Operator)
		if err != nil {
			return "", err
		}
		if b.OpArgs != nil {
			args, err := r.renderTemplateArgList(b.OpArgs)
			if err != nil {
				return "", err
			}
			return name + "<" + args + ">", nil
		}
		return name, nil
	default:
		return "", ErrUnexpectedText
	}
}

func (r *Renderer) renderSimpleId(s *SimpleId) (string, error) {
	name := string(s.Name.bytes(r.input))
	if s.Args == nil {
		return name, nil
	}
	args, err := r.renderTemplateArgList(s.Args)
	if err != nil {
		return "", err
	}
	return name + "<" + args + ">", nil
}

func (r *Renderer) renderDestructorName(d *DestructorName) (string, error) {
	switch d.Kind {
	case DestructorUnresolvedType:
		name, err := r.renderUnresolvedTypeHandle(d.Unresolved)
		if err != nil {
			return "", err
		}
		return "~" + name, nil
	case DestructorSimpleId:
		name, err := r.renderSimpleId(d.SimpleId)
		if err != nil {
			return "", err
		}
		return "~" + name, nil
	default:
		return "", ErrUnexpectedText
	}
}
