package demangle

import "strings"

// renderTypeFull renders a type as a standalone string (no declarator name
// threaded through it): when the suffix is non-empty, the prefix and suffix
// halves are joined with a space unless the prefix already ends in a space,
// '*' or '&' (see ensureSpace).
func (r *Renderer) renderTypeFull(h Handle) (string, error) {
	prefix, suffix, err := r.renderTypeParts(h)
	if err != nil {
		return "", err
	}
	if suffix == "" {
		return prefix, nil
	}
	return ensureSpace(prefix) + suffix, nil
}

// renderTypeParts implements the inner-item-threading renderer of
// spec.md §4.D.2: every <type> renders as a (prefix, suffix) pair that a
// caller composes around a declarator name, so that "pointer to function
// returning int" comes out as "int (*)()" rather than "int* ()".
// A bare renderTypeFull call simply concatenates the two halves.
func (r *Renderer) renderTypeParts(h Handle) (string, string, error) {
	t, err := r.store.getType(h)
	if err != nil {
		return "", "", err
	}

	switch t.Kind {
	case TypeBuiltin:
		return r.renderBuiltin(t.Builtin), "", nil

	case TypeClassEnum:
		s, err := r.renderClassEnum(t.ClassEnum)
		return s, "", err

	case TypeQualified:
		innerPrefix, innerSuffix, err := r.renderTypeParts(t.Inner)
		if err != nil {
			return "", "", err
		}
		return innerPrefix + qualifierSuffix(t.Qualified), innerSuffix, nil

	case TypePointer, TypeLvalueRef, TypeRvalueRef:
		return r.renderPointerLike(t)

	case TypeComplex:
		innerPrefix, innerSuffix, err := r.renderTypeParts(t.Inner)
		if err != nil {
			return "", "", err
		}
		return "_Complex " + innerPrefix, innerSuffix, nil

	case TypeImaginary:
		innerPrefix, innerSuffix, err := r.renderTypeParts(t.Inner)
		if err != nil {
			return "", "", err
		}
		return "_Imaginary " + innerPrefix, innerSuffix, nil

	case TypeArray:
		return r.renderArray(t.Array)

	case TypeFunction:
		return r.renderFunctionType(t.Function)

	case TypePointerToMember:
		return r.renderPointerToMember(t.PointerToMember)

	case TypeTemplateParam:
		arg, err := r.resolveTemplateParam(t.TemplateParam)
		if err != nil {
			return "", "", err
		}
		if arg.Kind != TemplateArgType {
			return "", "", ErrBadTemplateArgReference
		}
		if err := r.pushGuard(r.scopes.currentTemplateArgs(), t.TemplateParam.Index); err != nil {
			return "", "", err
		}
		defer r.popGuard()
		return r.renderTypeParts(arg.Type)

	case TypeTemplateTemplate:
		s, err := r.renderTemplateTemplate(t.TemplateTemplateHandle, t.TemplateTemplateArgs)
		return s, "", err

	case TypeDecltype:
		expr, err := r.renderExpressionString(t.Decltype.Expression)
		if err != nil {
			return "", "", err
		}
		return "decltype(" + expr + ")", "", nil

	case TypeVendorExtension:
		name := string(t.VendorName.bytes(r.input))
		if t.VendorArgs != nil {
			args, err := r.renderTemplateArgList(t.VendorArgs)
			if err != nil {
				return "", "", err
			}
			name += "<" + args + ">"
		}
		return name, "", nil

	case TypePackExpansion:
		innerPrefix, innerSuffix, err := r.renderTypeParts(t.Inner)
		if err != nil {
			return "", "", err
		}
		return innerPrefix + "...", innerSuffix, nil

	default:
		return "", "", ErrUnexpectedText
	}
}

func (r *Renderer) renderBuiltin(b *BuiltinType) string {
	if b.Kind == BuiltinExtension {
		return string(b.Extension.bytes(r.input))
	}
	return b.Standard.String()
}

func (r *Renderer) renderClassEnum(c *ClassEnumType) (string, error) {
	var name string
	if c.QName != nil {
		n, err := r.renderName(c.QName)
		if err != nil {
			return "", err
		}
		name = n
	} else {
		name = c.Name
	}
	switch c.Elaboration {
	case ElaborationStruct:
		return "struct " + name, nil
	case ElaborationUnion:
		return "union " + name, nil
	case ElaborationEnum:
		return "enum " + name, nil
	default:
		return name, nil
	}
}

// isParenthesizedKind reports whether a declarator wrapping this type's
// Kind needs parens around the "*"/"&"/"&&" token, i.e. the inner type
// already carries its own trailing suffix ("(params)" or "[n]").
func isParenthesizedKind(k TypeKind) bool {
	return k == TypeFunction || k == TypeArray
}

func (r *Renderer) renderPointerLike(t *Type) (string, string, error) {
	symbol := "*"
	switch t.Kind {
	case TypeLvalueRef:
		symbol = "&"
	case TypeRvalueRef:
		symbol = "&&"
	}

	inner, err := r.store.getType(t.Inner)
	if err != nil {
		return "", "", err
	}
	innerPrefix, innerSuffix, err := r.renderTypeParts(t.Inner)
	if err != nil {
		return "", "", err
	}

	if isParenthesizedKind(inner.Kind) {
		return ensureSpace(innerPrefix) + "(" + symbol, ")" + innerSuffix, nil
	}
	return innerPrefix + symbol, innerSuffix, nil
}

func (r *Renderer) renderArray(a *ArrayType) (string, string, error) {
	elemPrefix, elemSuffix, err := r.renderTypeParts(a.ElementType)
	if err != nil {
		return "", "", err
	}
	dim := ""
	switch {
	case a.HasNumber:
		dim = itoa(a.Number)
	case a.Dimension != nil:
		d, err := r.renderExpressionString(a.Dimension)
		if err != nil {
			return "", "", err
		}
		dim = d
	}
	return elemPrefix, "[" + dim + "]" + elemSuffix, nil
}

func (r *Renderer) renderFunctionType(f *FunctionType) (string, string, error) {
	if len(f.Params.Params) == 0 {
		return "", "", ErrUnexpectedText
	}
	retPrefix, retSuffix, err := r.renderTypeParts(f.Params.Params[0])
	if err != nil {
		return "", "", err
	}
	paramsStr, err := r.renderParamList(f.Params.Params[1:])
	if err != nil {
		return "", "", err
	}
	suffix := "(" + paramsStr + ")" + qualifierSuffix(f.CV) + refQualifierSuffix(f.Ref) + retSuffix
	return retPrefix, suffix, nil
}

func (r *Renderer) renderPointerToMember(pm *PointerToMemberType) (string, string, error) {
	classStr, err := r.renderTypeFull(pm.ClassType)
	if err != nil {
		return "", "", err
	}
	member, err := r.store.getType(pm.MemberType)
	if err != nil {
		return "", "", err
	}
	if member.Kind == TypeFunction {
		if len(member.Function.Params.Params) == 0 {
			return "", "", ErrUnexpectedText
		}
		retPrefix, retSuffix, err := r.renderTypeParts(member.Function.Params.Params[0])
		if err != nil {
			return "", "", err
		}
		paramsStr, err := r.renderParamList(member.Function.Params.Params[1:])
		if err != nil {
			return "", "", err
		}
		prefix := ensureSpace(retPrefix) + "(" + classStr + "::*"
		suffix := ")(" + paramsStr + ")" + qualifierSuffix(member.Function.CV) + refQualifierSuffix(member.Function.Ref) + retSuffix
		return prefix, suffix, nil
	}
	memPrefix, memSuffix, err := r.renderTypeParts(pm.MemberType)
	if err != nil {
		return "", "", err
	}
	return ensureSpace(memPrefix) + classStr + "::*", memSuffix, nil
}

// renderTemplateTemplate renders `<template-template-param> <template-args>`
// (or its substitution-backed equivalent): whatever the handle's
// underlying substitutable resolves to, followed by the argument list.
func (r *Renderer) renderTemplateTemplate(h Handle, args *TemplateArgs) (string, error) {
	name, err := r.renderTemplateTemplateName(h)
	if err != nil {
		return "", err
	}
	argStr, err := r.renderTemplateArgList(args)
	if err != nil {
		return "", err
	}
	return name + "<" + argStr + ">", nil
}

func (r *Renderer) renderTemplateTemplateName(h Handle) (string, error) {
	if h.IsWellKnown() {
		return wellKnownName(h.WellKnown()), nil
	}
	entry, ok := r.store.get(h.Index())
	if !ok {
		return "", ErrBadBackReference
	}
	switch entry.kind {
	case subKindTemplateTemplateParam:
		return r.renderTemplateParamAsName(entry.templateTemplate.Param)
	case subKindUnscopedTemplateName:
		return r.renderName(entry.unscopedTemplate.Name)
	case subKindType:
		s, err := r.renderTypeFull(h)
		return strings.TrimSuffix(s, " "), err
	case subKindPrefix:
		return r.renderPrefixChain(h)
	default:
		return "", ErrBadBackReference
	}
}
