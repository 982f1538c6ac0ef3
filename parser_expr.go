package demangle

// This file implements <expression>, <expr-primary>, and the
// <unresolved-name> family it depends on. Per spec.md §4.C.2 rule 6, the
// direct op-code forms (pp_, cl, cv, the cast keywords, ti/te/st/sz/at/az,
// nx, dt/pt/ds, sZ/sP/sp, tw/tr, the gs-prefixed new/delete forms, il) are
// tried before falling back to the generic <operator-name>-driven
// unary/binary/ternary dispatch. Because every Itanium operator code has a
// fixed, unambiguous arity (unlike the "try ternary, then binary, then
// unary" phrasing used for operator-overload resolution in other
// contexts), that fallback collapses to a single table lookup per code.

// parseExpression implements <expression>.
func (p *Parser) parseExpression(c cursor) (*Expression, cursor, error) {
	if tail, err := consumeLit(c, "pp_"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprPrefixInc, Sub: sub}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "mm_"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprPrefixDec, Sub: sub}, tail2, nil
		}
	}

	if tail, err := consumeLit(c, "cl"); err == nil {
		var exprs []Expression
		rest := tail
		for {
			e, t, err := p.parseExpression(rest)
			if err != nil {
				break
			}
			exprs = append(exprs, *e)
			rest = t
		}
		if len(exprs) >= 1 {
			if after, err := rest.consumeByte('E'); err == nil {
				callee := exprs[0]
				return &Expression{Kind: ExprCall, Callee: &callee, Args: exprs[1:]}, after, nil
			}
		}
	}

	if tail, err := consumeLit(c, "cv"); err == nil {
		if typeH, tail2, err := p.parseTypeHandle(tail); err == nil {
			if next, err := tail2.consumeByte('_'); err == nil {
				var exprs []Expression
				rest := next
				for {
					e, t, err := p.parseExpression(rest)
					if err != nil {
						break
					}
					exprs = append(exprs, *e)
					rest = t
				}
				if after, err := rest.consumeByte('E'); err == nil {
					return &Expression{Kind: ExprConversionMulti, ConversionType: typeH, Args: exprs}, after, nil
				}
			}
			if sub, tail3, err := p.parseExpression(tail2); err == nil {
				return &Expression{Kind: ExprConversion1, ConversionType: typeH, Sub: sub}, tail3, nil
			}
		}
	}

	for _, cast := range []struct {
		lit  string
		kind ExprKind
	}{
		{"sc", ExprStaticCast},
		{"dc", ExprDynamicCast},
		{"cc", ExprConstCast},
		{"rc", ExprReinterpretCast},
	} {
		if tail, err := consumeLit(c, cast.lit); err == nil {
			if typeH, tail2, err := p.parseTypeHandle(tail); err == nil {
				if sub, tail3, err := p.parseExpression(tail2); err == nil {
					return &Expression{Kind: cast.kind, ConversionType: typeH, Sub: sub}, tail3, nil
				}
			}
		}
	}

	if tail, err := consumeLit(c, "ti"); err == nil {
		if typeH, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &Expression{Kind: ExprTypeidType, ConversionType: typeH}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "te"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprTypeidExpr, Sub: sub}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "st"); err == nil {
		if typeH, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &Expression{Kind: ExprSizeofType, ConversionType: typeH}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "sz"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprSizeofExpr, Sub: sub}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "at"); err == nil {
		if typeH, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &Expression{Kind: ExprAlignofType, ConversionType: typeH}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "az"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprAlignofExpr, Sub: sub}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "nx"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprNoexcept, Sub: sub}, tail2, nil
		}
	}

	if tail, err := consumeLit(c, "dt"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			if un, tail3, err := p.parseUnresolvedName(tail2); err == nil {
				return &Expression{Kind: ExprDot, Sub: sub, UnresolvedName: un}, tail3, nil
			}
		}
	}
	if tail, err := consumeLit(c, "pt"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			if un, tail3, err := p.parseUnresolvedName(tail2); err == nil {
				return &Expression{Kind: ExprArrow, Sub: sub, UnresolvedName: un}, tail3, nil
			}
		}
	}
	if tail, err := consumeLit(c, "ds"); err == nil {
		if left, tail2, err := p.parseExpression(tail); err == nil {
			if right, tail3, err := p.parseExpression(tail2); err == nil {
				return &Expression{Kind: ExprDotStar, Left: left, Right: right}, tail3, nil
			}
		}
	}

	if tail, err := consumeLit(c, "sZ"); err == nil {
		if b, ok := tail.peek(); ok && b == 'T' {
			if tp, tail2, err := p.parseTemplateParam(tail); err == nil {
				return &Expression{Kind: ExprSizeofParamPack, TemplateParam: tp}, tail2, nil
			}
		}
		if fp, tail2, err := p.parseFunctionParamRef(tail); err == nil {
			return &Expression{Kind: ExprSizeofParamPack, FunctionParam: fp, SizeofPackIsFunc: true}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "sP"); err == nil {
		var pack []TemplateArg
		rest := tail
		for {
			a, t, err := p.parseTemplateArg(rest)
			if err != nil {
				break
			}
			pack = append(pack, a)
			rest = t
		}
		if after, err := rest.consumeByte('E'); err == nil {
			return &Expression{Kind: ExprSizeofCapturedTemplatePack, Pack: pack}, after, nil
		}
	}
	if tail, err := consumeLit(c, "sp"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprPackExpansion, Sub: sub}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "tw"); err == nil {
		if sub, tail2, err := p.parseExpression(tail); err == nil {
			return &Expression{Kind: ExprThrow, Sub: sub}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "tr"); err == nil {
		return &Expression{Kind: ExprRethrow}, tail, nil
	}

	if expr, tail, err := p.parseNewOrDelete(c); err == nil {
		return expr, tail, nil
	}

	if tail, err := consumeLit(c, "il"); err == nil {
		var exprs []Expression
		rest := tail
		for {
			e, t, err := p.parseExpression(rest)
			if err != nil {
				break
			}
			exprs = append(exprs, *e)
			rest = t
		}
		if after, err := rest.consumeByte('E'); err == nil {
			return &Expression{Kind: ExprInitList, Args: exprs}, after, nil
		}
	}

	if b, ok := c.peek(); ok && b == 'L' {
		if ep, tail, err := p.parseExprPrimary(c); err == nil {
			return &Expression{Kind: ExprPrimaryLiteral, Literal: ep}, tail, nil
		}
	}

	if b, ok := c.peek(); ok && (b == 'f') {
		if fp, tail, err := p.parseFunctionParamRef(c); err == nil {
			return &Expression{Kind: ExprFunctionParamRef, FunctionParam: fp}, tail, nil
		}
	}

	if b, ok := c.peek(); ok && b == 'T' {
		if tp, tail, err := p.parseTemplateParam(c); err == nil {
			return &Expression{Kind: ExprTemplateParamRef, TemplateParam: tp}, tail, nil
		}
	}

	if op, tail, err := p.parseOperatorName(c); err == nil {
		arity := op.arity()
		operands := make([]Expression, 0, arity)
		rest := tail
		ok := true
		for i := 0; i < arity; i++ {
			e, t, err := p.parseExpression(rest)
			if err != nil {
				ok = false
				break
			}
			operands = append(operands, *e)
			rest = t
		}
		if ok {
			switch arity {
			case 3:
				return &Expression{Kind: ExprTernary, Operator: op, Operands: operands}, rest, nil
			case 2:
				return &Expression{Kind: ExprBinary, Operator: op, Operands: operands}, rest, nil
			case 1:
				return &Expression{Kind: ExprUnary, Operator: op, Operands: operands}, rest, nil
			}
		}
	}

	if un, tail, err := p.parseUnresolvedName(c); err == nil {
		return &Expression{Kind: ExprUnresolvedName, UnresolvedName: un}, tail, nil
	}

	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseNewOrDelete implements the [gs] nw/na/dl/da alternatives.
func (p *Parser) parseNewOrDelete(c cursor) (*Expression, cursor, error) {
	rest := c
	global := false
	if tail, err := consumeLit(rest, "gs"); err == nil {
		global = true
		rest = tail
	}

	for _, del := range []struct {
		lit  string
		kind ExprKind
	}{
		{"dl", ExprDelete},
		{"da", ExprDeleteArray},
	} {
		if tail, err := consumeLit(rest, del.lit); err == nil {
			if sub, tail2, err := p.parseExpression(tail); err == nil {
				return &Expression{Kind: del.kind, Global: global, Sub: sub}, tail2, nil
			}
		}
	}

	for _, nw := range []struct {
		lit  string
		kind ExprKind
	}{
		{"nw", ExprNew},
		{"na", ExprNewArray},
	} {
		tail, err := consumeLit(rest, nw.lit)
		if err != nil {
			continue
		}
		var placement []Expression
		cur := tail
		for {
			e, t, err := p.parseExpression(cur)
			if err != nil {
				break
			}
			placement = append(placement, *e)
			cur = t
		}
		cur, err = cur.consumeByte('_')
		if err != nil {
			continue
		}
		typeH, cur, err := p.parseTypeHandle(cur)
		if err != nil {
			continue
		}
		if after, err := cur.consumeByte('E'); err == nil {
			return &Expression{Kind: nw.kind, Global: global, Args: placement, NewType: typeH}, after, nil
		}
		if initTail, err := consumeLit(cur, "pi"); err == nil {
			var init []Expression
			irest := initTail
			for {
				e, t, err := p.parseExpression(irest)
				if err != nil {
					break
				}
				init = append(init, *e)
				irest = t
			}
			if after, err := irest.consumeByte('E'); err == nil {
				return &Expression{Kind: nw.kind, Global: global, Args: placement, NewType: typeH, NewInit: init, HasInit: true}, after, nil
			}
		}
	}

	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseFunctionParamRef implements <function-param>: fpT (this), fp [CV]
// [<number>] _, or fL <number> p [CV] [<number>] _.
func (p *Parser) parseFunctionParamRef(c cursor) (*FunctionParamRef, cursor, error) {
	if tail, err := consumeLit(c, "fpT"); err == nil {
		return &FunctionParamRef{IsThis: true}, tail, nil
	}
	if tail, err := consumeLit(c, "fp"); err == nil {
		cv, tail2 := parseCvQualifiers(tail)
		num := 0
		if n, tail3, err := parseDecimalNumber(tail2); err == nil {
			num = n
			tail2 = tail3
		}
		if after, err := tail2.consumeByte('_'); err == nil {
			return &FunctionParamRef{CV: cv, Level: 0, Number: num}, after, nil
		}
	}
	if tail, err := consumeLit(c, "fL"); err == nil {
		level, tail2, err := parseDecimalNumber(tail)
		if err == nil {
			if tail3, err := tail2.consumeByte('p'); err == nil {
				cv, tail4 := parseCvQualifiers(tail3)
				num := 0
				if n, tail5, err := parseDecimalNumber(tail4); err == nil {
					num = n
					tail4 = tail5
				}
				if after, err := tail4.consumeByte('_'); err == nil {
					return &FunctionParamRef{CV: cv, Level: level, Number: num}, after, nil
				}
			}
		}
	}
	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseExprPrimary implements <expr-primary>: L <type> <value> E,
// L <mangled-name> E, and the LDnE nullptr special case.
func (p *Parser) parseExprPrimary(c cursor) (*ExprPrimary, cursor, error) {
	rest, err := c.consumeByte('L')
	if err != nil {
		return nil, cursor{}, err
	}

	if typeH, tail, err := p.parseTypeHandle(rest); err == nil {
		isNullptr := false
		if t, errT := p.store.getType(typeH); errT == nil && t.Kind == TypeBuiltin &&
			t.Builtin != nil && t.Builtin.Kind == BuiltinStandard && t.Builtin.Standard == BTNullptr {
			isNullptr = true
		}
		valueStart := tail.index()
		scan := tail
		for {
			b, ok := scan.peek()
			if !ok {
				return nil, cursor{}, ErrUnexpectedEnd
			}
			if b == 'E' {
				break
			}
			scan = scan.rangeFrom(1)
		}
		valueEnd := scan.index()
		after, err := scan.consumeByte('E')
		if err != nil {
			return nil, cursor{}, err
		}
		return &ExprPrimary{Type: typeH, IsNullptr: isNullptr, ValueStart: valueStart, ValueEnd: valueEnd}, after, nil
	}

	mn, tail, err := p.parseMangledName(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	after, err := tail.consumeByte('E')
	if err != nil {
		return nil, cursor{}, err
	}
	return &ExprPrimary{IsExternal: true, External: mn}, after, nil
}

// parseSimpleId implements <simple-id>: <source-name> [<template-args>].
func (p *Parser) parseSimpleId(c cursor) (*SimpleId, cursor, error) {
	sn, tail, err := p.parseSourceName(c)
	if err != nil {
		return nil, cursor{}, err
	}
	var args *TemplateArgs
	if b, ok := tail.peek(); ok && b == 'I' {
		if a, tail2, err := p.parseTemplateArgs(tail); err == nil {
			args, tail = a, tail2
		}
	}
	return &SimpleId{Name: sn, Args: args}, tail, nil
}

// parseDestructorName implements <destructor-name>.
func (p *Parser) parseDestructorName(c cursor) (*DestructorName, cursor, error) {
	if h, tail, err := p.parseUnresolvedTypeHandle(c); err == nil {
		return &DestructorName{Kind: DestructorUnresolvedType, Unresolved: h}, tail, nil
	}
	sid, tail, err := p.parseSimpleId(c)
	if err != nil {
		return nil, cursor{}, err
	}
	return &DestructorName{Kind: DestructorSimpleId, SimpleId: sid}, tail, nil
}

// parseBaseUnresolvedName implements <base-unresolved-name>.
func (p *Parser) parseBaseUnresolvedName(c cursor) (*BaseUnresolvedName, cursor, error) {
	if tail, err := consumeLit(c, "on"); err == nil {
		if op, tail2, err := p.parseOperatorName(tail); err == nil {
			var args *TemplateArgs
			if b, ok := tail2.peek(); ok && b == 'I' {
				if a, tail3, err := p.parseTemplateArgs(tail2); err == nil {
					args, tail2 = a, tail3
				}
			}
			return &BaseUnresolvedName{Kind: BaseUnresolvedOperator, Operator: op, OpArgs: args}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "dn"); err == nil {
		if dn, tail2, err := p.parseDestructorName(tail); err == nil {
			return &BaseUnresolvedName{Kind: BaseUnresolvedDestructor, Destructor: dn}, tail2, nil
		}
	}
	sid, tail, err := p.parseSimpleId(c)
	if err != nil {
		return nil, cursor{}, err
	}
	return &BaseUnresolvedName{Kind: BaseUnresolvedSimpleId, SimpleId: sid}, tail, nil
}

// parseUnresolvedTypeHandle implements <unresolved-type>, substitutable per
// spec.md §3.2.
func (p *Parser) parseUnresolvedTypeHandle(c cursor) (Handle, cursor, error) {
	if b, ok := c.peek(); ok && b == 'S' {
		if h, tail, err := p.parseSubstitution(c); err == nil {
			return h, tail, nil
		}
	}
	if peekIsDecltypeStart(c) {
		if dt, tail, err := p.parseDecltype(c); err == nil {
			h := p.store.insertUnresolvedType(&UnresolvedType{Kind: UnresolvedTypeDecltype, Decltype: dt})
			return h, tail, nil
		}
	}
	if tp, tail, err := p.parseTemplateParam(c); err == nil {
		var args *TemplateArgs
		if b, ok := tail.peek(); ok && b == 'I' {
			if a, tail2, err := p.parseTemplateArgs(tail); err == nil {
				args, tail = a, tail2
			}
		}
		h := p.store.insertUnresolvedType(&UnresolvedType{Kind: UnresolvedTypeTemplateParam, TemplateParam: tp, TemplateArgs: args})
		return h, tail, nil
	}
	if c.isEmpty() {
		return Handle{}, cursor{}, ErrUnexpectedEnd
	}
	return Handle{}, cursor{}, ErrUnexpectedText
}

// parseUnresolvedName implements <unresolved-name>. Only the single-level
// qualifier forms are supported; see the UnresolvedName doc comment.
func (p *Parser) parseUnresolvedName(c cursor) (*UnresolvedName, cursor, error) {
	rest := c
	global := false
	if tail, err := consumeLit(rest, "gs"); err == nil {
		global = true
		rest = tail
	}

	if tail, err := consumeLit(rest, "sr"); err == nil {
		if qh, tail2, err := p.parseUnresolvedTypeHandle(tail); err == nil {
			var qargs *TemplateArgs
			if b, ok := tail2.peek(); ok && b == 'I' {
				if a, tail3, err := p.parseTemplateArgs(tail2); err == nil {
					qargs, tail2 = a, tail3
				}
			}
			if base, tail3, err := p.parseBaseUnresolvedName(tail2); err == nil {
				return &UnresolvedName{Global: global, Qualifier: qh, HasQualifier: true, QualifierArgs: qargs, Base: base}, tail3, nil
			}
		}
	}

	base, tail, err := p.parseBaseUnresolvedName(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	return &UnresolvedName{Global: global, Base: base}, tail, nil
}
