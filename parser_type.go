package demangle

// parseTypeHandle implements <type>. Every concrete alternative is parsed,
// inserted into the substitution store, and returned as a fresh
// back-reference handle; the <substitution> and <builtin-type>
// alternatives return an existing/inline handle instead, per spec.md §3.2.
//
// spec.md §4.C.2 rule 4 requires that a leading `S...` speculatively
// consumed as `<substitution>` (and, equivalently, a leading
// `<template-param>`) be "un-consumed" when followed by `I`, because that
// combination is really `<template-template-param> <template-args>`
// reusing the substitution/template-param syntax for the template-template
// element. Rather than literally rewinding, this parser recognizes the
// trailing `I` before committing to the plain interpretation, which has
// the same effect without a second cursor copy.
func (p *Parser) parseTypeHandle(c cursor) (Handle, cursor, error) {
	cv, afterCV := parseCvQualifiers(c)
	if !cv.none() {
		if peekIsFunctionTypeStart(afterCV) {
			ft, tail, err := p.parseFunctionTypeBody(cv, afterCV)
			if err == nil {
				return p.store.insertType(&Type{Kind: TypeFunction, Function: ft}), tail, nil
			}
		}
		inner, tail, err := p.parseTypeHandle(afterCV)
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeQualified, Qualified: cv, Inner: inner}), tail, nil
	}

	b, ok := c.peek()
	if !ok {
		return Handle{}, cursor{}, ErrUnexpectedEnd
	}

	switch b {
	case 'F':
		ft, tail, err := p.parseFunctionTypeBody(CvQualifiers{}, c)
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeFunction, Function: ft}), tail, nil

	case 'A':
		at, tail, err := p.parseArrayType(c)
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeArray, Array: at}), tail, nil

	case 'M':
		pm, tail, err := p.parsePointerToMemberType(c)
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypePointerToMember, PointerToMember: pm}), tail, nil

	case 'T':
		tp, tail, err := p.parseTemplateParam(c)
		if err == nil {
			if next, ok := tail.peek(); ok && next == 'I' {
				h := p.store.insertTemplateTemplateParam(&TemplateTemplateParam{Param: tp})
				if args, tail2, err := p.parseTemplateArgs(tail); err == nil {
					return p.store.insertType(&Type{Kind: TypeTemplateTemplate, TemplateTemplateHandle: h, TemplateTemplateArgs: args}), tail2, nil
				}
			}
			return p.store.insertType(&Type{Kind: TypeTemplateParam, TemplateParam: tp}), tail, nil
		}

	case 'P':
		inner, tail, err := p.parseTypeHandle(c.rangeFrom(1))
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypePointer, Inner: inner}), tail, nil

	case 'R':
		inner, tail, err := p.parseTypeHandle(c.rangeFrom(1))
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeLvalueRef, Inner: inner}), tail, nil

	case 'O':
		inner, tail, err := p.parseTypeHandle(c.rangeFrom(1))
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeRvalueRef, Inner: inner}), tail, nil

	case 'C':
		inner, tail, err := p.parseTypeHandle(c.rangeFrom(1))
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeComplex, Inner: inner}), tail, nil

	case 'G':
		inner, tail, err := p.parseTypeHandle(c.rangeFrom(1))
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeImaginary, Inner: inner}), tail, nil

	case 'U':
		rest := c.rangeFrom(1)
		name, rest, err := p.parseSourceName(rest)
		if err != nil {
			return Handle{}, cursor{}, err
		}
		var args *TemplateArgs
		if nb, ok := rest.peek(); ok && nb == 'I' {
			a, tail, err := p.parseTemplateArgs(rest)
			if err != nil {
				return Handle{}, cursor{}, err
			}
			args, rest = a, tail
		}
		inner, rest, err := p.parseTypeHandle(rest)
		if err != nil {
			return Handle{}, cursor{}, err
		}
		return p.store.insertType(&Type{Kind: TypeVendorExtension, VendorName: name, VendorArgs: args, Inner: inner}), rest, nil

	case 'D':
		if h, tail, err := p.parseStandardBuiltinD(c); err == nil {
			return h, tail, nil
		}
		if tail, err := consumeLit(c, "Dp"); err == nil {
			inner, tail2, err := p.parseTypeHandle(tail)
			if err != nil {
				return Handle{}, cursor{}, err
			}
			return p.store.insertType(&Type{Kind: TypePackExpansion, Inner: inner}), tail2, nil
		}
		dt, tail, err := p.parseDecltype(c)
		if err == nil {
			return p.store.insertType(&Type{Kind: TypeDecltype, Decltype: dt}), tail, nil
		}

	case 'S':
		h, tail, err := p.parseSubstitution(c)
		if err == nil {
			if next, ok := tail.peek(); ok && next == 'I' {
				if args, tail2, err := p.parseTemplateArgs(tail); err == nil {
					return p.store.insertType(&Type{Kind: TypeTemplateTemplate, TemplateTemplateHandle: h, TemplateTemplateArgs: args}), tail2, nil
				}
			}
			return h, tail, nil
		}
	}

	if bt, tail, err := p.parseBuiltinType(c); err == nil {
		return builtinHandle(bt), tail, nil
	}

	cet, tail, err := p.parseClassEnumType(c)
	if err == nil {
		return p.store.insertType(&Type{Kind: TypeClassEnum, ClassEnum: cet}), tail, nil
	}

	if c.isEmpty() {
		return Handle{}, cursor{}, ErrUnexpectedEnd
	}
	return Handle{}, cursor{}, ErrUnexpectedText
}

func peekIsFunctionTypeStart(c cursor) bool {
	rest := c
	if head, _, ok := rest.trySplitAt(2); ok && string(head) == "Dx" {
		rest = rest.rangeFrom(2)
	}
	b, ok := rest.peek()
	return ok && b == 'F'
}

func (p *Parser) parseFunctionTypeBody(cv CvQualifiers, c cursor) (*FunctionType, cursor, error) {
	rest := c
	transactionSafe := false
	if head, _, ok := rest.trySplitAt(2); ok && string(head) == "Dx" {
		transactionSafe = true
		rest = rest.rangeFrom(2)
	}
	rest, err := rest.consumeByte('F')
	if err != nil {
		return nil, cursor{}, err
	}
	externC := false
	if next, err := rest.consumeByte('Y'); err == nil {
		externC = true
		rest = next
	}
	bft, rest, err := p.parseBareFunctionType(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	ref, rest := parseRefQualifier(rest)
	rest, err = rest.consumeByte('E')
	if err != nil {
		return nil, cursor{}, err
	}
	return &FunctionType{CV: cv, Ref: ref, TransactionSafe: transactionSafe, ExternC: externC, Params: bft}, rest, nil
}

// parseBareFunctionType implements <bare-function-type>: one or more
// parameter type handles, greedily consumed until the next byte fails to
// start a <type> (which, inside `F...E`, is the closing `E`; at the
// top level of a function <encoding>, it is simply end-of-input or
// whatever follows the function's parameter list).
func (p *Parser) parseBareFunctionType(c cursor) (*BareFunctionType, cursor, error) {
	var params []Handle
	rest := c
	for {
		h, tail, err := p.parseTypeHandle(rest)
		if err != nil {
			break
		}
		params = append(params, h)
		rest = tail
	}
	if len(params) == 0 {
		if rest.isEmpty() {
			return nil, cursor{}, ErrUnexpectedEnd
		}
		return nil, cursor{}, ErrUnexpectedText
	}
	return &BareFunctionType{Params: params}, rest, nil
}

func (p *Parser) parseArrayType(c cursor) (*ArrayType, cursor, error) {
	rest, err := c.consumeByte('A')
	if err != nil {
		return nil, cursor{}, err
	}
	var at ArrayType
	if n, tail, err := parseDecimalNumber(rest); err == nil {
		at.HasNumber = true
		at.Number = n
		rest = tail
	} else if b, ok := rest.peek(); ok && b != '_' {
		expr, tail, err := p.parseExpression(rest)
		if err != nil {
			return nil, cursor{}, err
		}
		at.Dimension = expr
		rest = tail
	}
	rest, err = rest.consumeByte('_')
	if err != nil {
		return nil, cursor{}, err
	}
	elem, rest, err := p.parseTypeHandle(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	at.ElementType = elem
	return &at, rest, nil
}

func (p *Parser) parsePointerToMemberType(c cursor) (*PointerToMemberType, cursor, error) {
	rest, err := c.consumeByte('M')
	if err != nil {
		return nil, cursor{}, err
	}
	cls, rest, err := p.parseTypeHandle(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	mem, rest, err := p.parseTypeHandle(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	return &PointerToMemberType{ClassType: cls, MemberType: mem}, rest, nil
}

func (p *Parser) parseClassEnumType(c cursor) (*ClassEnumType, cursor, error) {
	elaboration := ElaborationNone
	rest := c
	if head, _, ok := c.trySplitAt(2); ok {
		switch string(head) {
		case "Ts":
			elaboration = ElaborationStruct
			rest = c.rangeFrom(2)
		case "Tu":
			elaboration = ElaborationUnion
			rest = c.rangeFrom(2)
		case "Te":
			elaboration = ElaborationEnum
			rest = c.rangeFrom(2)
		}
	}
	name, rest, err := p.parseName(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	return &ClassEnumType{Elaboration: elaboration, QName: name}, rest, nil
}

func (p *Parser) parseBuiltinType(c cursor) (*BuiltinType, cursor, error) {
	if head, _, ok := c.trySplitAt(2); ok {
		if bt, known := standardBuiltinByCode[string(head)]; known {
			return &BuiltinType{Kind: BuiltinStandard, Standard: bt}, c.rangeFrom(2), nil
		}
	}
	if head, _, ok := c.trySplitAt(1); ok {
		if bt, known := standardBuiltinByCode[string(head)]; known {
			return &BuiltinType{Kind: BuiltinStandard, Standard: bt}, c.rangeFrom(1), nil
		}
	}
	if tail, err := c.consumeByte('u'); err == nil {
		sn, tail2, err := p.parseSourceName(tail)
		if err != nil {
			return nil, cursor{}, err
		}
		return &BuiltinType{Kind: BuiltinExtension, Extension: sn}, tail2, nil
	}
	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseStandardBuiltinD parses only the two-letter 'D'-prefixed standard
// builtin codes (Dd/De/Df/Dh/Di/Ds/Da/Dc/Dn), returning a builtin Handle
// directly without touching the store.
func (p *Parser) parseStandardBuiltinD(c cursor) (Handle, cursor, error) {
	head, _, ok := c.trySplitAt(2)
	if !ok {
		return Handle{}, cursor{}, ErrUnexpectedEnd
	}
	bt, known := standardBuiltinByCode[string(head)]
	if !known || head[0] != 'D' {
		return Handle{}, cursor{}, ErrUnexpectedText
	}
	return builtinHandle(&BuiltinType{Kind: BuiltinStandard, Standard: bt}), c.rangeFrom(2), nil
}

func (p *Parser) parseDecltype(c cursor) (*Decltype, cursor, error) {
	var rest cursor
	if tail, err := consumeLit(c, "Dt"); err == nil {
		rest = tail
	} else if tail, err := consumeLit(c, "DT"); err == nil {
		rest = tail
	} else {
		return nil, cursor{}, ErrUnexpectedText
	}
	expr, rest, err := p.parseExpression(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	rest, err = rest.consumeByte('E')
	if err != nil {
		return nil, cursor{}, err
	}
	return &Decltype{Expression: expr}, rest, nil
}
