package demangle

// parseTemplateArgs implements <template-args>: I <template-arg>+ E.
func (p *Parser) parseTemplateArgs(c cursor) (*TemplateArgs, cursor, error) {
	rest, err := c.consumeByte('I')
	if err != nil {
		return nil, cursor{}, err
	}
	var args []TemplateArg
	for {
		arg, tail, err := p.parseTemplateArg(rest)
		if err != nil {
			break
		}
		args = append(args, arg)
		rest = tail
	}
	if len(args) == 0 {
		if rest.isEmpty() {
			return nil, cursor{}, ErrUnexpectedEnd
		}
		return nil, cursor{}, ErrUnexpectedText
	}
	rest, err = rest.consumeByte('E')
	if err != nil {
		return nil, cursor{}, err
	}
	return &TemplateArgs{Args: args}, rest, nil
}

// parseTemplateArg implements <template-arg>: <type> | <expr-primary> |
// <expression> | J <template-arg>* E (an argument pack).
func (p *Parser) parseTemplateArg(c cursor) (TemplateArg, cursor, error) {
	if b, ok := c.peek(); ok && b == 'J' {
		rest := c.rangeFrom(1)
		var pack []TemplateArg
		for {
			a, tail, err := p.parseTemplateArg(rest)
			if err != nil {
				break
			}
			pack = append(pack, a)
			rest = tail
		}
		rest, err := rest.consumeByte('E')
		if err != nil {
			return TemplateArg{}, cursor{}, err
		}
		return TemplateArg{Kind: TemplateArgPack, Pack: pack}, rest, nil
	}

	if b, ok := c.peek(); ok && b == 'L' {
		if ep, tail, err := p.parseExprPrimary(c); err == nil {
			return TemplateArg{Kind: TemplateArgExprPrimary, ExprPrimary: ep}, tail, nil
		}
	}

	if h, tail, err := p.parseTypeHandle(c); err == nil {
		return TemplateArg{Kind: TemplateArgType, Type: h}, tail, nil
	}

	if expr, tail, err := p.parseExpression(c); err == nil {
		return TemplateArg{Kind: TemplateArgExpression, Expression: expr}, tail, nil
	}

	if c.isEmpty() {
		return TemplateArg{}, cursor{}, ErrUnexpectedEnd
	}
	return TemplateArg{}, cursor{}, ErrUnexpectedText
}
