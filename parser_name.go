package demangle

// parseName implements <name> with the ordering prescribed by spec.md
// §4.C.2 rule 3: NestedName, then "St <unqualified-name>", then
// UnscopedName (promoting to UnscopedTemplate on a trailing 'I'), then a
// substitution-backed UnscopedTemplateNameHandle + TemplateArgs, then
// LocalName.
func (p *Parser) parseName(c cursor) (*Name, cursor, error) {
	if b, ok := c.peek(); ok && b == 'N' {
		if nn, tail, err := p.parseNestedName(c); err == nil {
			return &Name{Kind: NameNested, Nested: nn}, tail, nil
		}
	}

	if tail, err := consumeLit(c, "St"); err == nil {
		if uq, tail2, err := p.parseUnqualifiedName(tail); err == nil {
			if b, ok := tail2.peek(); ok && b == 'I' {
				h := p.store.insertUnscopedTemplateName(&UnscopedTemplateName{
					Name: &Name{Kind: NameStd, Std: uq},
				})
				if args, tail3, err := p.parseTemplateArgs(tail2); err == nil {
					return &Name{Kind: NameUnscopedTemplate, Template: h, Args: args}, tail3, nil
				}
			}
			return &Name{Kind: NameStd, Std: uq}, tail2, nil
		}
	}

	if uq, tail, err := p.parseUnqualifiedName(c); err == nil {
		if b, ok := tail.peek(); ok && b == 'I' {
			h := p.store.insertUnscopedTemplateName(&UnscopedTemplateName{
				Name: &Name{Kind: NameUnscoped, Unscoped: uq},
			})
			if args, tail2, err := p.parseTemplateArgs(tail); err == nil {
				return &Name{Kind: NameUnscopedTemplate, Template: h, Args: args}, tail2, nil
			}
		}
		return &Name{Kind: NameUnscoped, Unscoped: uq}, tail, nil
	}

	if h, tail, err := p.parseUnscopedTemplateNameHandle(c); err == nil {
		if args, tail2, err := p.parseTemplateArgs(tail); err == nil {
			return &Name{Kind: NameUnscopedTemplate, Template: h, Args: args}, tail2, nil
		}
	}

	if local, tail, err := p.parseLocalName(c); err == nil {
		return &Name{Kind: NameLocal, Local: local}, tail, nil
	}

	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseUnscopedTemplateNameHandle parses the <substitution> alternative of
// <unscoped-template-name>.
func (p *Parser) parseUnscopedTemplateNameHandle(c cursor) (Handle, cursor, error) {
	return p.parseSubstitution(c)
}

// parseNestedName implements <nested-name>: N [CV] [ref] <prefix> E. Per
// spec.md §4.C.5, the terminal prefix variant must be Nested or Template.
func (p *Parser) parseNestedName(c cursor) (*NestedName, cursor, error) {
	tail, err := c.consumeByte('N')
	if err != nil {
		return nil, cursor{}, err
	}

	cv, tail := parseCvQualifiers(tail)
	ref, tail := parseRefQualifier(tail)

	prefix, tail, err := p.parsePrefix(tail)
	if err != nil {
		return nil, cursor{}, err
	}

	last, err := p.store.getPrefix(prefix)
	if err != nil {
		return nil, cursor{}, err
	}
	if last.Kind != PrefixNested && last.Kind != PrefixTemplate {
		return nil, cursor{}, ErrUnexpectedText
	}

	tail, err = tail.consumeByte('E')
	if err != nil {
		return nil, cursor{}, err
	}

	return &NestedName{CV: cv, Ref: ref, Prefix: prefix}, tail, nil
}

func parseCvQualifiers(c cursor) (CvQualifiers, cursor) {
	var q CvQualifiers
	rest := c
	for {
		b, ok := rest.peek()
		if !ok {
			break
		}
		switch b {
		case 'r':
			q.Restrict = true
		case 'V':
			q.Volatile = true
		case 'K':
			q.Const = true
		default:
			return q, rest
		}
		rest = rest.rangeFrom(1)
	}
	return q, rest
}

func parseRefQualifier(c cursor) (RefQualifierKind, cursor) {
	b, ok := c.peek()
	if !ok {
		return RefNone, c
	}
	switch b {
	case 'R':
		return RefLvalue, c.rangeFrom(1)
	case 'O':
		return RefRvalue, c.rangeFrom(1)
	default:
		return RefNone, c
	}
}

// parsePrefix implements the iterative <prefix> loop of spec.md §4.C.4.
// <prefix> is left-recursive in the grammar; parsing it as a loop avoids
// unbounded native recursion for deeply qualified names.
func (p *Parser) parsePrefix(c cursor) (Handle, cursor, error) {
	var current Handle
	haveCurrent := false
	rest := c

	for {
		b, ok := rest.peek()
		if !ok {
			if haveCurrent {
				return current, rest, nil
			}
			return Handle{}, cursor{}, ErrUnexpectedEnd
		}

		switch {
		case b == 'S' && !startsSubstitutionEscape(rest):
			h, tail, err := p.parseSubstitution(rest)
			if err != nil {
				if haveCurrent {
					return current, rest, nil
				}
				return Handle{}, cursor{}, err
			}
			current, rest, haveCurrent = h, tail, true

		case b == 'T' && !startsTemplateArgsOpen(rest):
			tp, tail, err := p.parseTemplateParam(rest)
			if err != nil {
				if haveCurrent {
					return current, rest, nil
				}
				return Handle{}, cursor{}, err
			}
			h := p.store.insertPrefix(&Prefix{Kind: PrefixTemplateParam, TemplateParam: tp})
			current, rest, haveCurrent = h, tail, true

		case b == 'D' && peekIsDecltypeStart(rest):
			dt, tail, err := p.parseDecltype(rest)
			if err != nil {
				if haveCurrent {
					return current, rest, nil
				}
				return Handle{}, cursor{}, err
			}
			h := p.store.insertPrefix(&Prefix{Kind: PrefixDecltype, Decltype: dt})
			current, rest, haveCurrent = h, tail, true

		case b == 'I' && haveCurrent:
			parent, err := p.store.getPrefix(current)
			if err != nil {
				return Handle{}, cursor{}, err
			}
			if !parent.templatable() {
				return current, rest, nil
			}
			args, tail, err := p.parseTemplateArgs(rest)
			if err != nil {
				return current, rest, nil
			}
			h := p.store.insertPrefix(&Prefix{Kind: PrefixTemplate, Parent: current, TemplateArgs: args})
			current, rest, haveCurrent = h, tail, true

		case unqualifiedNameStarts(b):
			name, tail, err := p.parseUnqualifiedName(rest)
			if err != nil {
				if haveCurrent {
					return current, rest, nil
				}
				return Handle{}, cursor{}, err
			}
			if mtail, err := tail.consumeByte('M'); err == nil && haveCurrent {
				sn := name.SourceName
				if sn == nil {
					sn = &SourceName{}
				}
				h := p.store.insertPrefix(&Prefix{Kind: PrefixDataMember, Parent: current, DataMember: sn})
				current, rest, haveCurrent = h, mtail, true
				continue
			}
			var h Handle
			if haveCurrent {
				h = p.store.insertPrefix(&Prefix{Kind: PrefixNested, Parent: current, Name: name})
			} else {
				h = p.store.insertPrefix(&Prefix{Kind: PrefixUnqualified, Unqualified: name})
			}
			current, rest, haveCurrent = h, tail, true

		default:
			if haveCurrent {
				return current, rest, nil
			}
			if rest.isEmpty() {
				return Handle{}, cursor{}, ErrUnexpectedEnd
			}
			return Handle{}, cursor{}, ErrUnexpectedText
		}
	}
}

// startsSubstitutionEscape reports whether the upcoming "S..." is in fact
// a <template-template-param> reference reused via substitution syntax,
// which per spec.md §4.C.2 rule 4 is disambiguated by a following 'I'.
// parsePrefix handles that case itself through the normal substitution
// path (a <template-template-param> used as a prefix element isn't valid
// grammar), so this always returns false; the hook exists so the
// disambiguation rule is visible at the call site and documented once.
func startsSubstitutionEscape(cursor) bool { return false }

// startsTemplateArgsOpen mirrors the same disambiguation for a leading
// <template-param> (T...) immediately followed by 'I': that combination is
// a <template-template-param> <template-args> form, not a standalone
// <template-param> prefix element, and is handled by the 'I' branch above
// once `current` already holds the speculatively-parsed param.
func startsTemplateArgsOpen(cursor) bool { return false }

func peekIsDecltypeStart(c cursor) bool {
	head, _, ok := c.trySplitAt(2)
	if !ok {
		return false
	}
	return string(head) == "DT" || string(head) == "Dt"
}

func unqualifiedNameStarts(b byte) bool {
	if isDigit(b) {
		return true
	}
	if b == 'C' || b == 'D' {
		return true
	}
	if b >= 'a' && b <= 'z' {
		return true
	}
	if b >= 'A' && b <= 'Z' {
		return true
	}
	return false
}

// parseSubstitution implements the `<substitution>` production shared by
// every substitutable nonterminal (spec.md §4.C.3): a well-known two-byte
// code, or `S <seq-id>? _` resolving to a store index that MUST already
// exist.
func (p *Parser) parseSubstitution(c cursor) (Handle, cursor, error) {
	if head, _, ok := c.trySplitAt(2); ok {
		if w, known := wellKnownCodes[string(head)]; known {
			return wellKnownHandle(w), c.rangeFrom(2), nil
		}
	}

	tail, err := c.consumeByte('S')
	if err != nil {
		return Handle{}, cursor{}, err
	}

	val, afterDigits, err := parseSeqID(tail)
	if err != nil {
		return Handle{}, cursor{}, err
	}
	hadDigits := afterDigits.index() != tail.index()

	afterU, err := afterDigits.consumeByte('_')
	if err != nil {
		return Handle{}, cursor{}, err
	}

	idx := 0
	if hadDigits {
		idx = val + 1
	}
	if !p.store.contains(idx) {
		return Handle{}, cursor{}, ErrBadBackReference
	}
	return backReferenceHandle(idx), afterU, nil
}

// parseUnqualifiedName implements <unqualified-name>.
func (p *Parser) parseUnqualifiedName(c cursor) (*UnqualifiedName, cursor, error) {
	if b, ok := c.peek(); ok && isDigit(b) {
		if sn, tail, err := p.parseSourceName(c); err == nil {
			return &UnqualifiedName{Kind: UnqualifiedSourceName, SourceName: sn}, tail, nil
		}
	}

	if cd, tail, err := p.parseCtorDtorName(c); err == nil {
		return &UnqualifiedName{Kind: UnqualifiedCtorDtor, CtorDtor: cd}, tail, nil
	}

	if op, tail, err := p.parseOperatorName(c); err == nil {
		return &UnqualifiedName{Kind: UnqualifiedOperator, Operator: op}, tail, nil
	}

	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseSourceName implements <source-name>: <positive length number>
// <identifier>. The identifier is never copied; it is remembered as a
// byte range into the original input (spec.md §3.3).
func (p *Parser) parseSourceName(c cursor) (*SourceName, cursor, error) {
	n, tail, err := parseDecimalNumber(c)
	if err != nil {
		return nil, cursor{}, err
	}
	if n <= 0 {
		return nil, cursor{}, ErrUnexpectedText
	}
	_, after, ok := tail.trySplitAt(n)
	if !ok {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return &SourceName{Start: tail.index(), End: tail.index() + n}, after, nil
}

func (p *Parser) parseCtorDtorName(c cursor) (*CtorDtorName, cursor, error) {
	head, _, ok := c.trySplitAt(2)
	if !ok {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	kind, known := ctorDtorCodes[string(head)]
	if !known {
		return nil, cursor{}, ErrUnexpectedText
	}
	return &CtorDtorName{Kind: kind}, c.rangeFrom(2), nil
}

func (p *Parser) parseOperatorName(c cursor) (*OperatorNameNode, cursor, error) {
	head, _, ok := c.trySplitAt(2)
	if !ok {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	kind, known := operatorByCode[string(head)]
	if !known {
		return nil, cursor{}, ErrUnexpectedText
	}
	return &OperatorNameNode{Kind: kind}, c.rangeFrom(2), nil
}

func (p *Parser) parseTemplateParam(c cursor) (*TemplateParam, cursor, error) {
	tail, err := c.consumeByte('T')
	if err != nil {
		return nil, cursor{}, err
	}
	if next, err := tail.consumeByte('_'); err == nil {
		return &TemplateParam{Index: 0}, next, nil
	}
	val, afterDigits, err := parseSeqID(tail)
	if err != nil {
		return nil, cursor{}, err
	}
	if afterDigits.index() == tail.index() {
		return nil, cursor{}, ErrUnexpectedText
	}
	next, err := afterDigits.consumeByte('_')
	if err != nil {
		return nil, cursor{}, err
	}
	return &TemplateParam{Index: val + 1}, next, nil
}

// parseLocalName implements <local-name> (spec.md §4.C.7).
func (p *Parser) parseLocalName(c cursor) (*LocalName, cursor, error) {
	tail, err := c.consumeByte('Z')
	if err != nil {
		return nil, cursor{}, err
	}
	enc, tail, err := p.parseEncoding(tail)
	if err != nil {
		return nil, cursor{}, err
	}
	tail, err = tail.consumeByte('E')
	if err != nil {
		return nil, cursor{}, err
	}

	if next, err := tail.consumeByte('s'); err == nil {
		disc, after := parseDiscriminator(next)
		return &LocalName{Kind: LocalString, Encoding: enc, Discriminator: disc, ParamNumber: -1}, after, nil
	}

	if next, err := tail.consumeByte('d'); err == nil {
		paramNum := -1
		after := next
		if n, tail2, err := parseDecimalNumber(after); err == nil {
			paramNum = n
			after = tail2
		}
		after, err := after.consumeByte('_')
		if err != nil {
			return nil, cursor{}, err
		}
		name, after, err := p.parseName(after)
		if err != nil {
			return nil, cursor{}, err
		}
		return &LocalName{Kind: LocalDefaultArg, Encoding: enc, ParamNumber: paramNum, Name: name, Discriminator: -1}, after, nil
	}

	name, after, err := p.parseName(tail)
	if err != nil {
		return nil, cursor{}, err
	}
	disc, after := parseDiscriminator(after)
	return &LocalName{Kind: LocalNormal, Encoding: enc, Name: name, Discriminator: disc, ParamNumber: -1}, after, nil
}

// parseDiscriminator implements <discriminator>: "_<digit>" for 0..9, or
// "__<n>_" for n >= 10 (spec.md §4.C.7). Returns -1 (and the cursor
// unchanged) when absent.
func parseDiscriminator(c cursor) (int, cursor) {
	tail, err := c.consumeByte('_')
	if err != nil {
		return -1, c
	}
	if next, err := tail.consumeByte('_'); err == nil {
		n, after, err := parseDecimalNumber(next)
		if err != nil || n < 10 {
			return -1, c
		}
		after, err = after.consumeByte('_')
		if err != nil {
			return -1, c
		}
		return n, after
	}
	b, ok := tail.peek()
	if !ok || !isDigit(b) {
		return -1, c
	}
	return int(b - '0'), tail.rangeFrom(1)
}
