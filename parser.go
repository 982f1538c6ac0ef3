package demangle

// Parser holds the mutable-by-convention state threaded through every
// grammar production: the substitution store (shared, append-only) and the
// original input bytes (so <source-name> and <expr-primary> literals can
// be recorded as byte ranges rather than copied, per spec.md §3.3). A
// single Parser is used for one top-level Parse call; nothing about it is
// safe to share across concurrent demangles (spec.md §5), so callers
// construct a fresh one per call via Parse.
type Parser struct {
	input []byte
	store *substitutionStore
}

func newParser(input []byte) *Parser {
	return &Parser{input: input, store: newSubstitutionStore()}
}

// ParseResult is the successful output of Parse: the AST root, the
// substitution store it was built against, the original bytes (needed by
// Render for identifier/literal echo), and whatever suffix of the input
// was not consumed (spec.md §6.1 — the parser does not require the whole
// input to be consumed).
type ParseResult struct {
	Root      *MangledName
	store     *substitutionStore
	input     []byte
	Remainder []byte
}

// Parse parses a mangled name, accepting the `__Z`, `_Z`, and bare
// openings described in spec.md §6.4.
func Parse(data []byte) (*ParseResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	p := newParser(data)
	root, rest, err := p.parseMangledName(newCursor(data))
	if err != nil {
		return nil, &ParseError{Production: "MangledName", Offset: 0, Err: err}
	}
	return &ParseResult{Root: root, store: p.store, input: data, Remainder: rest.data}, nil
}

// parseMangledName implements <mangled-name> with the leading-marker
// flexibility of spec.md §6.4: try "__Z", then "_Z", then a bare encoding.
func (p *Parser) parseMangledName(c cursor) (*MangledName, cursor, error) {
	rest := c
	if next, err := c.consume([]byte("__Z")); err == nil {
		rest = next
	} else if next, err := c.consume([]byte("_Z")); err == nil {
		rest = next
	}

	if enc, tail, err := p.parseEncoding(rest); err == nil {
		return &MangledName{Kind: MangledEncoding, Encoding: enc}, tail, nil
	}

	// libiberty tolerance: a bare <type>.
	h, tail, err := p.parseTypeHandle(rest)
	if err != nil {
		return nil, cursor{}, err
	}
	return &MangledName{Kind: MangledBareType, Type: h}, tail, nil
}

// parseEncoding implements <encoding> with the ordering of spec.md §4.C.2
// rule 2: attempt Name + BareFunctionType as a function encoding; if the
// bare-function-type fails, commit the already-parsed Name as a Data
// encoding; if the Name itself fails, try SpecialName.
func (p *Parser) parseEncoding(c cursor) (*Encoding, cursor, error) {
	if name, tail, err := p.parseName(c); err == nil {
		if bft, tail2, err := p.parseBareFunctionType(tail); err == nil {
			return &Encoding{Kind: EncodingFunction, Name: name, Function: bft}, tail2, nil
		}
		return &Encoding{Kind: EncodingData, Name: name}, tail, nil
	}

	special, tail, err := p.parseSpecialName(c)
	if err != nil {
		return nil, cursor{}, err
	}
	return &Encoding{Kind: EncodingSpecial, Special: special}, tail, nil
}

// consumeLit is a small convenience wrapper around cursor.consume for
// string literal tags.
func consumeLit(c cursor, lit string) (cursor, error) {
	return c.consume([]byte(lit))
}
