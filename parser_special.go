package demangle

// This file implements <special-name> and <call-offset> (spec.md §3.1,
// expanded per SPEC_FULL.md §C.4).

// parseSpecialName implements <special-name>. The longer, more specific
// prefixes (TV/TT/TI/TS/Tc) are tried before the bare "T" virtual-thunk
// form since they share a leading byte.
func (p *Parser) parseSpecialName(c cursor) (*SpecialName, cursor, error) {
	if tail, err := consumeLit(c, "TV"); err == nil {
		if h, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &SpecialName{Kind: SpecialVirtualTable, Type: h}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "TT"); err == nil {
		if h, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &SpecialName{Kind: SpecialVtt, Type: h}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "TI"); err == nil {
		if h, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &SpecialName{Kind: SpecialTypeinfo, Type: h}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "TS"); err == nil {
		if h, tail2, err := p.parseTypeHandle(tail); err == nil {
			return &SpecialName{Kind: SpecialTypeinfoName, Type: h}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "Tc"); err == nil {
		if thisOff, tail2, err := p.parseCallOffset(tail); err == nil {
			if resOff, tail3, err := p.parseCallOffset(tail2); err == nil {
				if enc, tail4, err := p.parseEncoding(tail3); err == nil {
					return &SpecialName{
						Kind:         SpecialVirtualOverrideThunkCovariant,
						ThisOffset:   thisOff,
						ResultOffset: resOff,
						Base:         enc,
					}, tail4, nil
				}
			}
		}
	}
	if tail, err := c.consumeByte('T'); err == nil {
		if off, tail2, err := p.parseCallOffset(tail); err == nil {
			if enc, tail3, err := p.parseEncoding(tail2); err == nil {
				return &SpecialName{Kind: SpecialVirtualOverrideThunk, ThisOffset: off, Base: enc}, tail3, nil
			}
		}
	}
	if tail, err := consumeLit(c, "GV"); err == nil {
		if name, tail2, err := p.parseName(tail); err == nil {
			return &SpecialName{Kind: SpecialGuard, Guard: name}, tail2, nil
		}
	}
	if tail, err := consumeLit(c, "GR"); err == nil {
		if name, tail2, err := p.parseName(tail); err == nil {
			seq := 0
			rest := tail2
			if val, afterDigits, err := parseSeqID(rest); err == nil && afterDigits.index() != rest.index() {
				seq = val + 1
				rest = afterDigits
			}
			if after, err := rest.consumeByte('_'); err == nil {
				return &SpecialName{Kind: SpecialGuardTemporary, Guard: name, GuardSeq: seq}, after, nil
			}
		}
	}

	if c.isEmpty() {
		return nil, cursor{}, ErrUnexpectedEnd
	}
	return nil, cursor{}, ErrUnexpectedText
}

// parseCallOffset implements <call-offset>: h <nv-offset> _ | v <v-offset> _.
func (p *Parser) parseCallOffset(c cursor) (CallOffset, cursor, error) {
	if tail, err := c.consumeByte('h'); err == nil {
		if off, tail2, err := parseNvOffset(tail); err == nil {
			if after, err := tail2.consumeByte('_'); err == nil {
				return CallOffset{Kind: CallOffsetNonVirtual, NonVirtual: off}, after, nil
			}
		}
	}
	if tail, err := c.consumeByte('v'); err == nil {
		if off, tail2, err := parseVOffset(tail); err == nil {
			if after, err := tail2.consumeByte('_'); err == nil {
				return CallOffset{Kind: CallOffsetVirtual, Virtual: off}, after, nil
			}
		}
	}
	if c.isEmpty() {
		return CallOffset{}, cursor{}, ErrUnexpectedEnd
	}
	return CallOffset{}, cursor{}, ErrUnexpectedText
}

// parseNvOffset implements <nv-offset>: <offset number>.
func parseNvOffset(c cursor) (NvOffset, cursor, error) {
	n, tail, err := parseDecimalNumber(c)
	if err != nil {
		return NvOffset{}, cursor{}, err
	}
	return NvOffset{Value: n}, tail, nil
}

// parseVOffset implements <v-offset>: <offset number> _ <virtual offset number>.
func parseVOffset(c cursor) (VOffset, cursor, error) {
	n1, tail, err := parseDecimalNumber(c)
	if err != nil {
		return VOffset{}, cursor{}, err
	}
	tail, err = tail.consumeByte('_')
	if err != nil {
		return VOffset{}, cursor{}, err
	}
	n2, tail, err := parseDecimalNumber(tail)
	if err != nil {
		return VOffset{}, cursor{}, err
	}
	return VOffset{ThisAdjustment: n1, VCallOffset: n2}, tail, nil
}
