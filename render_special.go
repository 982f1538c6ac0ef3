package demangle

// renderSpecialName implements <special-name> rendering (spec.md §3.1,
// SPEC_FULL.md §C.4). The brace-wrapped forms ("{vtable(T)}", "{static
// initialization guard(name)}", ...) are the literal structural markers
// spec.md §4.D.4/§8.3 mandate; "typeinfo for T" is the one case spec.md
// calls out as printing without braces.
func (r *Renderer) renderSpecialName(s *SpecialName) (string, error) {
	switch s.Kind {
	case SpecialVirtualTable:
		t, err := r.renderTypeFull(s.Type)
		if err != nil {
			return "", err
		}
		return "{vtable(" + t + ")}", nil

	case SpecialVtt:
		t, err := r.renderTypeFull(s.Type)
		if err != nil {
			return "", err
		}
		return "{vtt(" + t + ")}", nil

	case SpecialTypeinfo:
		t, err := r.renderTypeFull(s.Type)
		if err != nil {
			return "", err
		}
		return "typeinfo for " + t, nil

	case SpecialTypeinfoName:
		t, err := r.renderTypeFull(s.Type)
		if err != nil {
			return "", err
		}
		return "{typeinfo name(" + t + ")}", nil

	case SpecialVirtualOverrideThunk:
		enc, err := r.renderEncoding(s.Base)
		if err != nil {
			return "", err
		}
		return "{virtual override thunk(" + renderCallOffset(s.ThisOffset) + ", " + enc + ")}", nil

	case SpecialVirtualOverrideThunkCovariant:
		enc, err := r.renderEncoding(s.Base)
		if err != nil {
			return "", err
		}
		return "{virtual override thunk(" + renderCallOffset(s.ThisOffset) + ", " +
			renderCallOffset(s.ResultOffset) + ", " + enc + ")}", nil

	case SpecialGuard:
		name, err := r.renderName(s.Guard)
		if err != nil {
			return "", err
		}
		return "{static initialization guard(" + name + ")}", nil

	case SpecialGuardTemporary:
		name, err := r.renderName(s.Guard)
		if err != nil {
			return "", err
		}
		return "{static initialization guard temporary(" + name + ", " + itoa(s.GuardSeq) + ")}", nil

	default:
		return "", ErrUnexpectedText
	}
}

// renderCallOffset implements <call-offset> rendering: "{offset(N)}" for a
// non-virtual adjustment, "{virtual offset(N, M)}" for a virtual one.
func renderCallOffset(off CallOffset) string {
	if off.Kind == CallOffsetVirtual {
		return "{virtual offset(" + itoa(off.Virtual.ThisAdjustment) + ", " + itoa(off.Virtual.VCallOffset) + ")}"
	}
	return "{offset(" + itoa(off.NonVirtual.Value) + ")}"
}
