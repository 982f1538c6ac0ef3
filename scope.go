package demangle

// scopeStack is the renderer's lexical argument-scope stack (spec.md
// §4.D.3): a `<template-param>` or `<function-param>` reference always
// resolves against the nearest enclosing encoding's template arguments or
// parameter list, not the one in effect when the reference was parsed.
// Only the innermost frame is consulted; nested local scopes that would
// need a non-zero Level/Index beyond the immediate enclosing function are
// an acknowledged gap (see DESIGN.md).
type scopeStack struct {
	templateFrames []*TemplateArgs
	paramFrames    [][]Handle
}

func newScopeStack() *scopeStack { return &scopeStack{} }

func (s *scopeStack) pushTemplateArgs(a *TemplateArgs) { s.templateFrames = append(s.templateFrames, a) }
func (s *scopeStack) popTemplateArgs()                 { s.templateFrames = s.templateFrames[:len(s.templateFrames)-1] }

func (s *scopeStack) pushParams(p []Handle) { s.paramFrames = append(s.paramFrames, p) }
func (s *scopeStack) popParams()            { s.paramFrames = s.paramFrames[:len(s.paramFrames)-1] }

func (s *scopeStack) currentTemplateArgs() *TemplateArgs {
	if len(s.templateFrames) == 0 {
		return nil
	}
	return s.templateFrames[len(s.templateFrames)-1]
}

func (s *scopeStack) currentParams() []Handle {
	if len(s.paramFrames) == 0 {
		return nil
	}
	return s.paramFrames[len(s.paramFrames)-1]
}
