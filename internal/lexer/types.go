package lexer

import "github.com/NadavKahlon/syntax-parser-generator/internal/handle"

// Types mints fresh, distinct lexeme Type handles for one lexer under
// construction. A builder layered on top of this package (see syntaxgen)
// uses this to hand callers an opaque Type back from a string-dubbing call,
// without ever exposing the unexported tag struct Type is phantom-typed
// over.
type Types struct {
	names handle.HandledVec[lexemeTypeTag, string]
}

// NewTypes returns an empty Types arena.
func NewTypes() *Types {
	return &Types{}
}

// New mints a fresh Type, named name for diagnostics.
func (t *Types) New(name string) Type {
	return t.names.Insert(name)
}

// Name returns the diagnostic name given to ty.
func (t *Types) Name(ty Type) string {
	return t.names.Get(ty)
}
