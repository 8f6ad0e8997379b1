package lexer

// Source is the minimal token source a response parser consumes. Any
// implementation only needs to yield successive tokens via Next; *Lexer
// satisfies it, and tests can substitute canned token slices.
type Source interface {
	Next() (Token, error)
}

var _ Source = (*Lexer)(nil)
