// Package syntax parses the textual form of terms, the same form the
// terms render themselves to: literals are bare names, functions are
// written f(a, b), and normalizable terms are written n!(a, b).
package syntax

// TokenType defines the token kinds produced by the lexer.
type TokenType int

const (
	TokenIdent  TokenType = iota // symbol or literal name
	TokenLParen                  // '('
	TokenRParen                  // ')'
	TokenComma                   // ','
	TokenBang                    // '!'
	TokenEOF                     // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenIdent:
		return "name"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenBang:
		return "'!'"
	case TokenEOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Token represents a single lexical token with type, value, and position.
type Token struct {
	Type     TokenType // type of this token
	Value    string    // the literal string for this token
	Position int       // the starting position in the original input
}
