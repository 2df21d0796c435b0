package syntax

import (
	"fmt"
	"unicode"
)

// Lexer is responsible for scanning the input string and producing tokens.
type Lexer struct {
	input    string // the entire input to tokenize
	position int    // current reading position in input
	tokens   []Token
}

// NewLexer returns a new Lexer with the given input and initializes state.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    input,
		position: 0,
		tokens:   make([]Token, 0),
	}
}

// Tokenize processes the entire input and produces the list of tokens.
// Whitespace separates tokens and is otherwise ignored.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		currentPos := l.position
		switch c := l.input[l.position]; {
		case c == '(':
			l.addToken(TokenLParen, "(", currentPos)
			l.position++

		case c == ')':
			l.addToken(TokenRParen, ")", currentPos)
			l.position++

		case c == ',':
			l.addToken(TokenComma, ",", currentPos)
			l.position++

		case c == '!':
			l.addToken(TokenBang, "!", currentPos)
			l.position++

		case isWhitespace(c):
			l.position++

		case isIdentChar(c):
			// position incrementing is handled inside `lexIdent`
			l.lexIdent(currentPos)

		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, currentPos)
		}
	}

	// At the end, add an EOF token to indicate we're done.
	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// lexIdent scans consecutive identifier characters to produce one TokenIdent.
func (l *Lexer) lexIdent(startPos int) {
	start := l.position
	for l.position < len(l.input) && isIdentChar(l.input[l.position]) {
		l.position++
	}
	l.addToken(TokenIdent, l.input[start:l.position], startPos)
}

// addToken is a helper to append a new token to the lexer's token list.
func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	})
}

// isWhitespace checks if the given byte is a space, tab, newline, etc.
func isWhitespace(c byte) bool {
	return unicode.IsSpace(rune(c))
}

// isIdentChar checks if the given byte may appear in a name.
func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}
