package syntax

import (
	"fmt"
	"strconv"

	"github.com/gnoverse/teq"
)

// Parse converts an input like "f(g(a), pair!(b))" into a term.
func Parse(input string) (teq.Term, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %s at position %d", describe(tok), tok.Position)
	}
	return term, nil
}

type parser struct {
	tokens  []Token
	current int
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) next() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

// parseTerm reads one term. A bare name is a literal, name(...) is a
// function, and name!(...) is a normalizable term.
func (p *parser) parseTerm() (teq.Term, error) {
	tok := p.next()
	if tok.Type != TokenIdent {
		return nil, fmt.Errorf("expected a name at position %d, got %s", tok.Position, describe(tok))
	}
	symbol := teq.Atom(tok.Value)

	switch p.peek().Type {
	case TokenBang:
		p.next()
		if open := p.next(); open.Type != TokenLParen {
			return nil, fmt.Errorf("expected '(' after '!' at position %d, got %s", open.Position, describe(open))
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return teq.Norm(symbol, args...), nil

	case TokenLParen:
		p.next()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return teq.Fn(symbol, args...), nil

	default:
		return teq.Lit(symbol), nil
	}
}

// parseArgs reads a comma-separated argument list up to the closing
// parenthesis. The opening parenthesis has already been consumed.
func (p *parser) parseArgs() ([]teq.Term, error) {
	if p.peek().Type == TokenRParen {
		p.next()
		return nil, nil
	}

	var args []teq.Term
	for {
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, term)

		switch tok := p.next(); tok.Type {
		case TokenComma:
		case TokenRParen:
			return args, nil
		default:
			return nil, fmt.Errorf("expected ',' or ')' at position %d, got %s", tok.Position, describe(tok))
		}
	}
}

func describe(tok Token) string {
	if tok.Type == TokenEOF {
		return "end of input"
	}
	return strconv.Quote(tok.Value)
}
