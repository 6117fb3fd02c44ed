/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"fmt"
	"math"

	"github.com/dburkart/sigc/pkg/calc/ast"
	"github.com/dburkart/sigc/pkg/calc/scanner"
	"github.com/dburkart/sigc/pkg/common/parse"
)

// MaxNesting is the deepest parenthesized group the parser accepts
const MaxNesting = 1000

type Parser struct {
	Tokens  []parse.Token
	Current int

	depth int
}

// Parse builds the tree for tokens, which must hold exactly one complete
// expression. Failures are returned as a parse.SyntaxError.
func Parse(tokens []parse.Token) (ast.ASTNode, error) {
	p := Parser{Tokens: tokens}
	return p.Parse()
}

func (p *Parser) Parse() (expr ast.ASTNode, err error) {
	defer func() {
		if e := recover(); e != nil {
			syntaxError, ok := e.(parse.SyntaxError)
			if !ok {
				panic(e)
			}
			expr = nil
			err = syntaxError
		}
	}()

	expr = p.expression()

	// If we didn't parse all the tokens, return an error
	if tok, ok := p.peek(); ok {
		panic(parse.NewSyntaxError(parse.ErrUnexpectedToken, tok, fmt.Sprintf("Error: unexpected token '%s' after a complete expression", tok.Lexeme)))
	}

	return expr, nil
}

func (p *Parser) peek() (parse.Token, bool) {
	if p.Current >= len(p.Tokens) {
		return parse.Token{}, false
	}
	return p.Tokens[p.Current], true
}

func (p *Parser) consume() (parse.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.Current++
	}
	return tok, ok
}

// require consumes the next token, failing if there isn't one
func (p *Parser) require(expected string) parse.Token {
	tok, ok := p.consume()
	if !ok {
		panic(parse.NewSyntaxError(parse.ErrUnexpectedEndOfInput, p.endOfInput(), fmt.Sprintf("Error: unexpected end of input, expected %s", expected)))
	}
	return tok
}

// endOfInput is a zero-width token just past the last token
func (p *Parser) endOfInput() parse.Token {
	end := 0
	if len(p.Tokens) > 0 {
		end = p.Tokens[len(p.Tokens)-1].Location.End
	}
	return parse.Token{
		Type:     scanner.TOK_EOF,
		Location: parse.Location{Start: end, End: end},
	}
}

// next reports whether the next token is one of types, without consuming it
func (p *Parser) next(types ...scanner.TokenType) bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}

	for _, t := range types {
		if tok.Type == t {
			return true
		}
	}
	return false
}

// expression returns a BinaryOpNode, or the result of term
//
// Grammar:
//
//	expression      = term *( ( "+" / "-" ) term )
func (p *Parser) expression() ast.ASTNode {
	node := p.term()

	for p.next(scanner.TOK_PLUS, scanner.TOK_MINUS) {
		op, _ := p.consume()
		node = ast.MakeBinaryOpNode(op, node, p.term())
	}

	return node
}

// term returns a BinaryOpNode, or the result of primary
//
// Grammar:
//
//	term            = primary *( ( "*" / "/" ) primary )
func (p *Parser) term() ast.ASTNode {
	node := p.primary()

	for p.next(scanner.TOK_STAR, scanner.TOK_SLASH) {
		op, _ := p.consume()
		node = ast.MakeBinaryOpNode(op, node, p.primary())
	}

	return node
}

// primary returns a leaf node for an expression
//
// Grammar:
//
//	primary         = integer / "(" expression ")"
func (p *Parser) primary() ast.ASTNode {
	t := p.require("an integer or '('")

	switch t.Type {
	case scanner.TOK_INTEGER:
		return ast.MakeIntegerNode(t, integerValue(t))
	case scanner.TOK_PAREN_L:
		p.depth++
		if p.depth > MaxNesting {
			panic(parse.NewSyntaxError(parse.ErrNestingTooDeep, t, fmt.Sprintf("Error: parentheses nested deeper than %d", MaxNesting)))
		}

		// We're an expression group, so call expression
		expr := p.expression()

		// Expect a closing paren
		t = p.require("')'")
		if t.Type != scanner.TOK_PAREN_R {
			panic(parse.NewSyntaxError(parse.ErrUnexpectedToken, t, fmt.Sprintf("Error: Unexpected token '%s'. Expected a ')'", t.Lexeme)))
		}
		p.depth--

		return expr
	default:
		panic(parse.NewSyntaxError(parse.ErrUnexpectedToken, t, fmt.Sprintf("Error: Unexpected token '%s'. Expected an integer or '('", t.Lexeme)))
	}
}

// integerValue folds the digits of an integer token into its value
func integerValue(t parse.Token) int64 {
	var total int64

	for i := 0; i < len(t.Lexeme); i++ {
		digit := int64(t.Lexeme[i] - '0')
		if total > (math.MaxInt64-digit)/10 {
			panic(parse.NewSyntaxError(parse.ErrIntegerOverflow, t, fmt.Sprintf("Error: integer '%s' does not fit in 64 bits", t.Lexeme)))
		}
		total = total*10 + digit
	}

	return total
}
