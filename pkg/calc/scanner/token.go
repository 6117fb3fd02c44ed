/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

type TokenType int

const (
	TOK_INVALID TokenType = iota
	TOK_EOF

	TOK_INTEGER

	// Operators
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH

	TOK_PAREN_L
	TOK_PAREN_R

	// Reserved, nothing scans to an identifier yet
	TOK_IDENTIFIER
)

func (t TokenType) ToString() string {
	switch t {
	case TOK_INVALID:
		return "TOK_INVALID"
	case TOK_EOF:
		return "TOK_EOF"
	case TOK_INTEGER:
		return "TOK_INTEGER"
	case TOK_PLUS:
		return "TOK_PLUS"
	case TOK_MINUS:
		return "TOK_MINUS"
	case TOK_STAR:
		return "TOK_STAR"
	case TOK_SLASH:
		return "TOK_SLASH"
	case TOK_PAREN_L:
		return "TOK_PAREN_L"
	case TOK_PAREN_R:
		return "TOK_PAREN_R"
	case TOK_IDENTIFIER:
		return "TOK_IDENTIFIER"
	}
	return "TOK_UNKNOWN"
}

// Symbol returns the glyph an operator or parenthesis is written with, or
// an empty string for every other type.
func (t TokenType) Symbol() string {
	switch t {
	case TOK_PLUS:
		return "+"
	case TOK_MINUS:
		return "-"
	case TOK_STAR:
		return "*"
	case TOK_SLASH:
		return "/"
	case TOK_PAREN_L:
		return "("
	case TOK_PAREN_R:
		return ")"
	}
	return ""
}

// IsOperator reports whether t is one of the four binary operators.
func (t TokenType) IsOperator() bool {
	return t == TOK_PLUS || t == TOK_MINUS || t == TOK_STAR || t == TOK_SLASH
}
