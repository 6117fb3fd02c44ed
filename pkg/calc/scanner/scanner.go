/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"unicode/utf8"

	"github.com/dburkart/sigc/pkg/common/parse"
)

type Scanner struct {
	Input string
	Start int
	Pos   int
}

// Tokenize scans all of input and returns its tokens in order. It never
// fails; characters that don't start a token are dropped.
func Tokenize(input string) []parse.Token {
	s := Scanner{Input: input}
	tokens := []parse.Token{}

	for {
		tok := s.Emit()
		if tok.Type == TOK_EOF {
			break
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// MatchInteger returns the length of the next token, assuming it is an
// integer
//
// Grammar:
//
//	integer          = 1*DIGIT
func (s *Scanner) MatchInteger() int {
	size := 0

	for i := s.Pos; i < len(s.Input) && isDigit(s.Input[i]); i++ {
		size++
	}

	return size
}

// Emit the next Token found on Scanner.Input. Once the input is exhausted
// every call returns a TOK_EOF token.
func (s *Scanner) Emit() parse.Token {
	var t parse.Token

	for {
		if s.Pos >= len(s.Input) {
			s.Start = len(s.Input)
			s.Pos = s.Start
			return parse.Token{
				Type:     TOK_EOF,
				Location: parse.Location{Start: s.Start, End: s.Start},
			}
		}

		r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
		s.Start = s.Pos
		found := true
		skip := 0

		switch {
		case r == '+':
			t.Type = TOK_PLUS
			skip = width
		case r == '-':
			t.Type = TOK_MINUS
			skip = width
		case r == '*':
			t.Type = TOK_STAR
			skip = width
		case r == '/':
			t.Type = TOK_SLASH
			skip = width
		case r == '(':
			t.Type = TOK_PAREN_L
			skip = width
		case r == ')':
			t.Type = TOK_PAREN_R
			skip = width
		case r >= '0' && r <= '9':
			t.Type = TOK_INTEGER
			skip = s.MatchInteger()
		default:
			// Whitespace and anything we don't understand is dropped
			skip = width
			found = false
		}

		s.Pos = s.Start + skip
		if found {
			break
		}
	}

	t.Lexeme = s.Input[s.Start:s.Pos]
	t.Location = parse.Location{Start: s.Start, End: s.Pos}
	s.Start = s.Pos

	return t
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
