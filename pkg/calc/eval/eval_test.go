/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package eval

import (
	"errors"
	"math"
	"testing"

	"github.com/dburkart/sigc/pkg/calc/ast"
	"github.com/dburkart/sigc/pkg/calc/parser"
	"github.com/dburkart/sigc/pkg/calc/scanner"
	"github.com/dburkart/sigc/pkg/common/parse"
)

func run(t *testing.T, input string) (int64, error) {
	t.Helper()

	node, err := parser.Parse(scanner.Tokenize(input))
	if err != nil {
		t.Fatalf("unable to parse %q: %s", input, err)
	}

	return Evaluate(node)
}

func integer(val int64) *ast.IntegerNode {
	return ast.MakeIntegerNode(parse.Token{Type: scanner.TOK_INTEGER}, val)
}

func op(typ scanner.TokenType, left, right ast.ASTNode) *ast.BinaryOpNode {
	return ast.MakeBinaryOpNode(parse.Token{Type: typ, Lexeme: typ.Symbol()}, left, right)
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"1+2", 3},
		{"1 + 2", 3},
		{"8-3-2", 3},
		{"2*3-4", 2},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"((((5))))", 5},
		{"7/2", 3},
		{"2-7", -5},
		{"(2-7)/2", -2},
		{"16/4/2", 2},
		{"100 - 10 * (3 + 2) / 5", 90},
		{"9223372036854775807", math.MaxInt64},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := run(t, tc.input)
			if err != nil {
				t.Fatal(err)
			}

			if got != tc.want {
				t.Errorf("wanted %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, input := range []string{"5/0", "1/(2-2)", "0/0", "1+2/(3*0)"} {
		t.Run(input, func(t *testing.T) {
			got, err := run(t, input)
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("wanted ErrDivisionByZero, got %v (value %d)", err, got)
			}

			var evalError *Error
			if !errors.As(err, &evalError) {
				t.Fatalf("wanted an *eval.Error, got %T", err)
			}
		})
	}
}

func TestDivisionByZeroLocation(t *testing.T) {
	_, err := run(t, "10 + 5/0")

	var evalError *Error
	if !errors.As(err, &evalError) {
		t.Fatalf("wanted an *eval.Error, got %v", err)
	}

	if evalError.Location.Start != 6 {
		t.Errorf("wanted the error on the '/' at 6, got %d", evalError.Location.Start)
	}
}

func TestOverflow(t *testing.T) {
	testCases := []string{
		"9223372036854775807 + 1",
		"0 - 9223372036854775807 - 2",
		"4611686018427387904 * 2",
		"3037000500 * 3037000500",
		"(0 - 9223372036854775807 - 1) / (0 - 1)",
		"(0 - 9223372036854775807 - 1) * (0 - 1)",
	}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			_, err := run(t, input)
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("wanted ErrOverflow, got %v", err)
			}
		})
	}

	// MinInt64 itself is reachable without overflowing
	got, err := run(t, "0 - 9223372036854775807 - 1")
	if err != nil {
		t.Fatal(err)
	}
	if got != math.MinInt64 {
		t.Errorf("wanted %d, got %d", int64(math.MinInt64), got)
	}
}

func TestInvalidNodes(t *testing.T) {
	var nilInteger *ast.IntegerNode
	var nilOp *ast.BinaryOpNode

	testCases := []struct {
		name string
		node ast.ASTNode
	}{
		{"nil", nil},
		{"typed nil integer", nilInteger},
		{"typed nil operator", nilOp},
		{"negative literal", integer(-1)},
		{"literal without token", &ast.IntegerNode{Val: 1}},
		{"missing left", op(scanner.TOK_PLUS, nil, integer(1))},
		{"missing right", op(scanner.TOK_MINUS, integer(1), nil)},
		{"identifier operator", op(scanner.TOK_IDENTIFIER, integer(1), integer(2))},
		{"paren operator", op(scanner.TOK_PAREN_L, integer(1), integer(2))},
		{"integer kind operator", op(scanner.TOK_INTEGER, integer(1), integer(2))},
		{"nested invalid child", op(scanner.TOK_PLUS, integer(1), op(scanner.TOK_STAR, integer(2), nil))},
		{"foreign node", foreignNode{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(tc.node)
			if !errors.Is(err, ErrInvalidNode) {
				t.Errorf("wanted ErrInvalidNode, got %v", err)
			}
		})
	}
}

type foreignNode struct{}

func (foreignNode) Value() string           { return "?" }
func (foreignNode) Kind() scanner.TokenType { return scanner.TOK_IDENTIFIER }

func TestEvaluateHandBuiltTree(t *testing.T) {
	// 20 / (2 + 3) * 4
	tree := op(scanner.TOK_STAR,
		op(scanner.TOK_SLASH, integer(20), op(scanner.TOK_PLUS, integer(2), integer(3))),
		integer(4),
	)

	got, err := Evaluate(tree)
	if err != nil {
		t.Fatal(err)
	}

	if got != 16 {
		t.Errorf("wanted 16, got %d", got)
	}
}
