/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"testing"

	"github.com/dburkart/sigc/pkg/calc/scanner"
	"github.com/dburkart/sigc/pkg/common/parse"
)

func integer(lexeme string, val int64) *IntegerNode {
	return MakeIntegerNode(parse.Token{Type: scanner.TOK_INTEGER, Lexeme: lexeme}, val)
}

func op(typ scanner.TokenType, left, right ASTNode) *BinaryOpNode {
	return MakeBinaryOpNode(parse.Token{Type: typ, Lexeme: typ.Symbol()}, left, right)
}

// (1 - 2) * 3
func sampleTree() ASTNode {
	return op(scanner.TOK_STAR,
		op(scanner.TOK_MINUS, integer("1", 1), integer("2", 2)),
		integer("3", 3),
	)
}

func TestKind(t *testing.T) {
	tree := sampleTree().(*BinaryOpNode)

	if tree.Kind() != scanner.TOK_STAR {
		t.Errorf("wanted TOK_STAR, got %s", tree.Kind().ToString())
	}

	if tree.Right.Kind() != scanner.TOK_INTEGER {
		t.Errorf("wanted TOK_INTEGER, got %s", tree.Right.Kind().ToString())
	}

	empty := &IntegerNode{}
	if empty.Kind() != scanner.TOK_INVALID {
		t.Errorf("wanted TOK_INVALID for a node without a token, got %s", empty.Kind().ToString())
	}
}

func TestCount(t *testing.T) {
	if c := Count(sampleTree()); c != 5 {
		t.Errorf("wanted 5 nodes, got %d", c)
	}

	if c := Count(integer("7", 7)); c != 1 {
		t.Errorf("wanted 1 node, got %d", c)
	}

	if c := Count(nil); c != 0 {
		t.Errorf("wanted 0 nodes for nil, got %d", c)
	}
}

func TestDump(t *testing.T) {
	want := "BinaryOpNode[*]\n" +
		"    BinaryOpNode[-]\n" +
		"        IntegerNode[1]\n" +
		"        IntegerNode[2]\n" +
		"    IntegerNode[3]\n"

	if got := Dump(sampleTree()); got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}
}

func TestDumpNormalizesLiterals(t *testing.T) {
	if got := Dump(integer("007", 7)); got != "IntegerNode[7]\n" {
		t.Errorf("wanted IntegerNode[7], got %q", got)
	}
}

func TestString(t *testing.T) {
	if got := String(sampleTree()); got != "((1 - 2) * 3)" {
		t.Errorf("wanted ((1 - 2) * 3), got %s", got)
	}

	if got := String(nil); got != "<invalid>" {
		t.Errorf("wanted <invalid> for nil, got %s", got)
	}
}
