/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"github.com/dburkart/sigc/pkg/calc/scanner"
	"github.com/dburkart/sigc/pkg/common/parse"
)

type ASTNode interface {
	Value() string
	Kind() scanner.TokenType
}

type Visitor interface {
	Visit(ASTNode) Visitor
}

type (
	BaseNode struct {
		Token parse.Token
	}

	// IntegerNode is a leaf holding a literal's value. Val is never
	// negative: a leading '-' always parses as subtraction.
	IntegerNode struct {
		BaseNode
		Val int64
	}

	// BinaryOpNode applies Op to Left and Right. Both children are always
	// set.
	BinaryOpNode struct {
		BaseNode
		Left  ASTNode
		Op    parse.Token
		Right ASTNode
	}
)

// -- BaseNode

func (b *BaseNode) Value() string {
	return b.Token.Lexeme
}

// Kind returns the token type the node was built from, or TOK_INVALID for
// a node without a scanner token.
func (b *BaseNode) Kind() scanner.TokenType {
	k, _ := b.Token.Type.(scanner.TokenType)
	return k
}

func (b *BaseNode) Location() parse.Location {
	return b.Token.Location
}

//-- IntegerNode

func MakeIntegerNode(tok parse.Token, val int64) *IntegerNode {
	return &IntegerNode{BaseNode: BaseNode{Token: tok}, Val: val}
}

//-- BinaryOpNode

func MakeBinaryOpNode(op parse.Token, left, right ASTNode) *BinaryOpNode {
	return &BinaryOpNode{
		BaseNode: BaseNode{Token: op},
		Left:     left,
		Op:       op,
		Right:    right,
	}
}
