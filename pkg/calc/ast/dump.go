/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"reflect"
	"strconv"
	"strings"
)

type Dumper struct {
	Output string
	indent int
}

func (d *Dumper) Visit(node ASTNode) Visitor {
	if node == nil {
		d.indent -= 1
		return nil
	}

	level := strings.Repeat("    ", d.indent)

	value := node.Value()
	if n, ok := node.(*IntegerNode); ok {
		value = strconv.FormatInt(n.Val, 10)
	}

	t := reflect.TypeOf(node)
	output := level + t.Elem().Name() + "[" + value + "]" + "\n"

	d.Output += output
	d.indent += 1

	return d
}

// Dump returns an indented, one node per line rendering of the tree.
func Dump(node ASTNode) string {
	d := Dumper{}
	Walk(&d, node)
	return d.Output
}

// String renders the tree as a fully parenthesized infix expression, so
// the grouping the parser chose is explicit: "1+2*3" becomes "(1 + (2 * 3))".
func String(node ASTNode) string {
	var sb strings.Builder
	writeInfix(&sb, node)
	return sb.String()
}

func writeInfix(sb *strings.Builder, node ASTNode) {
	switch n := node.(type) {
	case *IntegerNode:
		sb.WriteString(strconv.FormatInt(n.Val, 10))
	case *BinaryOpNode:
		sb.WriteByte('(')
		writeInfix(sb, n.Left)
		sb.WriteString(" " + n.Op.Lexeme + " ")
		writeInfix(sb, n.Right)
		sb.WriteByte(')')
	default:
		sb.WriteString("<invalid>")
	}
}
