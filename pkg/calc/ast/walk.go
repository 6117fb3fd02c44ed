/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

// Walk traverses the tree rooted at node in pre-order. v.Visit(node) is
// called first; if it returns a non-nil visitor w, Walk recurses into the
// children with w and then calls w.Visit(nil).
func Walk(v Visitor, node ASTNode) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *BinaryOpNode:
		if n.Left != nil {
			Walk(v, n.Left)
		}

		if n.Right != nil {
			Walk(v, n.Right)
		}

	case *IntegerNode:
		// Skip, leaf node

	default:
		panic("Unexpected ASTNode passed to Walk")
	}

	v.Visit(nil)
}

type counter struct {
	nodes int
}

func (c *counter) Visit(node ASTNode) Visitor {
	if node == nil {
		return nil
	}
	c.nodes++
	return c
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node ASTNode) int {
	if node == nil {
		return 0
	}

	c := counter{}
	Walk(&c, node)
	return c.nodes
}
