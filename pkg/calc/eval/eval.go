/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/dburkart/sigc/pkg/calc/ast"
	"github.com/dburkart/sigc/pkg/calc/scanner"
	"github.com/dburkart/sigc/pkg/common/parse"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("integer overflow")
	// ErrInvalidNode means the tree was not built by the parser: a caller
	// bug, not bad input.
	ErrInvalidNode = errors.New("invalid node")
)

type Error struct {
	Kind     error
	Location parse.Location
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Location.Start, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, node ast.ASTNode, format string, args ...any) *Error {
	e := &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if located, ok := node.(interface{ Location() parse.Location }); ok {
		e.Location = located.Location()
	}
	return e
}

// Evaluate reduces the tree rooted at node to a single integer. Children
// are evaluated left before right.
func Evaluate(node ast.ASTNode) (int64, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		if n == nil {
			return 0, newError(ErrInvalidNode, nil, "nil integer node")
		}
		if n.Kind() != scanner.TOK_INTEGER || n.Val < 0 {
			return 0, newError(ErrInvalidNode, n, "malformed integer leaf '%s'", n.Value())
		}
		return n.Val, nil

	case *ast.BinaryOpNode:
		if n == nil {
			return 0, newError(ErrInvalidNode, nil, "nil operator node")
		}
		if n.Left == nil || n.Right == nil {
			return 0, newError(ErrInvalidNode, n, "operator '%s' is missing an operand", n.Value())
		}
		if !n.Kind().IsOperator() {
			return 0, newError(ErrInvalidNode, n, "%s is not an arithmetic operator", n.Kind().ToString())
		}

		lh, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}

		rh, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}

		return apply(n, lh, rh)

	case nil:
		return 0, newError(ErrInvalidNode, nil, "nil node")
	}

	return 0, newError(ErrInvalidNode, node, "unexpected node type %T", node)
}

func apply(n *ast.BinaryOpNode, lh, rh int64) (int64, error) {
	switch n.Kind() {
	case scanner.TOK_PLUS:
		if (rh > 0 && lh > math.MaxInt64-rh) || (rh < 0 && lh < math.MinInt64-rh) {
			return 0, newError(ErrOverflow, n, "%d + %d overflows", lh, rh)
		}
		return lh + rh, nil

	case scanner.TOK_MINUS:
		if (rh < 0 && lh > math.MaxInt64+rh) || (rh > 0 && lh < math.MinInt64+rh) {
			return 0, newError(ErrOverflow, n, "%d - %d overflows", lh, rh)
		}
		return lh - rh, nil

	case scanner.TOK_STAR:
		if lh == 0 || rh == 0 {
			return 0, nil
		}
		product := lh * rh
		if product/rh != lh || (lh == -1 && rh == math.MinInt64) || (rh == -1 && lh == math.MinInt64) {
			return 0, newError(ErrOverflow, n, "%d * %d overflows", lh, rh)
		}
		return product, nil

	case scanner.TOK_SLASH:
		if rh == 0 {
			return 0, newError(ErrDivisionByZero, n, "%d / 0", lh)
		}
		if lh == math.MinInt64 && rh == -1 {
			return 0, newError(ErrOverflow, n, "%d / %d overflows", lh, rh)
		}
		// Go's integer division already truncates toward zero
		return lh / rh, nil
	}

	return 0, newError(ErrInvalidNode, n, "%s is not an arithmetic operator", n.Kind().ToString())
}
