/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package calc runs the lexer, parser and evaluator over a source buffer.
//
// Every stage consumes the whole output of the one before it:
//
//	input -> Tokenize -> []parse.Token -> Parse -> ast.ASTNode -> Evaluate -> int64
//
// A Pipeline holds no state besides its logger, so independent runs may
// happen concurrently.
package calc

import (
	"errors"
	"time"

	"github.com/dburkart/sigc/pkg/calc/ast"
	"github.com/dburkart/sigc/pkg/calc/eval"
	"github.com/dburkart/sigc/pkg/calc/parser"
	"github.com/dburkart/sigc/pkg/calc/scanner"
	"github.com/dburkart/sigc/pkg/common/parse"
	"github.com/rs/zerolog"
)

type Kind int

const (
	KindNone Kind = iota
	KindUnexpectedEndOfInput
	KindUnexpectedToken
	KindIntegerOverflow
	KindNestingTooDeep
	KindDivisionByZero
	KindOverflow
	KindInvalidNode
	KindUnknown
)

var kindNames = map[Kind]string{
	KindNone:                 "None",
	KindUnexpectedEndOfInput: "UnexpectedEndOfInput",
	KindUnexpectedToken:      "UnexpectedToken",
	KindIntegerOverflow:      "IntegerOverflow",
	KindNestingTooDeep:       "NestingTooDeep",
	KindDivisionByZero:       "DivisionByZero",
	KindOverflow:             "Overflow",
	KindInvalidNode:          "InvalidNode",
	KindUnknown:              "Unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKind is the inverse of Kind.String. Unrecognized names map to
// KindUnknown.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// KindOf classifies err. A nil error is KindNone.
func KindOf(err error) Kind {
	var kinded interface{ Kind() Kind }

	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &kinded):
		return kinded.Kind()
	case errors.Is(err, parse.ErrUnexpectedEndOfInput):
		return KindUnexpectedEndOfInput
	case errors.Is(err, parse.ErrUnexpectedToken):
		return KindUnexpectedToken
	case errors.Is(err, parse.ErrIntegerOverflow):
		return KindIntegerOverflow
	case errors.Is(err, parse.ErrNestingTooDeep):
		return KindNestingTooDeep
	case errors.Is(err, eval.ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, eval.ErrOverflow):
		return KindOverflow
	case errors.Is(err, eval.ErrInvalidNode):
		return KindInvalidNode
	}
	return KindUnknown
}

// Outcome is the result of one pipeline run: a value when Err is nil, a
// failure otherwise.
type Outcome struct {
	Value int64
	Err   error
}

func (o Outcome) Ok() bool {
	return o.Err == nil
}

func (o Outcome) Kind() Kind {
	return KindOf(o.Err)
}

func Tokenize(input string) []parse.Token {
	return scanner.Tokenize(input)
}

func Parse(tokens []parse.Token) (ast.ASTNode, error) {
	return parser.Parse(tokens)
}

func Evaluate(node ast.ASTNode) (int64, error) {
	return eval.Evaluate(node)
}

// Run evaluates input without logging.
func Run(input string) Outcome {
	return NewPipeline(zerolog.Nop()).Run(input)
}

type Pipeline struct {
	log zerolog.Logger
}

func NewPipeline(log zerolog.Logger) Pipeline {
	return Pipeline{log: log}
}

func (p Pipeline) Run(input string) Outcome {
	start := time.Now()

	tokens := Tokenize(input)
	p.log.Trace().Int("tokens", len(tokens)).Msg("tokenized input")

	node, err := Parse(tokens)
	if err != nil {
		p.log.Debug().Err(err).Str("kind", KindOf(err).String()).Msg("unable to parse input")
		return Outcome{Err: err}
	}
	p.log.Trace().Int("nodes", ast.Count(node)).Msg("parsed input")

	value, err := Evaluate(node)
	if err != nil {
		p.log.Debug().Err(err).Str("kind", KindOf(err).String()).Msg("unable to evaluate input")
		return Outcome{Err: err}
	}

	p.log.Trace().Int64("value", value).Dur("took", time.Since(start)).Msg("evaluated input")
	return Outcome{Value: value}
}
