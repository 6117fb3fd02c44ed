/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"errors"
	"strings"
	"time"

	"github.com/dburkart/sigc/pkg/calc"
	"github.com/dburkart/sigc/pkg/calc/ast"
	"github.com/dburkart/sigc/pkg/common/parse"
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/dustin/go-humanize"
)

// Response codes carried by ERR messages
const (
	CodeSyntaxError     = 400
	CodeEvaluationError = 422
	CodeInternalError   = 500
)

// ErrorResponse turns a pipeline failure into an ERR message
func ErrorResponse(err error) proto.Message {
	kind := calc.KindOf(err)

	code := uint32(CodeEvaluationError)
	var syntaxError parse.SyntaxError
	switch {
	case errors.As(err, &syntaxError):
		code = CodeSyntaxError
	case kind == calc.KindInvalidNode || kind == calc.KindUnknown:
		code = CodeInternalError
	}

	return proto.NewMessageWithType(proto.CommandError, proto.ErrResponse{
		Code:    code,
		Kind:    kind.String(),
		Message: err.Error(),
	})
}

func EvalResponse(rq proto.ExpressionRequest, p calc.Pipeline) (proto.Message, calc.Kind) {
	outcome := p.Run(rq.Expression)
	if !outcome.Ok() {
		return ErrorResponse(outcome.Err), outcome.Kind()
	}
	return proto.NewMessageWithType(proto.CommandOk, proto.ResultResponse{Value: outcome.Value}), calc.KindNone
}

func TokensResponse(rq proto.ExpressionRequest) proto.Message {
	return proto.NewMessageWithType(proto.CommandOk, proto.NewTokensResponse(calc.Tokenize(rq.Expression)))
}

func ASTResponse(rq proto.ExpressionRequest) proto.Message {
	node, err := calc.Parse(calc.Tokenize(rq.Expression))
	if err != nil {
		return ErrorResponse(err)
	}

	return proto.NewMessageWithType(proto.CommandOk, proto.ASTResponse{
		Dump:  ast.Dump(node),
		Infix: ast.String(node),
		Nodes: ast.Count(node),
	})
}

func InfoResponse(version string, started time.Time, evaluations int64) proto.Message {
	return proto.NewMessageWithType(proto.CommandOk, proto.InfoResponse{
		Version:     version,
		Uptime:      strings.TrimSpace(humanize.RelTime(started, time.Now(), "", "")),
		Evaluations: humanize.Comma(evaluations),
	})
}
