/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"errors"
	"strings"

	"github.com/dburkart/sigc/pkg/proto"
)

var ErrEmptyCommand = errors.New("empty command")

// Commands understood by the REPL besides bare expressions
var Commands = []string{"eval", "tokens", "ast", "info"}

// ParseREPLCommand parses input from the command line. A line that doesn't
// start with one of Commands is evaluated as an expression.
//
// This function assumes there is no '\n'
func ParseREPLCommand(b []byte) (proto.Message, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return proto.Message{}, ErrEmptyCommand
	}

	// all commands have a space after them, if not then they are command only
	// like INFO
	cmd := b
	data := []byte{}
	if ind := bytes.IndexByte(b, ' '); ind != -1 {
		cmd = b[0:ind]
		data = b[ind+1:]
	}

	// Marshal message based on the command
	switch strings.ToUpper(string(cmd)) {
	case proto.CommandEval:
		return proto.NewMessageWithType(proto.CommandEval, proto.ExpressionRequest{Expression: string(data)}), nil
	case proto.CommandTokens:
		return proto.NewMessageWithType(proto.CommandTokens, proto.ExpressionRequest{Expression: string(data)}), nil
	case proto.CommandAST:
		return proto.NewMessageWithType(proto.CommandAST, proto.ExpressionRequest{Expression: string(data)}), nil
	case proto.CommandInfo:
		return proto.NewMessageWithType(proto.CommandInfo, proto.InfoRequest{}), nil
	}

	return proto.NewMessageWithType(proto.CommandEval, proto.ExpressionRequest{Expression: string(b)}), nil
}
