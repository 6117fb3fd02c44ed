/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

var (
	// CommandEval evaluates an expression and returns its value
	CommandEval = "EVAL"
	// CommandTokens returns the token sequence of an expression
	CommandTokens = "TOKENS"
	// CommandAST returns the parse tree of an expression
	CommandAST = "AST"
	// CommandInfo retrieves server version and counters
	CommandInfo = "INFO"
	// CommandOk carries a successful response
	CommandOk = "OK"
	// CommandError
	CommandError = "ERR"
)
