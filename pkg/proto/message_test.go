/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var result Message

func TestParseMessage(t *testing.T) {
	tt := []struct {
		test    string
		buf     []byte
		err     bool
		command string
		data    string
	}{
		{
			"Test empty message",
			[]byte("\r\n"),
			true,
			"",
			"",
		},
		{
			"Test leading space",
			[]byte(" EVAL 1"),
			true,
			"",
			"",
		},
		{
			"Test simple message",
			[]byte("eval 1 + 2\n"),
			false,
			"EVAL",
			"1 + 2",
		},
		{
			"Test command only",
			[]byte("INFO\r\n"),
			false,
			"INFO",
			"",
		},
		{
			"Test data keeps inner spaces",
			[]byte("TOKENS  ( 1 )"),
			false,
			"TOKENS",
			" ( 1 )",
		},
	}

	for _, tc := range tt {
		t.Run(tc.test, func(t *testing.T) {
			msg, err := ParseMessage(tc.buf)
			if tc.err {
				assert.ErrorIs(t, err, ErrMalformedMessage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.command, msg.Command)
			assert.Equal(t, tc.data, string(msg.Data))
		})
	}
}

func TestMessageMarshal(t *testing.T) {
	b, err := NewMessage("eval", []byte("1+2")).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "EVAL 1+2\n", string(b))

	b, err = NewMessage(CommandInfo, nil).Marshal()
	require.NoError(t, err)
	assert.Equal(t, "INFO\n", string(b))

	_, err = NewMessage(CommandEval, []byte("1\n2")).Marshal()
	assert.ErrorIs(t, err, ErrMalformedMessage)

	_, err = Message{}.Marshal()
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestReadMessage(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("EVAL 1+2\nINFO\nAST (3)"))

	msg, err := ReadMessage(r)
	require.NoError(t, err)
	assert.Equal(t, CommandEval, msg.Command)
	assert.Equal(t, "1+2", string(msg.Data))

	msg, err = ReadMessage(r)
	require.NoError(t, err)
	assert.Equal(t, CommandInfo, msg.Command)

	// The last line has no terminator but is still a message
	msg, err = ReadMessage(r)
	require.NoError(t, err)
	assert.Equal(t, CommandAST, msg.Command)
	assert.Equal(t, "(3)", string(msg.Data))

	_, err = ReadMessage(r)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReadMessageTooLong(t *testing.T) {
	long := "EVAL " + strings.Repeat("1+", MaxMessageSize)
	r := bufio.NewReader(strings.NewReader(long + "\nINFO\n"))

	_, err := ReadMessage(r)
	assert.ErrorIs(t, err, ErrMalformedMessage)

	// The rest of the long line is skipped
	msg, err := ReadMessage(r)
	require.NoError(t, err)
	assert.Equal(t, CommandInfo, msg.Command)

	_, err = ReadMessage(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMessageLimit(t *testing.T) {
	// The smallest buffer bufio allows, so lines span several reads
	r := bufio.NewReaderSize(strings.NewReader("EVAL 1 + 2 + 3 + 4 + 5\nEVAL 1 + 2 + 3 + 4 + 5 + 6\nINFO"), 16)

	msg, err := ReadMessageLimit(r, 24)
	require.NoError(t, err)
	assert.Equal(t, "1 + 2 + 3 + 4 + 5", string(msg.Data))

	_, err = ReadMessageLimit(r, 24)
	assert.ErrorIs(t, err, ErrMalformedMessage)

	msg, err = ReadMessageLimit(r, 24)
	require.NoError(t, err)
	assert.Equal(t, CommandInfo, msg.Command)

	// No limit
	line := "EVAL " + strings.Repeat("1+", MaxMessageSize) + "1\n"
	msg, err = ReadMessageLimit(bufio.NewReader(strings.NewReader(line)), 0)
	require.NoError(t, err)
	assert.Len(t, msg.Data, 2*MaxMessageSize+1)
}

func TestResponseWriterRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)
	rw := NewResponseWriter(buf)

	_, err := rw.WriteMessage(NewMessageWithType(CommandOk, ResultResponse{Value: -42}))
	require.NoError(t, err)

	msg, err := ReadMessage(bufio.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, CommandOk, msg.Command)

	resp := ResultResponse{}
	require.NoError(t, Unmarshal(msg.Data, &resp))
	assert.Equal(t, int64(-42), resp.Value)
}

func BenchmarkReadMessage(b *testing.B) {
	line, _ := NewMessageWithType(CommandError, MessageErrorCommandNotFound).Marshal()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ret, _ := ReadMessage(bufio.NewReader(bytes.NewReader(line)))
		result = ret
	}
}

func TestExpressionRequest(t *testing.T) {
	req := ExpressionRequest{Expression: "(1 +\n2)\r\n* 3"}

	b, err := Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "\n")

	// Marshaled requests always fit on one protocol line
	_, err = NewMessageWithType(CommandEval, req).Marshal()
	require.NoError(t, err)

	got := ExpressionRequest{}
	require.NoError(t, got.Unmarshal(b))
	assert.Equal(t, "(1 + 2)  * 3", got.Expression)
}

func TestErrResponse(t *testing.T) {
	req := ErrResponse{Code: 422, Kind: "DivisionByZero", Message: "5 / 0"}

	b, err := req.Marshal()
	require.NoError(t, err)

	got := ErrResponse{}
	require.NoError(t, got.Unmarshal(b))
	assert.Equal(t, req, got)
	assert.Equal(t, "422 DivisionByZero: 5 / 0", got.Error())
}

func TestTokensResponse(t *testing.T) {
	req := TokensResponse{Tokens: []TokenInfo{
		{Type: "TOK_INTEGER", Lexeme: "1", Start: 0, End: 1},
		{Type: "TOK_PLUS", Lexeme: "+", Start: 2, End: 3},
	}}

	b, err := req.Marshal()
	require.NoError(t, err)

	got := TokensResponse{}
	require.NoError(t, got.Unmarshal(b))
	assert.Equal(t, req, got)

	assert.Equal(t, []string{"type", "lexeme", "start", "end"}, got.Headers())
	assert.Equal(t, [][]string{
		{"TOK_INTEGER", "1", "0", "1"},
		{"TOK_PLUS", "+", "2", "3"},
	}, got.Values())
}

func TestASTResponseSurvivesNewlines(t *testing.T) {
	req := ASTResponse{Dump: "BinaryOpNode[+]\n    IntegerNode[1]\n    IntegerNode[2]\n", Infix: "(1 + 2)", Nodes: 3}

	line, err := NewMessageWithType(CommandOk, req).Marshal()
	require.NoError(t, err)

	msg, err := ParseMessage(line)
	require.NoError(t, err)

	got := ASTResponse{}
	require.NoError(t, got.Unmarshal(msg.Data))
	assert.Equal(t, req, got)
}
