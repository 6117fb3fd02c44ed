/*
 * Copyright (c) 2023, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"testing"

	"github.com/dburkart/sigc/pkg/proto"
)

func TestRender(t *testing.T) {
	tt := []struct {
		test   string
		cmd    string
		resp   proto.Message
		out    string
		errOut string
	}{
		{
			"Test result",
			proto.CommandEval,
			proto.NewMessageWithType(proto.CommandOk, proto.ResultResponse{Value: 9}),
			"value\n9\n",
			"",
		},
		{
			"Test ast",
			proto.CommandAST,
			proto.NewMessageWithType(proto.CommandOk, proto.ASTResponse{Dump: "IntegerNode[1]\n", Infix: "1", Nodes: 1}),
			"infix,nodes,dump\n1,1,IntegerNode[1]\n",
			"",
		},
		{
			"Test error",
			proto.CommandEval,
			proto.NewMessageWithType(proto.CommandError, proto.ErrResponse{Code: 422, Kind: "DivisionByZero", Message: "boom"}),
			"",
			"422 DivisionByZero: boom\n",
		},
	}

	for _, tc := range tt {
		t.Run(tc.test, func(t *testing.T) {
			out, errOut := new(bytes.Buffer), new(bytes.Buffer)
			if err := Render(NewOutputWriter(out, "csv"), errOut, tc.cmd, tc.resp); err != nil {
				t.Fatal(err)
			}
			if out.String() != tc.out {
				t.Errorf("wanted %q, got %q", tc.out, out.String())
			}
			if errOut.String() != tc.errOut {
				t.Errorf("wanted %q, got %q", tc.errOut, errOut.String())
			}
		})
	}

	err := Render(NewOutputWriter(new(bytes.Buffer), "csv"), new(bytes.Buffer), "APPEND", proto.NewMessage(proto.CommandOk, nil))
	if err == nil {
		t.Error("expected an error rendering an unknown command")
	}
}
