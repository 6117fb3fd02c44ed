/*
 * Copyright (c) 2023, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"io"

	"github.com/dburkart/sigc/pkg/proto"
)

// Render prints resp, the answer to a message sent with command cmd. ERR
// responses go to errOut.
func Render(w OutputWriter, errOut io.Writer, cmd string, resp proto.Message) error {
	if resp.Command == proto.CommandError {
		t := proto.ErrResponse{}
		if err := t.Unmarshal(resp.Data); err != nil {
			return err
		}
		_, err := fmt.Fprintf(errOut, "%d %s: %s\n", t.Code, t.Kind, t.Message)
		return err
	}

	var t interface {
		proto.Printable
		proto.Unmarshaler
	}

	switch cmd {
	case proto.CommandEval:
		t = &proto.ResultResponse{}
	case proto.CommandTokens:
		t = &proto.TokensResponse{}
	case proto.CommandAST:
		t = &proto.ASTResponse{}
	case proto.CommandInfo:
		t = &proto.InfoResponse{}
	default:
		return fmt.Errorf("no renderer for %s", cmd)
	}

	if err := t.Unmarshal(resp.Data); err != nil {
		return err
	}
	return w.Write(t)
}
