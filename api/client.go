/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sigc

import (
	"fmt"

	"github.com/dburkart/sigc/pkg/calc"
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/pkg/errors"
)

// RemoteError is a failure reported by the server in an ERR response. It
// still classifies with calc.KindOf.
type RemoteError struct {
	Response proto.ErrResponse
}

func (e *RemoteError) Error() string {
	return e.Response.Message
}

func (e *RemoteError) Kind() calc.Kind {
	return calc.ParseKind(e.Response.Kind)
}

func (e *RemoteError) Code() uint32 {
	return e.Response.Code
}

// decode unpacks resp into t, or into a RemoteError if resp is an ERR.
func decode(resp proto.Message, t proto.Unmarshaler) error {
	switch resp.Command {
	case proto.CommandOk:
		return errors.Wrap(proto.Unmarshal(resp.Data, t), "unable to unmarshal response")
	case proto.CommandError:
		remote := &RemoteError{}
		if err := remote.Response.Unmarshal(resp.Data); err != nil {
			return errors.Wrap(err, "unable to unmarshal error response")
		}
		return remote
	}
	return fmt.Errorf("unexpected response %q", resp.Command)
}

func expression(cmd, expr string) proto.Message {
	return proto.NewMessageWithType(cmd, proto.ExpressionRequest{Expression: expr})
}

func evaluate(c Client, expr string) (int64, error) {
	resp, err := c.Send(expression(proto.CommandEval, expr))
	if err != nil {
		return 0, err
	}

	result := proto.ResultResponse{}
	if err := decode(resp, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

func tokens(c Client, expr string) ([]proto.TokenInfo, error) {
	resp, err := c.Send(expression(proto.CommandTokens, expr))
	if err != nil {
		return nil, err
	}

	result := proto.TokensResponse{}
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return result.Tokens, nil
}

func tree(c Client, expr string) (proto.ASTResponse, error) {
	resp, err := c.Send(expression(proto.CommandAST, expr))
	if err != nil {
		return proto.ASTResponse{}, err
	}

	result := proto.ASTResponse{}
	err = decode(resp, &result)
	return result, err
}

func info(c Client) (proto.InfoResponse, error) {
	resp, err := c.Send(proto.NewMessageWithType(proto.CommandInfo, proto.InfoRequest{}))
	if err != nil {
		return proto.InfoResponse{}, err
	}

	result := proto.InfoResponse{}
	err = decode(resp, &result)
	return result, err
}
