/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sigc

import (
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/dburkart/sigc/pkg/server"
	"github.com/rs/zerolog"
)

// LocalClient answers requests in process with the same dispatcher the
// server uses.
type LocalClient struct {
	log    zerolog.Logger
	target proto.ConnectionString
	srv    *server.Server
}

func (client *LocalClient) Open(target proto.ConnectionString, _ uint) error {
	client.target = target
	client.srv = server.New(client.log, 0, 0)
	return nil
}

func (client *LocalClient) Close() error {
	return nil
}

func (client *LocalClient) Send(message proto.Message) (proto.Message, error) {
	return client.srv.Handle(message), nil
}

func (client *LocalClient) Evaluate(expr string) (int64, error) {
	return evaluate(client, expr)
}

func (client *LocalClient) Tokens(expr string) ([]proto.TokenInfo, error) {
	return tokens(client, expr)
}

func (client *LocalClient) AST(expr string) (proto.ASTResponse, error) {
	return tree(client, expr)
}

func (client *LocalClient) Info() (proto.InfoResponse, error) {
	return info(client)
}
