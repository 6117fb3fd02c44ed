/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sigc

import (
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/rs/zerolog"
)

type Client interface {
	Open(proto.ConnectionString, uint) error
	Close() error
	Send(proto.Message) (proto.Message, error)

	Evaluate(expr string) (int64, error)
	Tokens(expr string) ([]proto.TokenInfo, error)
	AST(expr string) (proto.ASTResponse, error)
	Info() (proto.InfoResponse, error)
}

// NewClient creates a new Client which evaluates expressions either in
// process or against a remote sigc server, depending on connstr. The client
// is thread safe, but only holds one connection at a time. For a client
// pool, use NewClientPool instead.
func NewClient(connstr string) (Client, error) {
	return NewClientPool(connstr, 1)
}

// NewClientPool creates a new Client which holds a pool of net.Conn
// resources open to a remote sigc server. Local clients ignore size.
func NewClientPool(connstr string, size uint) (Client, error) {
	return NewClientWithLogger(zerolog.Nop(), connstr, size)
}

func NewClientWithLogger(log zerolog.Logger, connstr string, size uint) (Client, error) {
	var client Client

	target, err := proto.ParseConnectionString(connstr)
	if err != nil {
		return nil, err
	}

	if target.Local {
		client = &LocalClient{log: log}
	} else {
		client = &RemoteClient{log: log}
	}

	err = client.Open(target, size)
	if err != nil {
		return nil, err
	}

	return client, nil
}
