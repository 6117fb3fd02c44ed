/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sigc

import (
	"bufio"
	"io"
	"math"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/dburkart/sigc/pkg/proto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const reconnectAttempts = 3

// ErrClientClosed is returned by Send once Close has been called
var ErrClientClosed = errors.New("client is closed")

// A RemoteClient holds the connections used to talk to a sigc server.
type RemoteClient struct {
	log     zerolog.Logger
	target  proto.ConnectionString
	backoff time.Duration

	pool chan *remoteConn
	done chan struct{}

	mu     sync.Mutex
	closed bool
	// Connections taken out of the pool by a Send in progress
	busy map[*remoteConn]struct{}
}

type remoteConn struct {
	net.Conn
	r *bufio.Reader
}

func dial(addr string) (*remoteConn, error) {
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to %s", addr)
	}
	return &remoteConn{Conn: c, r: bufio.NewReader(c)}, nil
}

// disconnected reports whether err means the server went away
func disconnected(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed)
}

func (client *RemoteClient) reconnectWithBackoff() (*remoteConn, error) {
	var conn *remoteConn
	var err error

	base := client.backoff
	if base == 0 {
		base = time.Second
	}

	// With the default base, try for a total of 7 seconds
	for i := 0; i < reconnectAttempts; i++ {
		delay := time.Duration(math.Exp2(float64(i)))
		select {
		case <-time.After(delay * base):
		case <-client.done:
			return nil, ErrClientClosed
		}

		client.log.Debug().Int("attempt", i+1).Str("addr", client.target.Address).Msg("reconnecting")
		conn, err = dial(client.target.Address)
		if err == nil {
			return conn, nil
		}
	}

	return nil, err
}

func (client *RemoteClient) Open(connectionString proto.ConnectionString, size uint) error {
	client.target = connectionString
	if size == 0 {
		size = 1
	}
	client.pool = make(chan *remoteConn, size)
	client.done = make(chan struct{})
	client.busy = make(map[*remoteConn]struct{})

	for i := uint(0); i < size; i++ {
		c, err := dial(client.target.Address)
		if err != nil {
			client.Close()
			return err
		}
		client.pool <- c
	}

	return nil
}

// Close hangs up every connection, including those in use by a Send in
// progress. Those Sends return an error.
func (client *RemoteClient) Close() error {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed || client.pool == nil {
		return nil
	}
	client.closed = true
	close(client.done)

	var ret error
	hangUp := func(conn *remoteConn) {
		if err := conn.Close(); err != nil && ret == nil {
			ret = err
		}
	}

	for n := len(client.pool); n > 0; n-- {
		hangUp(<-client.pool)
	}
	for conn := range client.busy {
		hangUp(conn)
		delete(client.busy, conn)
	}
	return ret
}

// checkout takes a connection from the pool, waiting for one if they are
// all in use.
func (client *RemoteClient) checkout() (*remoteConn, error) {
	client.mu.Lock()
	pool, done, closed := client.pool, client.done, client.closed
	client.mu.Unlock()

	if pool == nil || closed {
		return nil, ErrClientClosed
	}

	var conn *remoteConn
	select {
	case conn = <-pool:
	case <-done:
		return nil, ErrClientClosed
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if client.closed {
		conn.Close()
		return nil, ErrClientClosed
	}
	client.busy[conn] = struct{}{}
	return conn, nil
}

// checkin gives conn back to the pool, or hangs it up if the client was
// closed while it was out.
func (client *RemoteClient) checkin(conn *remoteConn) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed {
		conn.Close()
		return
	}
	delete(client.busy, conn)
	client.pool <- conn
}

// replace swaps a dead connection for a fresh one in the busy set
func (client *RemoteClient) replace(old, conn *remoteConn) error {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.closed {
		conn.Close()
		return ErrClientClosed
	}
	delete(client.busy, old)
	client.busy[conn] = struct{}{}
	return nil
}

func (client *RemoteClient) isClosed() bool {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.closed
}

// Send a general message to the sigc server. If the server hung up, the
// connection is re-established and the message sent again.
func (client *RemoteClient) Send(m proto.Message) (proto.Message, error) {
	data, err := m.Marshal()
	if err != nil {
		return proto.Message{}, err
	}

	conn, err := client.checkout()
	if err != nil {
		return proto.Message{}, err
	}
	defer func() {
		client.checkin(conn)
	}()

	for attempt := 0; ; attempt++ {
		var resp proto.Message

		_, err = conn.Write(data)
		if err == nil {
			// Responses are trusted to be as long as they need to be
			resp, err = proto.ReadMessageLimit(conn.r, 0)
			if err == nil {
				return resp, nil
			}
		}

		if client.isClosed() {
			return proto.Message{}, ErrClientClosed
		}
		if !disconnected(err) || attempt == reconnectAttempts {
			return proto.Message{}, errors.Wrap(err, "unable to send message")
		}

		client.log.Debug().Err(err).Msg("lost connection to server")
		conn.Close()

		// Keep the dead connection in the pool if we can't replace it, the
		// next Send will try again.
		c, err := client.reconnectWithBackoff()
		if err != nil {
			return proto.Message{}, err
		}
		if err := client.replace(conn, c); err != nil {
			return proto.Message{}, err
		}
		conn = c
	}
}

func (client *RemoteClient) Evaluate(expr string) (int64, error) {
	return evaluate(client, expr)
}

func (client *RemoteClient) Tokens(expr string) ([]proto.TokenInfo, error) {
	return tokens(client, expr)
}

func (client *RemoteClient) AST(expr string) (proto.ASTResponse, error) {
	return tree(client, expr)
}

func (client *RemoteClient) Info() (proto.InfoResponse, error) {
	return info(client)
}
