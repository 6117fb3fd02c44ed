/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/dburkart/sigc/pkg/proto"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MessageMux interface {
	ServeMessage(r *proto.Request) proto.Message
	Handle(s string, f HandleMessage)
}

type HandleMessage func(*proto.Request) proto.Message

type MapMux struct {
	mu       sync.RWMutex
	handlers map[string]HandleMessage
}

func NewMapMux() MessageMux {
	return &MapMux{
		handlers: make(map[string]HandleMessage),
	}
}

// ServeMessage routes r to the handler registered for its command. Unknown
// commands get a 404 ERR response.
func (mm *MapMux) ServeMessage(r *proto.Request) proto.Message {
	mm.mu.RLock()
	f, ok := mm.handlers[r.Command()]
	mm.mu.RUnlock()

	if !ok {
		return proto.NewMessageWithType(proto.CommandError, proto.MessageErrorCommandNotFound)
	}
	return f(r)
}

func (mm *MapMux) Handle(s string, f HandleMessage) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.handlers[s] = f
}

type MessageServer struct {
	log     zerolog.Logger
	metrics MetricsStore

	active atomic.Int64

	mu sync.Mutex
	ln net.Listener
}

func NewMessageServer(log zerolog.Logger, metrics MetricsStore) *MessageServer {
	return &MessageServer{
		log:     log,
		metrics: metrics,
	}
}

// Active is the number of connections currently being served
func (ms *MessageServer) Active() int64 {
	return ms.active.Load()
}

func (ms *MessageServer) ListenAndServe(port int, mux MessageMux) error {
	sock, err := net.ListenTCP("tcp", &net.TCPAddr{Port: port})
	if err != nil {
		ms.log.Error().Err(err).Int("port", port).Msg("unable to listen on server port")
		return err
	}
	ms.log.Info().Int("port", port).Msg("listening for client connections")

	return ms.Serve(sock, mux)
}

// Serve accepts connections on ln until it is closed. Each connection is
// handled on its own goroutine.
func (ms *MessageServer) Serve(ln net.Listener, mux MessageMux) error {
	ms.mu.Lock()
	ms.ln = ln
	ms.mu.Unlock()

	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			ms.log.Error().Err(err).Msg("unable to accept connection")
			return err
		}

		ms.metrics.IncClientConnection()
		ms.active.Add(1)

		cn := newConn(ms.log, mux)
		go func() {
			defer ms.active.Add(-1)
			cn.Handle(c)
		}()
	}
}

// Close stops accepting connections. Connections already being served run
// until their clients hang up.
func (ms *MessageServer) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.ln == nil {
		return nil
	}
	return ms.ln.Close()
}

type conn struct {
	log zerolog.Logger
	id  string
	c   net.Conn

	mux MessageMux
}

func newConn(log zerolog.Logger, mux MessageMux) *conn {
	id := uuid.NewString()
	return &conn{
		log: log.With().Str("conn", id).Logger(),
		id:  id,
		mux: mux,
	}
}

// Handle serves requests from c one line at a time, so responses are
// written in the order the requests arrived.
func (c *conn) Handle(nc net.Conn) {
	c.c = nc
	defer c.c.Close()

	c.log.Debug().Str("remote", nc.RemoteAddr().String()).Msg("client connected")

	r := bufio.NewReader(c.c)
	w := proto.NewResponseWriter(c.c)
	for {
		msg, err := proto.ReadMessage(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.log.Debug().Msg("client disconnected")
				return
			}
			if errors.Is(err, proto.ErrMalformedMessage) {
				c.log.Error().Err(err).Msg("error parsing message")
				if _, err := w.WriteMessage(proto.NewMessageWithType(proto.CommandError, proto.MessageErrorUnmarshaling)); err != nil {
					c.log.Error().Err(err).Msg("unable to write response")
					return
				}
				continue
			}
			c.log.Error().Err(err).Msg("error reading from the conn")
			return
		}
		c.log.Trace().Object("msg", msg).Msg("parsed message")

		resp := c.mux.ServeMessage(proto.NewRequest(msg, c.id))

		n, err := w.WriteMessage(resp)
		if err != nil {
			c.log.Error().Err(err).Msg("unable to write response")
			return
		}
		c.log.Trace().Int("wrote", n).Msg("wrote response")
	}
}
