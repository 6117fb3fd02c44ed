/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dburkart/sigc/pkg/calc"
	"github.com/dburkart/sigc/pkg/proto"
	"github.com/rs/zerolog"
)

// Version is reported by INFO
var Version = "develop"

type Server struct {
	log      zerolog.Logger
	metrics  MetricsStore
	pipeline calc.Pipeline
	mux      MessageMux
	msgSrv   *MessageServer

	started     time.Time
	evaluations atomic.Int64

	port        int
	metricsPort int
}

func New(log zerolog.Logger, port, metricsPort int) *Server {
	metrics := NewMetricsStore()

	s := &Server{
		log:         log,
		metrics:     metrics,
		pipeline:    calc.NewPipeline(log),
		msgSrv:      NewMessageServer(log, metrics),
		started:     time.Now(),
		port:        port,
		metricsPort: metricsPort,
	}
	s.mux = s.newMux()
	metrics.RegisterCollector(NewStatsCollector(s))

	return s
}

func (s *Server) newMux() MessageMux {
	mux := NewMapMux()

	mux.Handle(proto.CommandEval, s.instrument(func(r *proto.Request) proto.Message {
		rq := proto.ExpressionRequest{}
		if err := proto.Unmarshal(r.Data(), &rq); err != nil {
			return proto.NewMessageWithType(proto.CommandError, proto.MessageErrorUnmarshaling)
		}

		msg, kind := EvalResponse(rq, s.pipeline)
		s.evaluations.Add(1)
		s.metrics.IncEvaluations(kind.String())
		return msg
	}))

	mux.Handle(proto.CommandTokens, s.instrument(func(r *proto.Request) proto.Message {
		rq := proto.ExpressionRequest{}
		if err := proto.Unmarshal(r.Data(), &rq); err != nil {
			return proto.NewMessageWithType(proto.CommandError, proto.MessageErrorUnmarshaling)
		}
		return TokensResponse(rq)
	}))

	mux.Handle(proto.CommandAST, s.instrument(func(r *proto.Request) proto.Message {
		rq := proto.ExpressionRequest{}
		if err := proto.Unmarshal(r.Data(), &rq); err != nil {
			return proto.NewMessageWithType(proto.CommandError, proto.MessageErrorUnmarshaling)
		}
		return ASTResponse(rq)
	}))

	mux.Handle(proto.CommandInfo, s.instrument(func(r *proto.Request) proto.Message {
		return InfoResponse(Version, s.started, s.evaluations.Load())
	}))

	return mux
}

func (s *Server) instrument(f HandleMessage) HandleMessage {
	return func(r *proto.Request) proto.Message {
		start := time.Now()
		resp := f(r)

		s.metrics.IncRequests(r.Command())
		s.metrics.ObserveResponseNS(r.Command(), time.Since(start).Nanoseconds())
		s.log.Debug().
			Str("conn", r.Conn()).
			Str("cmd", r.Command()).
			Str("status", resp.Command).
			Msg("served request")

		return resp
	}
}

// Handle answers a single message without a transport
func (s *Server) Handle(msg proto.Message) proto.Message {
	return s.mux.ServeMessage(proto.NewRequest(msg, "local"))
}

func (s *Server) Metrics() MetricsStore {
	return s.metrics
}

// Evaluations is the number of EVAL requests served so far
func (s *Server) Evaluations() int64 {
	return s.evaluations.Load()
}

// ActiveConnections is the number of clients connected over TCP
func (s *Server) ActiveConnections() int64 {
	return s.msgSrv.Active()
}

func (s *Server) Uptime() time.Duration {
	return time.Since(s.started)
}

// Serve answers protocol requests on ln until it is closed
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening for client connections")
	return s.msgSrv.Serve(ln, s.mux)
}

func (s *Server) ServeCalculator() error {
	return s.msgSrv.ListenAndServe(s.port, s.mux)
}

func (s *Server) Close() error {
	return s.msgSrv.Close()
}

func (s *Server) ServeMetrics() error {
	s.log.Info().Int("port", s.metricsPort).Msg("/metrics endpoint started")

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", s.metricsPort), mux)
}
