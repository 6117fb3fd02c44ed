/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

type Request struct {
	msg  Message
	conn string
}

// NewRequest creates a new request from the line message and the id of the
// connection it arrived on
func NewRequest(msg Message, conn string) *Request {
	return &Request{
		msg:  msg,
		conn: conn,
	}
}

// Conn retrieves the id of the connection the request arrived on
func (r *Request) Conn() string {
	return r.conn
}

// Command retrieves the command from the request
func (r *Request) Command() string {
	return r.msg.Command
}

// Data retrieves the data portion of the line message
func (r *Request) Data() []byte {
	return r.msg.Data
}

// Message retrieves the line message itself
func (r *Request) Message() Message {
	return r.msg
}
