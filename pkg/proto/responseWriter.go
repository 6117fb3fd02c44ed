/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"io"
)

type ResponseWriter struct {
	w io.Writer
}

// NewResponseWriter ...
func NewResponseWriter(w io.Writer) ResponseWriter {
	return ResponseWriter{
		w: w,
	}
}

func (rw ResponseWriter) Write(b []byte) (int, error) {
	return rw.w.Write(b)
}

// WriteMessage writes m as a single protocol line
func (rw ResponseWriter) WriteMessage(m Message) (int, error) {
	b, err := m.Marshal()
	if err != nil {
		return 0, err
	}

	return rw.w.Write(b)
}
