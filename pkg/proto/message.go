/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dburkart/sigc/pkg/common/parse"
	"github.com/rs/zerolog"
)

var (
	ErrMalformedMessage = errors.New("malformed message")

	MessageErrorUnmarshaling     = ErrResponse{Code: 506, Kind: "Protocol", Message: "unable to unmarshal request"}
	MessageErrorCommandNotFound  = ErrResponse{Code: 404, Kind: "Protocol", Message: "command not found"}
	MessageErrorMarshalingResult = ErrResponse{Code: 500, Kind: "Protocol", Message: "unable to marshal response"}
)

// Message is one line of the wire protocol: a command, a single space, and
// the command's data, terminated by a newline.
type Message struct {
	Command string
	Data    []byte
}

func NewMessage(cmd string, data []byte) Message {
	return Message{Command: strings.ToUpper(cmd), Data: data}
}

// NewMessageWithType marshals t as the data of a cmd message. If t can't be
// marshaled the result is an ERR message describing why.
func NewMessageWithType(cmd string, t Marshaler) Message {
	b, err := t.Marshal()
	if err != nil {
		b, _ = MessageErrorMarshalingResult.Marshal()
		return NewMessage(CommandError, b)
	}
	return NewMessage(cmd, b)
}

// ParseMessage parses a single protocol line. Trailing line terminators are
// ignored, and a line without a space is a command with no data.
func ParseMessage(b []byte) (Message, error) {
	ret := Message{}

	b = bytes.TrimRight(b, "\r\n")
	if len(bytes.TrimSpace(b)) == 0 {
		return ret, ErrMalformedMessage
	}

	ind := bytes.IndexByte(b, ' ')
	if ind == -1 {
		ret.Command = strings.ToUpper(string(b))
		return ret, nil
	}

	ret.Command = strings.ToUpper(string(b[0:ind]))
	if ret.Command == "" {
		return Message{}, ErrMalformedMessage
	}
	ret.Data = b[ind+1:]

	return ret, nil
}

// MaxMessageSize is the longest line ReadMessage accepts, terminator
// included.
const MaxMessageSize = 64 * 1024

// ReadMessage reads and parses the next line from r. A line longer than
// MaxMessageSize is consumed and reported as ErrMalformedMessage, leaving r
// at the start of the following line.
func ReadMessage(r *bufio.Reader) (Message, error) {
	return ReadMessageLimit(r, MaxMessageSize)
}

// ReadMessageLimit is ReadMessage with a line limit of limit bytes. A limit
// of zero or less reads lines of any length.
func ReadMessageLimit(r *bufio.Reader, limit int) (Message, error) {
	var line []byte
	tooLong := false

	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if limit > 0 && len(line)+len(chunk) > limit {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && len(line) == 0 && !tooLong {
			return Message{}, err
		}
		break
	}

	if tooLong {
		return Message{}, fmt.Errorf("%w: line longer than %d bytes", ErrMalformedMessage, limit)
	}
	return ParseMessage(line)
}

// Marshal encodes the message as a newline terminated line.
func (m Message) Marshal() ([]byte, error) {
	if m.Command == "" || strings.ContainsAny(m.Command, " \n") {
		return nil, fmt.Errorf("%w: invalid command %q", ErrMalformedMessage, m.Command)
	}
	if bytes.IndexByte(m.Data, '\n') != -1 {
		return nil, fmt.Errorf("%w: data contains a newline", ErrMalformedMessage)
	}

	buf := new(bytes.Buffer)
	buf.WriteString(m.Command)
	if len(m.Data) > 0 {
		buf.WriteByte(' ')
		buf.Write(m.Data)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (m Message) MarshalZerologObject(e *zerolog.Event) {
	e.Str("command", m.Command).Bytes("data", m.Data)
}

func Marshal(t Marshaler) ([]byte, error) {
	return t.Marshal()
}

func Unmarshal(b []byte, t Unmarshaler) error {
	return t.Unmarshal(b)
}

type Marshaler interface {
	Marshal() ([]byte, error)
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

type (
	ExpressionRequest struct {
		Expression string
	}

	InfoRequest struct{}

	ErrResponse struct {
		Code    uint32 `json:"code"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}

	ResultResponse struct {
		Value int64 `json:"value"`
	}

	TokenInfo struct {
		Type   string `json:"type"`
		Lexeme string `json:"lexeme"`
		Start  int    `json:"start"`
		End    int    `json:"end"`
	}

	TokensResponse struct {
		Tokens []TokenInfo `json:"tokens"`
	}

	ASTResponse struct {
		Dump  string `json:"dump"`
		Infix string `json:"infix"`
		Nodes int    `json:"nodes"`
	}

	InfoResponse struct {
		Version     string `json:"version"`
		Uptime      string `json:"uptime"`
		Evaluations string `json:"evaluations"`
	}
)

// ExpressionRequest
// --------------------------

// Marshal flattens line breaks to spaces. The scanner skips both, so the
// expression means the same thing on the other end.
func (rq ExpressionRequest) Marshal() ([]byte, error) {
	return []byte(strings.NewReplacer("\r", " ", "\n", " ").Replace(rq.Expression)), nil
}

// Unmarshal ...
func (rq *ExpressionRequest) Unmarshal(b []byte) error {
	rq.Expression = string(b)
	return nil
}

// InfoRequest
// --------------------------

// Marshal ...
func (rq InfoRequest) Marshal() ([]byte, error) {
	return []byte{}, nil
}

// Unmarshal ...
func (rq *InfoRequest) Unmarshal(b []byte) error {
	return nil
}

// ErrResponse
// --------------------------

func (rq ErrResponse) Error() string {
	return fmt.Sprintf("%d %s: %s", rq.Code, rq.Kind, rq.Message)
}

// Marshal ...
func (rq ErrResponse) Marshal() ([]byte, error) {
	return json.Marshal(rq)
}

// Unmarshal ...
func (rq *ErrResponse) Unmarshal(b []byte) error {
	return json.Unmarshal(b, rq)
}

// ResultResponse
// --------------------------

// Marshal ...
func (rq ResultResponse) Marshal() ([]byte, error) {
	return json.Marshal(rq)
}

// Unmarshal ...
func (rq *ResultResponse) Unmarshal(b []byte) error {
	return json.Unmarshal(b, rq)
}

func (rq ResultResponse) Headers() []string {
	return []string{"value"}
}

func (rq ResultResponse) Values() [][]string {
	return [][]string{{fmt.Sprint(rq.Value)}}
}

// TokensResponse
// --------------------------

func NewTokensResponse(tokens []parse.Token) TokensResponse {
	ret := TokensResponse{Tokens: make([]TokenInfo, 0, len(tokens))}
	for _, t := range tokens {
		ret.Tokens = append(ret.Tokens, TokenInfo{
			Type:   t.Type.ToString(),
			Lexeme: t.Lexeme,
			Start:  t.Location.Start,
			End:    t.Location.End,
		})
	}
	return ret
}

// Marshal ...
func (rq TokensResponse) Marshal() ([]byte, error) {
	return json.Marshal(rq)
}

// Unmarshal ...
func (rq *TokensResponse) Unmarshal(b []byte) error {
	return json.Unmarshal(b, rq)
}

// Headers and Values make the response Printable
func (rq TokensResponse) Headers() []string {
	return []string{"type", "lexeme", "start", "end"}
}

func (rq TokensResponse) Values() [][]string {
	ret := make([][]string, 0, len(rq.Tokens))
	for _, t := range rq.Tokens {
		ret = append(ret, []string{t.Type, t.Lexeme, fmt.Sprint(t.Start), fmt.Sprint(t.End)})
	}
	return ret
}

// ASTResponse
// --------------------------

// Marshal ...
func (rq ASTResponse) Marshal() ([]byte, error) {
	return json.Marshal(rq)
}

// Unmarshal ...
func (rq *ASTResponse) Unmarshal(b []byte) error {
	return json.Unmarshal(b, rq)
}

func (rq ASTResponse) Headers() []string {
	return []string{"infix", "nodes", "dump"}
}

func (rq ASTResponse) Values() [][]string {
	return [][]string{{rq.Infix, fmt.Sprint(rq.Nodes), strings.TrimRight(rq.Dump, "\n")}}
}

// InfoResponse
// --------------------------

// Marshal ...
func (rq InfoResponse) Marshal() ([]byte, error) {
	return json.Marshal(rq)
}

// Unmarshal ...
func (rq *InfoResponse) Unmarshal(b []byte) error {
	return json.Unmarshal(b, rq)
}

func (rq InfoResponse) Headers() []string {
	return []string{"version", "uptime", "evaluations"}
}

func (rq InfoResponse) Values() [][]string {
	return [][]string{{rq.Version, rq.Uptime, rq.Evaluations}}
}

// Printable is a response that can be rendered as a table
type Printable interface {
	Headers() []string
	Values() [][]string
}
