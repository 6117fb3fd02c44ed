/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrIntegerOverflow      = errors.New("integer literal out of range")
	ErrNestingTooDeep       = errors.New("nesting too deep")
)

type SyntaxError struct {
	Kind     error
	Location Location
	Message  string
}

func NewSyntaxError(kind error, t Token, m string) SyntaxError {
	return SyntaxError{Kind: kind, Location: t.Location, Message: m}
}

func (s SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d: %s", s.Kind, s.Location.Start, s.Message)
}

func (s SyntaxError) Unwrap() error {
	return s.Kind
}

// FormatError renders input with a marker under the offending span. The
// marker is placed by rune, so multi-byte characters before the span don't
// push it to the right.
func (s *SyntaxError) FormatError(input string) string {
	start := clampOffset(input, s.Location.Start)
	end := clampOffset(input, s.Location.End)
	if end < start {
		end = start
	}

	column := utf8.RuneCountInString(input[:start])
	repeat := utf8.RuneCountInString(input[start:end]) - 1
	if repeat < 0 {
		repeat = 0
	}

	errorString := "Syntax error found in expression:\n"
	errorString += input
	errorString += fmt.Sprintf("\n%s^%s ", strings.Repeat(" ", column), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", s.Message)
	return errorString
}

// clampOffset bounds a byte offset to input
func clampOffset(input string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(input) {
		return len(input)
	}
	return offset
}
