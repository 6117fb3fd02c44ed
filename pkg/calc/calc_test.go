/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package calc

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitStringsEvaluateToThemselves(t *testing.T) {
	for _, s := range []string{"0", "7", "10", "305", "123456789", "9223372036854775807"} {
		want, err := strconv.ParseInt(s, 10, 64)
		require.NoError(t, err)

		outcome := Run(s)
		require.True(t, outcome.Ok(), "%s: %v", s, outcome.Err)
		assert.Equal(t, want, outcome.Value, s)
	}
}

func TestProperties(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  int64
	}{
		{"left associative subtraction", "8-3-2", 3},
		{"left associative mixed", "2*3-4", 2},
		{"precedence", "1+2*3", 7},
		{"parens override precedence", "(1+2)*3", 9},
		{"deep nesting", "((((5))))", 5},
		{"truncating division", "7/2", 3},
		{"truncating negative division", "(0-7)/2", -3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := Run(tc.input)
			require.NoError(t, outcome.Err)
			assert.Equal(t, tc.want, outcome.Value)
			assert.Equal(t, KindNone, outcome.Kind())
		})
	}
}

func TestWhitespaceDoesNotMatter(t *testing.T) {
	assert.Equal(t, Run("1+2"), Run("1 + 2"))
	assert.Equal(t, Run("(1+2)*3"), Run(" ( 1\t+ 2 )\n* 3 "))
	assert.Equal(t, Run("4/2"), Run("4 ÷/ 2"))
}

func TestFailureKinds(t *testing.T) {
	testCases := []struct {
		input string
		kind  Kind
	}{
		{"", KindUnexpectedEndOfInput},
		{"(1+2", KindUnexpectedEndOfInput},
		{"1+", KindUnexpectedEndOfInput},
		{"+1", KindUnexpectedToken},
		{"(1+2]3", KindUnexpectedToken},
		{"1 2", KindUnexpectedToken},
		{"99999999999999999999", KindIntegerOverflow},
		{"5/0", KindDivisionByZero},
		{"9223372036854775807*2", KindOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			outcome := Run(tc.input)
			require.Error(t, outcome.Err)
			assert.False(t, outcome.Ok())
			assert.Equal(t, tc.kind, outcome.Kind())
			assert.Zero(t, outcome.Value)
		})
	}
}

func TestNestingTooDeepKind(t *testing.T) {
	input := strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000)

	outcome := Run(input)
	require.Error(t, outcome.Err)
	assert.Equal(t, KindNestingTooDeep, outcome.Kind())
	assert.Equal(t, "NestingTooDeep", outcome.Kind().String())
}

func TestInvalidNodeKind(t *testing.T) {
	_, err := Evaluate(nil)
	assert.Equal(t, KindInvalidNode, KindOf(err))
}

type kindedError struct{}

func (kindedError) Error() string { return "kinded" }
func (kindedError) Kind() Kind    { return KindDivisionByZero }

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("something else")))
	assert.Equal(t, KindDivisionByZero, KindOf(kindedError{}))
	assert.Equal(t, KindDivisionByZero, KindOf(fmt.Errorf("wrapped: %w", kindedError{})))

	outcome := Run("1/0")
	assert.Equal(t, KindDivisionByZero, KindOf(fmt.Errorf("wrapped: %w", outcome.Err)))
}

func TestKindNames(t *testing.T) {
	for k := KindNone; k <= KindUnknown; k++ {
		assert.Equal(t, k, ParseKind(k.String()))
	}

	assert.Equal(t, "DivisionByZero", KindDivisionByZero.String())
	assert.Equal(t, KindUnknown, ParseKind("NoSuchKind"))
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestPipelineLogs(t *testing.T) {
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(level)

	buf := new(bytes.Buffer)
	p := NewPipeline(zerolog.New(buf).Level(zerolog.TraceLevel))

	outcome := p.Run("(1 + 2) * 3")
	require.NoError(t, outcome.Err)
	assert.Equal(t, int64(9), outcome.Value)

	assert.Contains(t, buf.String(), `"tokens":7`)
	assert.Contains(t, buf.String(), `"nodes":5`)

	buf.Reset()
	outcome = p.Run("1/0")
	assert.Equal(t, KindDivisionByZero, outcome.Kind())
	assert.Contains(t, buf.String(), `"kind":"DivisionByZero"`)
}

func TestConcurrentPipelines(t *testing.T) {
	p := NewPipeline(zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]Outcome, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Run(fmt.Sprintf("%d * (2 + 1)", i))
		}(i)
	}
	wg.Wait()

	for i, outcome := range results {
		require.NoError(t, outcome.Err)
		assert.Equal(t, int64(i*3), outcome.Value)
	}
}
