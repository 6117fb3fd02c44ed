/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package source finds the program text a command should run.
package source

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// DefaultFile is read when no other source is given
const DefaultFile = "program.sigc"

// Source is program text plus a name for it in messages
type Source struct {
	Name string
	Text string
}

func Read(path string) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Source{}, errors.Wrapf(err, "unable to read %s", path)
	}
	return Source{Name: path, Text: string(b)}, nil
}

// Resolve picks where a program comes from, in order: the expression given
// with -e, a file argument, stdin when it is not a terminal, and finally
// defaultFile.
func Resolve(args []string, expr string, stdin io.Reader, isTerminal bool, defaultFile string) (Source, error) {
	switch {
	case expr != "":
		return Source{Name: "<expr>", Text: expr}, nil
	case len(args) > 0:
		return Read(args[0])
	case stdin != nil && !isTerminal:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return Source{}, errors.Wrap(err, "unable to read stdin")
		}
		return Source{Name: "<stdin>", Text: string(b)}, nil
	}

	if defaultFile == "" {
		defaultFile = DefaultFile
	}
	return Read(defaultFile)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
