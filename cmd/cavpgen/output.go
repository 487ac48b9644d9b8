// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/decred/cavpgen/errors"
	"golang.org/x/crypto/ssh/terminal"
)

// writeOutput calls write with a buffered writer to the file at path, or to
// standard output when path is empty.  A file is written to a temporary name
// in the same directory and only renamed to path after write succeeds and ctx
// is still live.
func writeOutput(ctx context.Context, path string, write func(io.Writer) error) error {
	const op errors.Op = "writeOutput"

	if path == "" {
		if terminal.IsTerminal(int(os.Stdout.Fd())) {
			log.Warnf("Writing generated source to a terminal; " +
				"use --out or redirect standard output")
		}
		bw := bufio.NewWriter(os.Stdout)
		if err := write(bw); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return errors.E(op, errors.IO, err)
		}
		return nil
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	tmp := f.Name()
	defer func() {
		if f != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.E(op, errors.IO, err)
	}
	if err := f.Chmod(0644); err != nil {
		return errors.E(op, errors.IO, err)
	}
	if err := ctx.Err(); err != nil {
		return errors.E(op, err)
	}
	err = f.Close()
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		f = nil
		return errors.E(op, errors.IO, err)
	}
	f = nil
	return nil
}
