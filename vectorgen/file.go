// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vectorgen

import (
	"io"

	"github.com/decred/cavpgen/cliteral"
	"github.com/decred/cavpgen/errors"
	"github.com/decred/cavpgen/rsp"
)

// Config describes a generated include file.
type Config struct {
	// Algorithm selects the record type, see TypeName.
	Algorithm string

	// Name is the aggregate array identifier.
	Name string

	// Source is the response file name recorded in the file comment.
	Source string
}

// Generate writes a complete C include holding cases to w.  The file defines
// the cliteral wrapper macro around the declarations and releases it at the
// end so the include can be used multiple times in one translation unit.
func Generate(w io.Writer, cfg Config, cases []rsp.TestCase) error {
	const op errors.Op = "vectorgen.Generate"

	if err := ValidName(cfg.Name); err != nil {
		return errors.E(op, err)
	}
	if cfg.Algorithm == "" {
		return errors.E(op, errors.Invalid, "no algorithm")
	}

	ew := &errWriter{w: w}
	ew.printf("/* This file was auto-generated by cavpgen as part of the Firedancer project.\n\n"+
		"   File name: %s */\n\n", cfg.Source)
	ew.println(cliteral.WrapperDefine)
	ew.println("")
	if ew.err != nil {
		return errors.E(op, errors.IO, ew.err)
	}

	g := NewGenerator(cfg.Name, TypeName(cfg.Algorithm))
	for _, tc := range cases {
		if err := g.WriteTest(w, tc); err != nil {
			return errors.E(op, err)
		}
	}
	ew.println("")
	if ew.err != nil {
		return errors.E(op, errors.IO, ew.err)
	}
	if err := g.Finish(w); err != nil {
		return errors.E(op, err)
	}

	ew.println(cliteral.WrapperUndef)
	if ew.err != nil {
		return errors.E(op, errors.IO, ew.err)
	}
	return nil
}
