// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vectorgen emits C declarations of hash test vectors.
//
// Each test case with a non-empty message becomes a standalone uchar array
// named <name>_test_<i>, where i counts emitted arrays only.  A final
// aggregate array <name> of <type> records references every emitted array by
// pointer and size alongside the expected digest, and is terminated by a
// { NULL, 0UL, { 0 } } sentinel record so consumers can iterate without a
// separate length.
package vectorgen

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/decred/cavpgen/cliteral"
	"github.com/decred/cavpgen/errors"
	"github.com/decred/cavpgen/rsp"
)

// SentinelRecord terminates every aggregate array.
const SentinelRecord = "{ NULL, 0UL, { 0 } }"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName returns an Invalid error if name can not be used as a C
// identifier.
func ValidName(name string) error {
	if !identPattern.MatchString(name) {
		return errors.E(errors.Op("vectorgen.ValidName"), errors.Invalid,
			errors.Errorf("%q is not a valid C identifier", name))
	}
	return nil
}

// TypeName returns the test vector record type for the hash algorithm alg.
func TypeName(alg string) string {
	return "fd_" + alg + "_test_vector_t"
}

// indent prefixes every line of s with prefix.
func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

// errWriter records the first write error and turns later writes into
// no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *errWriter) println(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s+"\n")
}

// Generator writes the declarations for one test vector array.  Test cases are
// passed to WriteTest in order, followed by a single call to Finish.
type Generator struct {
	// Name is the identifier of the aggregate array and the prefix of the
	// per-case message arrays.
	Name string

	// TypeName is the C type of the aggregate records.
	TypeName string

	digests [][]byte
	skipped int
}

// NewGenerator returns a Generator emitting the aggregate array name of type
// typeName.
func NewGenerator(name, typeName string) *Generator {
	return &Generator{Name: name, TypeName: typeName}
}

func (g *Generator) testName(i int) string {
	return fmt.Sprintf("%s_test_%d", g.Name, i)
}

// Emitted returns the number of message arrays written so far.
func (g *Generator) Emitted() int {
	return len(g.digests)
}

// WriteTest writes the message array of tc and records its digest for
// Finish.  Test cases with an empty message write nothing and are left out of
// the aggregate since there is no array to reference.
func (g *Generator) WriteTest(w io.Writer, tc rsp.TestCase) error {
	const op errors.Op = "vectorgen.WriteTest"

	if len(tc.Msg) == 0 {
		g.skipped++
		log.Tracef("Skipping empty message case (digest %x)", tc.MD)
		return nil
	}

	ew := &errWriter{w: w}
	ew.printf("static uchar const %s[] = {\n", g.testName(len(g.digests)))
	ew.println(indent(cliteral.ArrayLiteral(tc.Msg), "  "))
	ew.println("};")
	if ew.err != nil {
		return errors.E(op, errors.IO, ew.err)
	}

	g.digests = append(g.digests, tc.MD)
	return nil
}

// Finish writes the aggregate array of every test case accepted by WriteTest,
// terminated by SentinelRecord.
func (g *Generator) Finish(w io.Writer) error {
	const op errors.Op = "vectorgen.Finish"

	ew := &errWriter{w: w}
	ew.printf("static %s const %s[] = {\n", g.TypeName, g.Name)
	for i, md := range g.digests {
		name := g.testName(i)
		ew.printf("  { (char const *)%s, sizeof(%s),\n", name, name)
		ew.printf("%s },\n", indent(cliteral.StringLiteral(md), "    "))
	}
	ew.println("  " + SentinelRecord)
	ew.println("};\n")
	if ew.err != nil {
		return errors.E(op, errors.IO, ew.err)
	}

	log.Debugf("Wrote %s with %d vectors (%d empty messages skipped)",
		g.Name, len(g.digests), g.skipped)
	return nil
}
