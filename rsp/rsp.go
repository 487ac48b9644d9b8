// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rsp parses CAVP hash response files.
//
// A response file declares the digest length in a [L = n] section header and
// then lists test cases as Len, Msg and MD lines separated by comments, blank
// lines and other metadata:
//
//	[L = 32]
//
//	Len = 0
//	Msg = 00
//	MD = e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855
//
// The parser does not follow a strict grammar.  Each field is located by
// scanning forward to the next line matching it, so unrecognized lines between
// fields are skipped.  Running out of input before a required line is found is
// always an error.
package rsp

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/decred/cavpgen/errors"
)

// MaxLineSize is the longest line the parser accepts.  LongMsg files contain
// single Msg lines of several hundred kilobytes.
const MaxLineSize = 16 << 20

var (
	countPattern = regexp.MustCompile(`^\[L = (\d+)\]`)
	lenPattern   = regexp.MustCompile(`^Len = (\d+)\s*$`)
	msgPattern   = regexp.MustCompile(`^Msg = ([0-9a-fA-F]+)\s*$`)
	mdPattern    = regexp.MustCompile(`^MD = ([0-9a-fA-F]+)\s*$`)
)

// TestCase is a single message and its expected digest.  Msg may be empty.
type TestCase struct {
	Msg []byte
	MD  []byte
}

// lineScanner reads lines and tracks the current line number for error
// reporting.
type lineScanner struct {
	s    *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &lineScanner{s: s}
}

// find advances to the next line matching pattern and returns the first
// submatch.  field names the searched line in errors.
func (l *lineScanner) find(op errors.Op, pattern *regexp.Regexp, field string) (string, error) {
	for l.s.Scan() {
		l.line++
		line := strings.TrimSuffix(l.s.Text(), "\r")
		if m := pattern.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}
	if err := l.s.Err(); err != nil {
		return "", errors.E(op, errors.IO, errors.Errorf("line %d: %v", l.line+1, err))
	}
	return "", errors.E(op, errors.Malformed,
		errors.Errorf("no %s line found before end of input (read %d lines)", field, l.line))
}

// findInt locates the next line matching pattern and parses its capture as a
// non-negative integer.
func (l *lineScanner) findInt(op errors.Op, pattern *regexp.Regexp, field string) (int, error) {
	s, err := l.find(op, pattern, field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.E(op, errors.Malformed,
			errors.Errorf("line %d: %s value %q: %v", l.line, field, s, err))
	}
	return n, nil
}

// findHex locates the next line matching pattern and decodes its capture.
func (l *lineScanner) findHex(op errors.Op, pattern *regexp.Regexp, field string) ([]byte, error) {
	s, err := l.find(op, pattern, field)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.E(op, errors.Encoding,
			errors.Errorf("line %d: %s value: %v", l.line, field, err))
	}
	return b, nil
}

// Parse reads a response file from r and returns its test cases in file
// order.  No partial result is returned on error.
//
// Msg payloads are truncated to the preceding Len value, interpreted as a byte
// count.  This drops the placeholder 00 byte of zero length messages.
func Parse(r io.Reader) ([]TestCase, error) {
	const op errors.Op = "rsp.Parse"

	l := newLineScanner(r)
	count, err := l.findInt(op, countPattern, "[L = n]")
	if err != nil {
		return nil, err
	}
	log.Debugf("Response file declares %d test cases (line %d)", count, l.line)

	// The declared count is untrusted until that many cases are found.
	hint := count
	if hint > 1024 {
		hint = 1024
	}
	cases := make([]TestCase, 0, hint)
	for remaining := count; remaining > 0; remaining-- {
		msgLen, err := l.findInt(op, lenPattern, "Len")
		if err != nil {
			return nil, err
		}
		msg, err := l.findHex(op, msgPattern, "Msg")
		if err != nil {
			return nil, err
		}
		if msgLen < len(msg) {
			msg = msg[:msgLen]
		}
		md, err := l.findHex(op, mdPattern, "MD")
		if err != nil {
			return nil, err
		}

		log.Tracef("Case %d: %d byte message, %d byte digest", len(cases), len(msg), len(md))
		cases = append(cases, TestCase{Msg: msg, MD: md})
	}

	return cases, nil
}

// ParseFile opens the response file at path and parses it with Parse.
func ParseFile(path string) ([]TestCase, error) {
	const op errors.Op = "rsp.ParseFile"

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.E(op, errors.NotExist, err)
		}
		return nil, errors.E(op, errors.IO, err)
	}
	defer f.Close()

	cases, err := Parse(f)
	if err != nil {
		return nil, errors.E(errors.Opf("%s %s", op, path), err)
	}
	log.Debugf("Parsed %d test cases from %s", len(cases), path)
	return cases, nil
}
