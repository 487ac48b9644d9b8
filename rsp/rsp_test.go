// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rsp

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/decred/cavpgen/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

var shortMsgCases = []TestCase{
	{
		Msg: []byte{},
		MD:  hexToBytes("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"),
	},
	{
		Msg: hexToBytes("d3"),
		MD:  hexToBytes("28969cdfa74a12c82f3bad960b0b000aca2ac329deea5c2328ebc6f2ba9802c1"),
	},
	{
		Msg: hexToBytes("11af"),
		MD:  hexToBytes("5ca7133fa735326081558ac312c620eeca9970d1e70a4b95533d956f072d1f98"),
	},
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TestCase
	}{{
		name: "three cases in file order",
		input: `[L = 3]
Len = 1
Msg = 01
MD = a1
Len = 1
Msg = 02
MD = a2
Len = 1
Msg = 03
MD = a3
`,
		want: []TestCase{
			{Msg: []byte{0x01}, MD: []byte{0xa1}},
			{Msg: []byte{0x02}, MD: []byte{0xa2}},
			{Msg: []byte{0x03}, MD: []byte{0xa3}},
		},
	}, {
		name: "message truncated to Len",
		input: `[L = 1]
Len = 2
Msg = aabbccdd
MD = ff
`,
		want: []TestCase{{Msg: []byte{0xaa, 0xbb}, MD: []byte{0xff}}},
	}, {
		name: "zero length message",
		input: `[L = 1]
Len = 0
Msg = 00
MD = 0102
`,
		want: []TestCase{{Msg: []byte{}, MD: []byte{0x01, 0x02}}},
	}, {
		name: "Len larger than payload keeps payload",
		input: `[L = 1]
Len = 64
Msg = 0a0b
MD = 0c
`,
		want: []TestCase{{Msg: []byte{0x0a, 0x0b}, MD: []byte{0x0c}}},
	}, {
		name: "noise between fields is skipped",
		input: `# CAVS 11.0
# comment

[L = 1]

COUNT = 7
Len = 1
  Msg = ee
Msg = AB
# between
MD = CD
`,
		want: []TestCase{{Msg: []byte{0xab}, MD: []byte{0xcd}}},
	}, {
		name:  "trailing whitespace permitted",
		input: "[L = 1]\nLen = 1  \nMsg = 10\t\nMD = 20 \n",
		want:  []TestCase{{Msg: []byte{0x10}, MD: []byte{0x20}}},
	}, {
		name:  "CRLF line endings",
		input: "[L = 1]\r\nLen = 1\r\nMsg = 10\r\nMD = 20\r\n",
		want:  []TestCase{{Msg: []byte{0x10}, MD: []byte{0x20}}},
	}, {
		name: "cases beyond count are ignored",
		input: `[L = 1]
Len = 1
Msg = 01
MD = 11
Len = 1
Msg = 02
MD = 12
`,
		want: []TestCase{{Msg: []byte{0x01}, MD: []byte{0x11}}},
	}, {
		name:  "zero count",
		input: "[L = 0]\n",
		want:  []TestCase{},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(test.input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("cases mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  errors.Kind
	}{
		{"empty input", "", errors.Malformed},
		{"no count marker", "Len = 0\nMsg = 00\nMD = 00\n", errors.Malformed},
		{"no Len after marker", "[L = 1]\n", errors.Malformed},
		{"no Msg", "[L = 1]\nLen = 1\nMD = 00\n", errors.Malformed},
		{"no MD", "[L = 1]\nLen = 1\nMsg = 00\n", errors.Malformed},
		{"second case incomplete", "[L = 2]\nLen = 1\nMsg = 00\nMD = 00\nLen = 1\nMsg = 01\n", errors.Malformed},
		{"malformed Len", "[L = 1]\nLen = 1x\nMsg = 00\nMD = 00\n", errors.Malformed},
		{"count overflow", "[L = 99999999999999999999999]\n", errors.Malformed},
		{"odd length Msg", "[L = 1]\nLen = 1\nMsg = abc\nMD = 00\n", errors.Encoding},
		{"odd length MD", "[L = 1]\nLen = 1\nMsg = ab\nMD = 0\n", errors.Encoding},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cases, err := Parse(strings.NewReader(test.input))
			if err == nil {
				t.Fatalf("Parse succeeded with %d cases, want error", len(cases))
			}
			if cases != nil {
				t.Errorf("Parse returned partial result %v", cases)
			}
			if !errors.Is(test.kind, err) {
				t.Errorf("got error %v, want kind %v", err, test.kind)
			}
		})
	}
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(iotest.ErrTimeout))
	if !errors.Is(errors.IO, err) {
		t.Fatalf("got %v, want I/O error", err)
	}
}

func TestParseLongLine(t *testing.T) {
	msg := bytes.Repeat([]byte{0x5a}, 100*1024)
	input := "[L = 1]\nLen = " + "102400" + "\nMsg = " + hex.EncodeToString(msg) + "\nMD = 01\n"
	cases, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || !bytes.Equal(cases[0].Msg, msg) {
		t.Fatalf("long message was not parsed intact")
	}
}

func TestParseFile(t *testing.T) {
	cases, err := ParseFile(filepath.Join("testdata", "SHA256ShortMsg.rsp"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(shortMsgCases, cases, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("cases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileNotExist(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "missing.rsp"))
	if !errors.Is(errors.NotExist, err) {
		t.Fatalf("got %v, want not exist error", err)
	}
}

func TestParseFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rsp")
	if err := os.WriteFile(path, []byte("[L = 1]\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := ParseFile(path)
	if !errors.Is(errors.Malformed, err) {
		t.Fatalf("got %v, want malformed error", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}
