// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cliteral renders byte sequences as C source literals.
//
// StringLiteral produces a sequence of adjacent hex-escaped string literals
// which the C compiler concatenates, while ArrayLiteral produces the body of a
// brace initializer where each byte is wrapped in the single argument macro
// named by Wrapper.  Generated sources must define the macro with
// WrapperDefine before any array body and release it with WrapperUndef.
package cliteral

import "strings"

// Null is the literal emitted for an empty byte sequence.
const Null = "NULL"

// Wrapper is the name of the macro wrapping each ArrayLiteral token.
const Wrapper = "_"

// WrapperDefine and WrapperUndef are the preprocessor lines defining and
// releasing Wrapper.  The macro pastes the two hex digits onto a 0x prefix and
// casts the result to uchar.
const (
	WrapperDefine = "#define " + Wrapper + "(v) ((uchar)0x##v)"
	WrapperUndef  = "#undef " + Wrapper
)

const hextable = "0123456789abcdef"

// StringLiteral returns data as hex-escaped C string literals.  A new quoted
// token begins every 8 bytes and a new line every 32 bytes.  An empty data
// returns Null rather than an empty string literal.
func StringLiteral(data []byte) string {
	if len(data) == 0 {
		return Null
	}

	var b strings.Builder
	b.Grow(len(data)*4 + (len(data)/8+1)*3)
	b.WriteByte('"')
	for i, c := range data {
		switch {
		case i == 0:
		case i%32 == 0:
			b.WriteString("\n\"")
		case i%8 == 0:
			b.WriteString(" \"")
		}
		b.WriteString(`\x`)
		b.WriteByte(hextable[c>>4])
		b.WriteByte(hextable[c&0x0f])
		if i%8 == 7 {
			b.WriteByte('"')
		}
	}
	if len(data)%8 != 0 {
		b.WriteByte('"')
	}
	return b.String()
}

// ArrayLiteral returns the comma separated elements of a C array initializer
// holding data, one Wrapper(hh) token per byte.  A line break separates every
// 16 tokens and an extra space every 8.
//
// ArrayLiteral panics if data is empty since C forbids empty initializers.
func ArrayLiteral(data []byte) string {
	if len(data) == 0 {
		panic("cliteral: ArrayLiteral called with empty data")
	}

	const tokenLen = len(Wrapper) + len("(hh)")
	var b strings.Builder
	b.Grow(len(data)*(tokenLen+1) + len(data)/8)
	for i, c := range data {
		switch {
		case i == 0:
		case i%16 == 0:
			b.WriteString(",\n")
		case i%8 == 0:
			b.WriteString(", ")
		default:
			b.WriteByte(',')
		}
		b.WriteString(Wrapper)
		b.WriteByte('(')
		b.WriteByte(hextable[c>>4])
		b.WriteByte(hextable[c&0x0f])
		b.WriteByte(')')
	}
	return b.String()
}
