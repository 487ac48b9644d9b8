// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cliteral

import (
	"encoding/hex"
	"strings"

	"github.com/decred/cavpgen/errors"
)

// isSpace reports whether c may separate adjacent literal tokens.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// DecodeStringLiteral reverses StringLiteral.  s must be Null or a sequence of
// whitespace separated string literals containing only \xhh escapes.
func DecodeStringLiteral(s string) ([]byte, error) {
	const op errors.Op = "cliteral.DecodeStringLiteral"

	s = strings.TrimSpace(s)
	if s == Null {
		return nil, nil
	}
	if s == "" {
		return nil, errors.E(op, errors.Encoding, "empty literal")
	}

	var out []byte
	for i := 0; i < len(s); {
		if isSpace(s[i]) {
			i++
			continue
		}
		if s[i] != '"' {
			return nil, errors.E(op, errors.Encoding,
				errors.Errorf("expected '\"' at offset %d, found %q", i, s[i]))
		}
		i++
		for {
			if i >= len(s) {
				return nil, errors.E(op, errors.Encoding, "unterminated string literal")
			}
			if s[i] == '"' {
				i++
				break
			}
			if i+4 > len(s) || s[i] != '\\' || s[i+1] != 'x' {
				return nil, errors.E(op, errors.Encoding,
					errors.Errorf("expected \\x escape at offset %d", i))
			}
			v, err := hex.DecodeString(s[i+2 : i+4])
			if err != nil {
				return nil, errors.E(op, errors.Encoding, err)
			}
			out = append(out, v[0])
			i += 4
		}
	}
	if len(out) == 0 {
		return nil, errors.E(op, errors.Encoding, "literal contains no bytes")
	}
	return out, nil
}

// DecodeArrayLiteral reverses ArrayLiteral.  Each comma separated element of s
// must be a Wrapper(hh) token.
func DecodeArrayLiteral(s string) ([]byte, error) {
	const op errors.Op = "cliteral.DecodeArrayLiteral"

	if strings.TrimSpace(s) == "" {
		return nil, errors.E(op, errors.Encoding, "empty initializer")
	}
	elems := strings.Split(s, ",")
	out := make([]byte, 0, len(elems))
	for i, elem := range elems {
		tok := strings.TrimFunc(elem, func(r rune) bool {
			return r < 0x80 && isSpace(byte(r))
		})
		digits := strings.TrimPrefix(tok, Wrapper+"(")
		if digits == tok || !strings.HasSuffix(digits, ")") {
			return nil, errors.E(op, errors.Encoding,
				errors.Errorf("element %d: %q is not a %s(hh) token", i, tok, Wrapper))
		}
		digits = strings.TrimSuffix(digits, ")")
		if len(digits) != 2 {
			return nil, errors.E(op, errors.Encoding,
				errors.Errorf("element %d: want two hex digits, got %q", i, digits))
		}
		v, err := hex.DecodeString(digits)
		if err != nil {
			return nil, errors.E(op, errors.Encoding, err)
		}
		out = append(out, v[0])
	}
	return out, nil
}
