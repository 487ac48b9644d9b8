// Copyright (c) 2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"strings"

	"github.com/decred/cavpgen/errors"
)

// Algorithm specifies a supported hash algorithm through a constant value.
type Algorithm int

// Supported algorithms.
const (
	SHA256 Algorithm = iota
	SHA384
	SHA512
	numAlgorithms
)

var algorithmNames = [numAlgorithms]string{
	SHA256: "sha256",
	SHA384: "sha384",
	SHA512: "sha512",
}

// String returns the lower case name of a, as used in record type names and
// on the command line.
func (a Algorithm) String() string {
	if a < 0 || a >= numAlgorithms {
		return "unknown"
	}
	return algorithmNames[a]
}

// AlgorithmNames returns the names of all supported algorithms.
func AlgorithmNames() []string {
	return append([]string(nil), algorithmNames[:]...)
}

// AlgorithmFlag describes a hash algorithm and implements the flags.Marshaler
// and Unmarshaler interfaces so it can be used as a config struct field.
type AlgorithmFlag struct {
	alg Algorithm
	set bool
}

// NewAlgorithmFlag creates an AlgorithmFlag with a default algorithm.
func NewAlgorithmFlag(defaultValue Algorithm) *AlgorithmFlag {
	return &AlgorithmFlag{alg: defaultValue}
}

// Algorithm returns the selected algorithm.
func (f *AlgorithmFlag) Algorithm() Algorithm {
	return f.alg
}

// IsSet returns whether the flag was assigned by UnmarshalFlag.
func (f *AlgorithmFlag) IsSet() bool {
	return f.set
}

// MarshalFlag satisifes the flags.Marshaler interface.
func (f *AlgorithmFlag) MarshalFlag() (string, error) {
	return f.alg.String(), nil
}

// UnmarshalFlag satisifes the flags.Unmarshaler interface.  Names are matched
// case insensitively and may be written with a dash, e.g. SHA-256.
func (f *AlgorithmFlag) UnmarshalFlag(value string) error {
	name := strings.ToLower(strings.Replace(value, "-", "", 1))
	for i, n := range algorithmNames {
		if name == n {
			f.alg = Algorithm(i)
			f.set = true
			return nil
		}
	}
	return errors.E(errors.Invalid, errors.Errorf("unsupported algorithm %q (supported: %s)",
		value, strings.Join(algorithmNames[:], ", ")))
}
