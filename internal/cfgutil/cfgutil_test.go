// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/cavpgen/errors"
	"github.com/google/go-cmp/cmp"
)

func TestAlgorithmFlag(t *testing.T) {
	tests := []struct {
		value string
		want  Algorithm
	}{
		{"sha256", SHA256},
		{"sha384", SHA384},
		{"sha512", SHA512},
		{"SHA512", SHA512},
		{"SHA-384", SHA384},
	}
	for _, test := range tests {
		f := NewAlgorithmFlag(SHA256)
		if err := f.UnmarshalFlag(test.value); err != nil {
			t.Errorf("UnmarshalFlag(%q): %v", test.value, err)
			continue
		}
		if f.Algorithm() != test.want || !f.IsSet() {
			t.Errorf("UnmarshalFlag(%q): got %v (set %v), want %v", test.value,
				f.Algorithm(), f.IsSet(), test.want)
		}
		s, err := f.MarshalFlag()
		if err != nil || s != test.want.String() {
			t.Errorf("MarshalFlag after %q: got %q, %v", test.value, s, err)
		}
	}
}

func TestAlgorithmFlagUnsupported(t *testing.T) {
	for _, value := range []string{"", "md5", "sha1", "sha3-256", "sha256 ", "sha--256"} {
		f := NewAlgorithmFlag(SHA384)
		err := f.UnmarshalFlag(value)
		if !errors.Is(errors.Invalid, err) {
			t.Errorf("UnmarshalFlag(%q): got %v, want invalid error", value, err)
		}
		if f.Algorithm() != SHA384 || f.IsSet() {
			t.Errorf("UnmarshalFlag(%q) modified the flag", value)
		}
	}
}

func TestAlgorithmNames(t *testing.T) {
	want := []string{"sha256", "sha384", "sha512"}
	if diff := cmp.Diff(want, AlgorithmNames()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if Algorithm(-1).String() != "unknown" || numAlgorithms.String() != "unknown" {
		t.Fatal("out of range algorithm has a name")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exists")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if ok, err := FileExists(path); !ok || err != nil {
		t.Errorf("FileExists(existing) = %v, %v", ok, err)
	}
	if ok, err := FileExists(filepath.Join(dir, "missing")); ok || err != nil {
		t.Errorf("FileExists(missing) = %v, %v", ok, err)
	}
}

func TestCleanAndExpandPath(t *testing.T) {
	os.Setenv("CAVPGEN_TEST_DIR", "/tmp/vectors")
	defer os.Unsetenv("CAVPGEN_TEST_DIR")

	if got, want := CleanAndExpandPath("$CAVPGEN_TEST_DIR/a/../b.rsp"), filepath.Clean("/tmp/vectors/b.rsp"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := CleanAndExpandPath("~/x.rsp"); got == "~/x.rsp" || filepath.Base(got) != "x.rsp" {
		t.Errorf("home directory not expanded: %q", got)
	}
}
