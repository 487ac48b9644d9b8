// Copyright (c) 2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"fmt"
	"testing"
)

func TestNormalizeVerString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"rc1", "rc1"},
		{"rc 1", "rc1"},
		{"a+b_c.d", "abc.d"},
		{"~!@#", ""},
	}
	for _, test := range tests {
		if got := normalizeVerString(test.in); got != test.want {
			t.Errorf("normalizeVerString(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	savedPre, savedMeta := PreRelease, BuildMetadata
	defer func() { PreRelease, BuildMetadata = savedPre, savedMeta }()

	base := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
	PreRelease, BuildMetadata = "", ""
	if got := String(); got != base {
		t.Fatalf("got %q, want %q", got, base)
	}
	PreRelease, BuildMetadata = "beta", "abc123"
	if got, want := String(), base+"-beta+abc123"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	PreRelease, BuildMetadata = "$$$", "x"
	if got, want := String(), base+"+x"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
