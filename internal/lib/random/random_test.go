package random

import (
	"strings"
	"testing"
)

func TestNewRandomString(t *testing.T) {
	cases := []struct {
		name   string
		length int
	}{
		{
			name:   "Seed",
			length: 64,
		},
		{
			name:   "Short",
			length: 1,
		},
		{
			name:   "Empty",
			length: 0,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := NewRandomString(tc.length)
			if len(got) != tc.length {
				t.Errorf("unexpected length, want: %d, got: %d", tc.length, len(got))
			}

			for _, r := range got {
				if !strings.ContainsRune(charset, r) {
					t.Errorf("unexpected rune %q outside charset", r)
				}
			}
		})
	}
}

func TestNewRandomStringDiffers(t *testing.T) {
	a := NewRandomString(64)
	b := NewRandomString(64)

	if a == b {
		t.Errorf("two 64-char seeds collided: %s", a)
	}
}
