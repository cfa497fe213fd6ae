package repository

import "testing"

func TestCanonicalPair(t *testing.T) {
	cases := []struct {
		a, b, want1, want2 uint
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{9, 3, 3, 9},
		{5, 5, 5, 5},
	}
	for _, tc := range cases {
		u1, u2 := CanonicalPair(tc.a, tc.b)
		if u1 != tc.want1 || u2 != tc.want2 {
			t.Errorf("CanonicalPair(%d, %d) = (%d, %d), want (%d, %d)", tc.a, tc.b, u1, u2, tc.want1, tc.want2)
		}
		// Both argument orders converge on the same canonical pair.
		r1, r2 := CanonicalPair(tc.b, tc.a)
		if r1 != u1 || r2 != u2 {
			t.Errorf("CanonicalPair is order-sensitive: (%d,%d) vs (%d,%d)", u1, u2, r1, r2)
		}
	}
}
