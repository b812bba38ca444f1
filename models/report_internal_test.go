package models

import "testing"

func TestThumbnailKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"reports/abc.png", "reports/thumb_abc.jpg"},
		{"reports/abc.jpeg", "reports/thumb_abc.jpg"},
		{"reports/noext", "reports/thumb_noext.jpg"},
	}
	for _, tc := range cases {
		if got := thumbnailKey(tc.key); got != tc.want {
			t.Fatalf("thumbnailKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
