//go:build !tinygo

package main

import "testing"

func TestParseBoard(t *testing.T) {
	cases := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{in: "30x30", w: 30, h: 30, ok: true},
		{in: "12X8", w: 12, h: 8, ok: true},
		{in: "30", ok: false},
		{in: "ax3", ok: false},
		{in: "3xb", ok: false},
	}
	for _, tc := range cases {
		w, h, err := parseBoard(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("parseBoard(%q) err = %v", tc.in, err)
		}
		if tc.ok && (w != tc.w || h != tc.h) {
			t.Fatalf("parseBoard(%q) = %d, %d", tc.in, w, h)
		}
	}
}
