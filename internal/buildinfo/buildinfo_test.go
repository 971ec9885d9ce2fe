package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	cases := []struct {
		version, commit, want string
	}{
		{version: "v1.2.0", commit: "abc123", want: "v1.2.0"},
		{version: "dev", commit: "abc123", want: "abc123"},
		{version: "", commit: "unknown", want: "dev"},
	}
	for _, tc := range cases {
		Version, Commit = tc.version, tc.commit
		if got := Short(); got != tc.want {
			t.Fatalf("Short() with %q/%q = %q, want %q", tc.version, tc.commit, got, tc.want)
		}
	}

	Version, Commit, Date = "v1", "abc", "2026-01-02"
	if got, want := Long(), "v1 (commit abc, built 2026-01-02)"; got != want {
		t.Fatalf("Long() = %q, want %q", got, want)
	}
}
