package indexer

import "testing"

func TestShouldSkip(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{".git/config", true},
		{"project/.venv/lib", true},
		{"node_modules/pkg/index.js", true},
		{"src/main.py", false},
		{"a/b/target/debug/main.rs", true},
		{"vendor/lib.go", true},
		{"src/__pycache__/mod.pyc", true},
		{".hidden/file.py", true},
		{"src/module.pyc", true},
		{"lib/native.so", true},
		{"bin.py", false},
		{"src/out/gen.ts", true},
		{"outer/main.go", false},
		{".", false},
	}

	for _, tc := range cases {
		if got := ShouldSkip(tc.path); got != tc.want {
			t.Errorf("ShouldSkip(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
