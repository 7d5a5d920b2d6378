package logger

import (
	"strings"
	"testing"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "zero limit", in: "hello", limit: 0, want: ""},
		{name: "under limit", in: "hello", limit: 10, want: "hello"},
		{name: "exact limit", in: "hello", limit: 5, want: "hello"},
		{name: "over limit", in: "hello world", limit: 5, want: "hello..."},
		{name: "trims whitespace", in: "  hi  ", limit: 10, want: "hi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.in, tc.limit); got != tc.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateForLogMultibyte(t *testing.T) {
	in := strings.Repeat("я", 20)
	got := TruncateForLog(in, 10)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len([]rune(got)) != 13 {
		t.Fatalf("expected 13 runes, got %d", len([]rune(got)))
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		l, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l == nil {
			t.Fatalf("expected logger instance")
		}
	}
}
