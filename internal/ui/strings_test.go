package ui

import (
	"encoding/json"
	"testing"
)

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"title", "Title"},
		{"date_created", "Date Created"},
		{"dateCreated", "Date Created"},
		{"accession-number", "Accession Number"},
		{"objectID", "Object Id"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := fieldLabel(tt.in); got != tt.want {
			t.Errorf("fieldLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  hello world ", 8); got != "hello..." {
		t.Fatalf("truncate = %q, want hello...", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate limit 0 = %q", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("/objects/list/with/a/long/path", 11)
	if len([]rune(got)) != 11 {
		t.Fatalf("got %q (%d runes), want 11", got, len([]rune(got)))
	}
}

func TestFieldValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"Ming"`, "Ming"},
		{`""`, "—"},
		{`null`, "—"},
		{`12.5`, "12.5"},
		{`true`, "true"},
		{`{"h":1}`, "{\n  \"h\": 1\n}"},
	}
	for _, tt := range tests {
		if got := fieldValue(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("fieldValue(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCycleOption(t *testing.T) {
	opts := []string{"a", "b"}
	steps := []struct{ from, want string }{
		{"", "a"},
		{"a", "b"},
		{"b", ""},
		{"unknown", "a"},
	}
	for _, s := range steps {
		if got := cycleOption(opts, s.from); got != s.want {
			t.Errorf("cycleOption(%q) = %q, want %q", s.from, got, s.want)
		}
	}
}
