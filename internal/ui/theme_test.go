package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v", names)
	}
	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames() exposes internal slice")
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for from, want := range tests {
		if got := NextTheme(from); got != want {
			t.Errorf("NextTheme(%q) = %q, want %q", from, got, want)
		}
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox", got)
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
			if th.LevelColors[level] == "" {
				t.Errorf("%s theme has no color for %s", name, level)
			}
		}
	}
}
