package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePrefs(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(p, Defaults()) {
		t.Fatalf("Load = %#v, want defaults", p)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writePrefs(t, filepath.Join(home, ".config", "curio", "prefs.toml"),
		"theme = \"Slate\"\nlast_path = \"/objects/4\"\nrecent = [4, 2]\n")

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Prefs{Theme: "Slate", LastPath: "/objects/4", Recent: []int64{4, 2}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("Load = %#v, want %#v", p, want)
	}
}

func TestLoad_NormalizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writePrefs(t, path, "theme = \"  \"\nrecent = [3, 0, 3, -1, 5]\n")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if want := []int64{3, 5}; !reflect.DeepEqual(p.Recent, want) {
		t.Fatalf("Recent = %v, want %v", p.Recent, want)
	}
}

func TestLoad_InvalidTOMLReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	writePrefs(t, path, "not valid toml {{{\n")

	p, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestSave_RoundTripsThroughNewDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	in := Prefs{Theme: "Slate", LastPath: "/objects/list", Recent: []int64{9}}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("Load = %#v, want %#v", out, in)
	}
}

func TestRemember(t *testing.T) {
	p := Defaults()
	p = p.Remember(1)
	p = p.Remember(2)
	p = p.Remember(1)
	p = p.Remember(0)
	if want := []int64{1, 2}; !reflect.DeepEqual(p.Recent, want) {
		t.Fatalf("Recent = %v, want %v", p.Recent, want)
	}

	for id := int64(1); id <= MaxRecent+5; id++ {
		p = p.Remember(id)
	}
	if len(p.Recent) != MaxRecent {
		t.Fatalf("len(Recent) = %d, want %d", len(p.Recent), MaxRecent)
	}
	if p.Recent[0] != MaxRecent+5 {
		t.Fatalf("Recent[0] = %d, want newest first", p.Recent[0])
	}
}
