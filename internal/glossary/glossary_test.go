package glossary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLookupNormalizesToken(t *testing.T) {
	g := Default()
	got, ok := g.Lookup("hi", `"Measure`)
	if !ok || got != "मापो" {
		t.Fatalf("unexpected lookup: %q %v", got, ok)
	}
	got, ok = g.Lookup("TE", "task.")
	if !ok || got != "పని" {
		t.Fatalf("unexpected lookup: %q %v", got, ok)
	}
}

func TestLookupMissing(t *testing.T) {
	g := Default()
	if _, ok := g.Lookup("hi", "He"); ok {
		t.Fatalf("expected miss for unknown word")
	}
	if _, ok := g.Lookup("hi", "123"); ok {
		t.Fatalf("expected miss for empty key")
	}
	if _, ok := g.Lookup("fr", "wise"); ok {
		t.Fatalf("expected miss for unknown language")
	}
}

func TestSuggest(t *testing.T) {
	g := Default()
	got, ok := g.Suggest("hi", "carpentr")
	if !ok || got != "carpenter" {
		t.Fatalf("unexpected suggestion: %q %v", got, ok)
	}
	if _, ok := g.Suggest("hi", "zzzz"); ok {
		t.Fatalf("expected no suggestion")
	}
}

func TestLoadFileAndMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.toml")
	content := "[HI]\n\"River,\" = \"नदी\"\nwise = \"ज्ञानी\"\n\n[fr]\nwise = \"sage\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, ok := loaded.Lookup("hi", "river"); !ok || got != "नदी" {
		t.Fatalf("unexpected loaded entry: %q %v", got, ok)
	}

	g := Default()
	g.Merge(loaded)
	if got, _ := g.Lookup("hi", "wise"); got != "ज्ञानी" {
		t.Fatalf("expected override, got %q", got)
	}
	if got, _ := g.Lookup("hi", "carpenter"); got != "बढ़ई" {
		t.Fatalf("expected default entry kept, got %q", got)
	}
	if !reflect.DeepEqual(g.Languages(), []string{"fr", "hi", "te"}) {
		t.Fatalf("unexpected languages: %v", g.Languages())
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[hi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
