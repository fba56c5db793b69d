package story

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

type memKV map[string][]byte

func (m memKV) Get(_ context.Context, key string, dst any) (bool, error) {
	data, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (m memKV) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m[key] = data
	return nil
}

func TestDefaultStory(t *testing.T) {
	st := Default()
	if st.Title != "The Wise Carpenter" {
		t.Fatalf("unexpected title: %q", st.Title)
	}
	if !strings.HasPrefix(st.Text, "A wise carpenter") {
		t.Fatalf("unexpected text: %q", st.Text)
	}
	if _, ok := st.Translation("HI"); !ok {
		t.Fatalf("expected hindi translation")
	}
	if _, ok := st.Translation("fr"); ok {
		t.Fatalf("unexpected french translation")
	}
}

func TestNewIDIsULID(t *testing.T) {
	id := NewID()
	if _, err := ulid.Parse(id); err != nil {
		t.Fatalf("invalid id %q: %v", id, err)
	}
	if NewID() == id {
		t.Fatalf("expected distinct ids")
	}
}

func TestNewIDConcurrent(t *testing.T) {
	const workers, perWorker = 8, 50
	ids := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ids <- NewID()
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := map[string]struct{}{}
	for id := range ids {
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d ids, got %d", workers*perWorker, len(seen))
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fox.yaml")
	content := "title: The Fox\ntext: |\n  A quick fox\n  jumps.\ntranslations:\n  HI: लोमड़ी\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Title != "The Fox" || st.Text != "A quick fox jumps." {
		t.Fatalf("unexpected story: %+v", st)
	}
	if st.ID == "" {
		t.Fatalf("expected generated id")
	}
	if tr, ok := st.Translation("hi"); !ok || tr != "लोमड़ी" {
		t.Fatalf("unexpected translation: %q", tr)
	}
}

func TestLoadFileYAMLUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("title: x\ntext: y\nauthor: z\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadFilePlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morning walk.txt")
	if err := os.WriteFile(path, []byte("  The sun\nrose.  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Title != "morning walk" || st.Text != "The sun rose." {
		t.Fatalf("unexpected story: %+v", st)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte(" \n\t"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for empty story")
	}
}

func TestLibraryDefaultsAndAdd(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(memKV{})

	cur, err := lib.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur.ID != Default().ID {
		t.Fatalf("expected default story, got %q", cur.ID)
	}

	added := Story{ID: "a", Title: "A", Text: "alpha"}
	if err := lib.Add(ctx, added); err != nil {
		t.Fatalf("add: %v", err)
	}
	list, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != Default().ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	sel, err := lib.Select(ctx, Default().ID)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.ID != Default().ID {
		t.Fatalf("unexpected selection: %q", sel.ID)
	}
	list, _ = lib.List(ctx)
	if len(list) != 2 || list[0].ID != Default().ID {
		t.Fatalf("expected default first after select: %+v", list)
	}
	if _, err := lib.Select(ctx, "missing"); err == nil {
		t.Fatalf("expected error for missing story")
	}
}

func TestLibraryBounded(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(memKV{})
	for i := 0; i < MaxStories+5; i++ {
		if err := lib.Add(ctx, Story{ID: NewID(), Title: "t", Text: "x"}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	list, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != MaxStories {
		t.Fatalf("expected %d stories, got %d", MaxStories, len(list))
	}
}
