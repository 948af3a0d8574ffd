package cache

import (
	"testing"

	"github.com/pdiddy/pageforge/internal/vision"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer store.Close()

	key := Key("gpt-4o", "v1", []vision.Page{{Name: "p1.png", PNG: []byte("png-bytes")}})

	if _, ok, err := store.Get(key); err != nil || ok {
		t.Fatalf("Get before Put = (ok=%v, err=%v), want miss", ok, err)
	}

	if err := store.Put(key, "gpt-4o", `{"sections":[]}`); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok, err := store.Get(key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok || got != `{"sections":[]}` {
		t.Errorf("Get = (%q, %v), want cached response", got, ok)
	}
}

func TestStorePutReplaces(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer store.Close()

	if err := store.Put("k", "gpt-4o", "first"); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("k", "gpt-4o", "second"); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := store.Get("k")
	if !ok || got != "second" {
		t.Errorf("Get = (%q, %v), want replaced value", got, ok)
	}
}

func TestKeyStability(t *testing.T) {
	pages := []vision.Page{{Name: "a", PNG: []byte("one")}, {Name: "b", PNG: []byte("two")}}

	k1 := Key("gpt-4o", "v1", pages)
	k2 := Key("gpt-4o", "v1", pages)
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %s vs %s", k1, k2)
	}

	// Page order, model, and prompt version all participate.
	reversed := []vision.Page{pages[1], pages[0]}
	if Key("gpt-4o", "v1", reversed) == k1 {
		t.Error("page order does not affect key")
	}
	if Key("gpt-4o-mini", "v1", pages) == k1 {
		t.Error("model does not affect key")
	}
	if Key("gpt-4o", "v2", pages) == k1 {
		t.Error("prompt version does not affect key")
	}
}
