package routes

import (
	"reflect"
	"testing"
)

func TestCombinationsDeterministic(t *testing.T) {
	p := NewParams().
		AddValues("id", "b", "a").
		AddValues("lang", "en")

	got := p.Combinations()
	want := []map[string]string{
		{"id": "a", "lang": "en"},
		{"id": "b", "lang": "en"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCombinationsEmpty(t *testing.T) {
	if got := NewParams().Combinations(); got != nil {
		t.Fatalf("expected nil for no params, got %v", got)
	}
}

func TestConstructPath(t *testing.T) {
	got := ConstructPath("/crate/:id/docs/:page", map[string]string{"id": "pagegen", "page": "intro"})
	if got != "/crate/pagegen/docs/intro" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandSortedByPath(t *testing.T) {
	p := NewParams().AddValues("id", "zeta", "alpha")
	got := Expand("/crate/:id", p)
	if len(got) != 2 {
		t.Fatalf("expected 2 expansions, got %d", len(got))
	}
	if got[0].Path != "/crate/alpha" || got[1].Path != "/crate/zeta" {
		t.Fatalf("expansions not sorted: %v", got)
	}
	if got[0].Pattern != "/crate/:id" || got[0].Params["id"] != "alpha" {
		t.Fatalf("expansion fields wrong: %+v", got[0])
	}
}

func TestValueMetadata(t *testing.T) {
	p := NewParams().AddValues("id", "x")
	p.AddMetadata("id", "x", map[string]string{"title": "X"})

	md, ok := p.ValueMetadata("id", "x")
	if !ok || md["title"] != "X" {
		t.Fatalf("metadata lookup failed: %v %v", md, ok)
	}
	if _, ok := p.ValueMetadata("id", "y"); ok {
		t.Fatal("unexpected metadata for unknown value")
	}
}
