package images

import "testing"

func TestDefaultResolverKnownPlayer(t *testing.T) {
	r := NewDefaultResolver()
	want := DefaultHeadshotBase + "2544.png"
	if got := r.Resolve("LeBron James"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := r.Resolve("  De'Aaron Fox "); got != DefaultHeadshotBase+"1628368.png" {
		t.Fatalf("expected trimmed lookup to resolve, got %s", got)
	}
	if !r.Known("Stephen Curry") {
		t.Fatalf("expected Stephen Curry to be known")
	}
}

func TestResolverFallsBackForUnknownNames(t *testing.T) {
	r := NewDefaultResolver()
	if got := r.Resolve("Unknown Rookie"); got != DefaultFallbackURL {
		t.Fatalf("expected fallback, got %s", got)
	}

	var nilResolver *HeadshotResolver
	if got := nilResolver.Resolve("LeBron James"); got != DefaultFallbackURL {
		t.Fatalf("nil resolver should return fallback, got %s", got)
	}
}

func TestCustomTableAndBase(t *testing.T) {
	ids := map[string]string{"Jane Doe": "42", "No Id": ""}
	r := NewHeadshotResolver(ids, "https://img.test/", "https://img.test/none.svg")
	ids["Jane Doe"] = "mutated"

	if got := r.Resolve("Jane Doe"); got != "https://img.test/42.png" {
		t.Fatalf("unexpected url %s", got)
	}
	if got := r.Resolve("No Id"); got != "https://img.test/none.svg" {
		t.Fatalf("empty id should fall back, got %s", got)
	}
}

func TestResolverFunc(t *testing.T) {
	var r Resolver = ResolverFunc(func(name string) string { return "img:" + name })
	if got := r.Resolve("x"); got != "img:x" {
		t.Fatalf("unexpected %s", got)
	}
}
