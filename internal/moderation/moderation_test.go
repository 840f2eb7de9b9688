package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOffAllowsEverything(t *testing.T) {
	p := New(ModeOff, nil)
	if err := p.Allowed("fuck this damn thing"); err != nil {
		t.Fatalf("off mode rejected text: %v", err)
	}
}

func TestMildBlocksMildWords(t *testing.T) {
	p := New(ModeMild, nil)
	if err := p.Allowed("what the fuck"); !errors.Is(err, ErrFlagged) {
		t.Fatalf("want flagged, got %v", err)
	}
	if err := p.Allowed("hello there"); err != nil {
		t.Fatalf("clean text rejected: %v", err)
	}
	// Mild does not include the strict tier.
	if err := p.Allowed("well damn"); err != nil {
		t.Fatalf("strict word blocked in mild mode: %v", err)
	}
}

func TestStrictIncludesBothTiers(t *testing.T) {
	p := New(ModeStrict, nil)
	for _, text := range []string{"well damn", "what the fuck"} {
		if err := p.Allowed(text); !errors.Is(err, ErrFlagged) {
			t.Fatalf("%q: want flagged, got %v", text, err)
		}
	}
}

func TestPunctuationDoesNotSmuggle(t *testing.T) {
	p := New(ModeMild, nil)
	for _, text := range []string{"FUCK!", "so...fuck?yes", "Fuck,that"} {
		if err := p.Allowed(text); !errors.Is(err, ErrFlagged) {
			t.Fatalf("%q: want flagged, got %v", text, err)
		}
	}
	// Listed words inside longer words are not matched.
	if err := p.Allowed("I love shiitake mushrooms"); err != nil {
		t.Fatalf("substring false positive: %v", err)
	}
}

func TestBackendFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"flagged": true}},
		})
	}))
	defer srv.Close()

	p := New(ModeMild, NewClient("test-key", srv.URL))
	if err := p.Allowed("something sneaky"); !errors.Is(err, ErrFlagged) {
		t.Fatalf("want flagged, got %v", err)
	}
}

func TestBackendErrorFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New(ModeMild, NewClient("test-key", srv.URL))
	if err := p.Allowed("perfectly clean text"); err == nil {
		t.Fatal("backend error was waved through")
	}
}

func TestClientMissingKey(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.Check(context.Background(), "hi"); err == nil {
		t.Fatal("want error for missing key")
	}
}
