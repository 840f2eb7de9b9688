package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"partyhub/internal/game"
)

// chatServer fakes the chat completions endpoint with a canned reply.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestRegenerateWavelengthStripsFence(t *testing.T) {
	reply := "```json\n[\"Hot ... Cold\", \"Loud ... Quiet\", \"Old ... New\", \"Soft ... Hard\", \"Fast ... Slow\"]\n```"
	srv := chatServer(t, reply)
	defer srv.Close()

	c := newTestCatalog()
	r := NewRegenerator("key", srv.URL, "test-model")
	if err := r.Regenerate(context.Background(), c, game.ModeWavelength); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	prompt, _, _ := c.Draw(game.ModeWavelength)
	if !strings.Contains(prompt, " ... ") {
		t.Fatalf("draw returned %q, not a regenerated spectrum prompt", prompt)
	}
}

func TestRegenerateWouldYouRather(t *testing.T) {
	var items []map[string]string
	for _, n := range []string{"one", "two", "three", "four", "five"} {
		items = append(items, map[string]string{
			"prompt":   "Dilemma " + n,
			"option_a": "Heads",
			"option_b": "Tails",
		})
	}
	b, _ := json.Marshal(items)
	srv := chatServer(t, string(b))
	defer srv.Close()

	c := newTestCatalog()
	r := NewRegenerator("key", srv.URL, "test-model")
	if err := r.Regenerate(context.Background(), c, game.ModeWouldYouRather); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	prompt, options, _ := c.Draw(game.ModeWouldYouRather)
	if !strings.HasPrefix(prompt, "Dilemma ") {
		t.Fatalf("draw returned %q, not a regenerated dilemma", prompt)
	}
	if len(options) != 2 || options[0] != "Heads" || options[1] != "Tails" {
		t.Fatalf("options = %v", options)
	}
}

func TestRegenerateEstimationKeepsTargets(t *testing.T) {
	reply := `[
		{"prompt": "How many moons does Jupiter have?", "target": 95},
		{"prompt": "How many keys on a piano?", "target": 88},
		{"prompt": "How many bones in the human body?", "target": 206},
		{"prompt": "How many time zones are there?", "target": 38},
		{"prompt": "How many elements are on the periodic table?", "target": 118}
	]`
	srv := chatServer(t, reply)
	defer srv.Close()

	c := newTestCatalog()
	r := NewRegenerator("key", srv.URL, "test-model")
	if err := r.Regenerate(context.Background(), c, game.ModeEstimation); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	prompt, _, target := c.Draw(game.ModeEstimation)
	if !strings.HasPrefix(prompt, "How many") {
		t.Fatalf("draw returned %q, not a regenerated question", prompt)
	}
	if target <= 0 {
		t.Fatalf("target = %d, want positive", target)
	}
}

func TestRegenerateRejectsShortLists(t *testing.T) {
	srv := chatServer(t, `["only", "four", "usable", "prompts"]`)
	defer srv.Close()

	c := newTestCatalog()
	before := len(c.mlt)
	r := NewRegenerator("key", srv.URL, "test-model")
	if err := r.Regenerate(context.Background(), c, game.ModeMostLikely); err == nil {
		t.Fatal("short list should be rejected")
	}
	if len(c.mlt) != before {
		t.Fatal("catalog replaced despite rejection")
	}
}

func TestRegenerateUnsupportedMode(t *testing.T) {
	r := NewRegenerator("key", "http://unused.invalid", "test-model")
	if err := r.Regenerate(context.Background(), newTestCatalog(), game.ModeMafia); err == nil {
		t.Fatal("mafia has no catalog to regenerate")
	}
}
