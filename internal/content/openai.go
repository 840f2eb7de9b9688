package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"partyhub/internal/game"
)

// Regenerator refreshes a free-text catalog from the OpenAI chat API.
// Entirely optional: without an API key the built-in catalogs are all
// there is.
type Regenerator struct {
	APIKey  string
	BaseURL string
	Model   string
	http    *http.Client
}

func NewRegenerator(apiKey, baseURL, model string) *Regenerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Regenerator{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

var regenInstructions = map[game.Mode]string{
	game.ModeMostLikely: "Write 15 'Who is most likely to ...?' party prompts.",
	game.ModeHotSeat:    "Write 10 fun, PG-13 icebreaker questions for one person to answer in front of friends.",
	game.ModeQuickDraw:  "Write 12 prompts of the form 'Name a ...' where many short answers are possible.",
	game.ModeVoteBattle: "Write 10 creative-writing prompts where players submit a short funny line to be voted on.",
	game.ModeWavelength: "Write 12 spectrum prompts of the form 'X ... Y' naming opposite ends of a scale, like 'Underrated ... Overrated'.",
}

// Regenerate replaces the catalog for the given mode with freshly generated
// prompts. Covers the free-text catalogs plus would-you-rather and
// estimation, which carry structure beyond a bare prompt line.
func (r *Regenerator) Regenerate(ctx context.Context, c *Catalog, mode game.Mode) error {
	if r.APIKey == "" {
		return errors.New("missing OPENAI_API_KEY")
	}
	switch mode {
	case game.ModeWouldYouRather:
		prompts, err := r.generateWYR(ctx)
		if err != nil {
			return err
		}
		if len(prompts) < 5 {
			return errors.New("too few usable prompts generated")
		}
		c.replaceWYR(prompts)
		return nil
	case game.ModeEstimation:
		prompts, err := r.generateEstimation(ctx)
		if err != nil {
			return err
		}
		if len(prompts) < 5 {
			return errors.New("too few usable prompts generated")
		}
		c.replaceEstimation(prompts)
		return nil
	}
	instruction, ok := regenInstructions[mode]
	if !ok {
		return fmt.Errorf("mode %s has no regenerable catalog", mode)
	}
	prompts, err := r.generate(ctx, instruction)
	if err != nil {
		return err
	}
	if len(prompts) < 5 {
		return errors.New("too few usable prompts generated")
	}
	c.replacePrompts(mode, prompts)
	return nil
}

func (r *Regenerator) generate(ctx context.Context, instruction string) ([]string, error) {
	content, err := r.chat(ctx,
		"You write prompts for a party game. Respond with a JSON array of strings only, no prose. Keep every prompt under 100 characters and PG-13.",
		instruction)
	if err != nil {
		return nil, err
	}
	return parsePromptList(content)
}

func (r *Regenerator) generateWYR(ctx context.Context) ([]wyrPrompt, error) {
	content, err := r.chat(ctx,
		"You write prompts for a party game. Respond with a JSON array of objects with keys \"prompt\", \"option_a\" and \"option_b\" only, no prose. Keep everything PG-13.",
		"Write 12 'Would you rather ...?' dilemmas, each with two short options.")
	if err != nil {
		return nil, err
	}
	return parseWYRList(content)
}

func (r *Regenerator) generateEstimation(ctx context.Context) ([]estimationPrompt, error) {
	content, err := r.chat(ctx,
		"You write prompts for a party game. Respond with a JSON array of objects with keys \"prompt\" and \"target\" only, no prose. Targets are the real-world answers as integers.",
		"Write 12 numeric estimation questions with a single integer answer, like 'How many bones are in the human body?'.")
	if err != nil {
		return nil, err
	}
	return parseEstimationList(content)
}

func (r *Regenerator) chat(ctx context.Context, system, user string) (string, error) {
	payload := map[string]any{
		"model": r.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.9,
		"max_tokens":  800,
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", r.BaseURL+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("openai status %d", resp.StatusCode)
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// stripFence unwraps a markdown code fence the model sometimes adds around
// the JSON payload.
func stripFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return content
}

func parsePromptList(content string) ([]string, error) {
	var prompts []string
	if err := json.Unmarshal([]byte(stripFence(content)), &prompts); err != nil {
		return nil, err
	}
	var clean []string
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	return clean, nil
}

func parseWYRList(content string) ([]wyrPrompt, error) {
	var raw []struct {
		Prompt  string `json:"prompt"`
		OptionA string `json:"option_a"`
		OptionB string `json:"option_b"`
	}
	if err := json.Unmarshal([]byte(stripFence(content)), &raw); err != nil {
		return nil, err
	}
	var clean []wyrPrompt
	for _, p := range raw {
		prompt := strings.TrimSpace(p.Prompt)
		a := strings.TrimSpace(p.OptionA)
		b := strings.TrimSpace(p.OptionB)
		if prompt != "" && a != "" && b != "" {
			clean = append(clean, wyrPrompt{Prompt: prompt, OptionA: a, OptionB: b})
		}
	}
	return clean, nil
}

func parseEstimationList(content string) ([]estimationPrompt, error) {
	var raw []struct {
		Prompt string `json:"prompt"`
		Target int    `json:"target"`
	}
	if err := json.Unmarshal([]byte(stripFence(content)), &raw); err != nil {
		return nil, err
	}
	var clean []estimationPrompt
	for _, p := range raw {
		if prompt := strings.TrimSpace(p.Prompt); prompt != "" {
			clean = append(clean, estimationPrompt{Prompt: prompt, Target: p.Target})
		}
	}
	return clean, nil
}

func (c *Catalog) replacePrompts(mode game.Mode, prompts []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch mode {
	case game.ModeMostLikely:
		c.mlt = prompts
		delete(c.bags, "mlt")
	case game.ModeHotSeat:
		c.hotseat = prompts
		delete(c.bags, "hotseat")
	case game.ModeQuickDraw:
		c.quickdraw = prompts
		delete(c.bags, "quickdraw")
	case game.ModeVoteBattle:
		c.votebattle = prompts
		delete(c.bags, "votebattle")
	case game.ModeWavelength:
		c.wavelength = prompts
		delete(c.bags, "wavelength")
	}
}

func (c *Catalog) replaceWYR(prompts []wyrPrompt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wyr = prompts
	delete(c.bags, "wyr")
}

func (c *Catalog) replaceEstimation(prompts []estimationPrompt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.estimation = prompts
	delete(c.bags, "estimation")
}
